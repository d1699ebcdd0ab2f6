package main

import (
	"fmt"
	"io"

	"github.com/damedic/aws-toolbox-go/internal/generate/emit"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEmittersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "emitters",
		Short: "List the emitter rules in priority order",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printRules(cmd.OutOrStdout(), emit.DefaultRegistry().Rules())
		},
	}
}

func printRules(w io.Writer, rules []emit.Rule) {
	name := color.New(color.FgCyan, color.Bold)
	for _, r := range rules {
		name.Fprintf(w, "%-14s", r.Name)
		switch {
		case r.Parameter != "":
			fmt.Fprintf(w, " parameter %s with shape %s\n", r.Parameter, r.Shape)
		case r.Shape != "":
			fmt.Fprintf(w, " any parameter with shape %s\n", r.Shape)
		default:
			fmt.Fprintln(w, " everything else")
		}
	}
}
