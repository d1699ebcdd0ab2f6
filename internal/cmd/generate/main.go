// Command awsgen generates cmdlet packages from AWS service models.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/logging"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("AWSGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfgFile string
	root := &cobra.Command{
		Use:           "awsgen",
		Short:         "Generate cmdlets from AWS service models",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return errors.Wrapf(err, "reading config %s", cfgFile)
				}
			}
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			switch v.GetString("color") {
			case "always":
				color.NoColor = false
			case "never":
				color.NoColor = true
			}

			opts := logging.LogOpts{
				Verbose: v.GetBool("verbose"),
				Color:   v.GetString("color"),
			}
			if v.GetBool("json-log") {
				opts.Encoding = "json"
			}
			logger, err := opts.NewLogger()
			if err != nil {
				return err
			}
			zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "read settings from this file (yaml, json or toml)")
	flags.BoolP("verbose", "v", false, "log every generated operation")
	flags.Bool("json-log", false, "log as JSON")
	flags.String("color", "auto", "colored output: auto, always or never")

	root.AddCommand(
		newGenerateCommand(v),
		newCheckCommand(v),
		newEmittersCommand(),
	)
	return root
}
