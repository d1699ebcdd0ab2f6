package main

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/damedic/aws-toolbox-go/internal/generate"
	"github.com/damedic/aws-toolbox-go/internal/generate/config"
	"github.com/damedic/aws-toolbox-go/internal/generate/emit"
	"github.com/damedic/aws-toolbox-go/internal/generate/ir"
	"github.com/damedic/aws-toolbox-go/internal/generate/model"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var ErrNoModels = errors.New("no service models found")

func generateFlags(fs *pflag.FlagSet) {
	fs.String("models", "models", "directory or zip archive of service models")
	fs.String("customizations", "customizations", "directory of <service>.yaml customization files")
	fs.StringP("out", "o", ".", "output directory, one package per service is created below it")
	fs.StringSlice("service", nil, "generate only these services (model directory names)")
	fs.Int("workers", 0, "operations generated in parallel, 0 uses one per CPU")
}

func newGenerateCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the cmdlet packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := generateAll(cmd.Context(), v)
			if err != nil {
				return err
			}
			if err := files.Write(v.GetString("out")); err != nil {
				return err
			}
			zap.S().Infof("wrote %d files to %s", len(files), v.GetString("out"))
			return nil
		},
	}
	generateFlags(cmd.Flags())
	return cmd
}

func newCheckCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report generated files that are missing or out of date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := generateAll(cmd.Context(), v)
			if err != nil {
				return err
			}
			stale, err := files.Check(v.GetString("out"))
			if err != nil {
				return err
			}
			return reportStale(cmd.OutOrStdout(), stale)
		},
	}
	generateFlags(cmd.Flags())
	return cmd
}

func reportStale(w io.Writer, stale []string) error {
	if len(stale) == 0 {
		color.New(color.FgGreen).Fprintln(w, "generated files are up to date")
		return nil
	}

	yellow := color.New(color.FgYellow)
	for _, name := range stale {
		yellow.Fprintf(w, "stale: %s\n", name)
	}
	return errors.WithHint(
		errors.Newf("%d generated files are stale", len(stale)),
		"run awsgen generate",
	)
}

// generateAll generates the packages of all selected services in memory.
func generateAll(ctx context.Context, v *viper.Viper) (generate.Files, error) {
	fsys, closer, err := openModels(v.GetString("models"))
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	models, err := discover(fsys, v.GetStringSlice("service"))
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, errors.WithHintf(
			errors.Wrapf(ErrNoModels, "in %s", v.GetString("models")),
			"expected files matching %s", modelPattern,
		)
	}

	registry := emit.DefaultRegistry()
	all := make(generate.Files)
	for _, m := range models {
		bundle, err := model.Load(fsys, m.Dir)
		if err != nil {
			return nil, err
		}

		serviceID := bundle.API.Metadata.ServiceID
		if serviceID == "" {
			serviceID = m.Name
		}
		cust, err := config.LoadDir(v.GetString("customizations"), serviceID)
		if err != nil {
			return nil, err
		}

		svc, err := ir.Parse(bundle, cust)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", m.Dir)
		}

		files, err := generate.Run(ctx, svc, generate.RunOptions{
			Generators: generate.DefaultGenerators(registry),
			Workers:    v.GetInt("workers"),
		})
		if err != nil {
			return nil, err
		}
		zap.S().Debugw("generated service", "service", svc.PackageName,
			"operations", len(svc.Operations), "paged", len(ir.FilterPaged(svc.Operations)))
		for name, src := range files {
			if _, ok := all[name]; ok {
				return nil, errors.WithHint(
					errors.Newf("%s: %s is generated by two services", m.Dir, name),
					"set package in one of the customizations",
				)
			}
			all[name] = src
		}
	}
	return all, nil
}
