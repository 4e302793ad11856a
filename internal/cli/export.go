package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/plugin/executor"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		seeds      seedFlags
		pluginPath string
		outputDir  string
		dryRun     bool
		pluginArgs map[string]string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run an exporter plugin over a palette",
		Long: `Hand the palette, its syntax token roles and chrome colours to an exporter
plugin and write the files it returns.

Plugins are executables that either serve the go-plugin exporter interface
or read palette JSON on stdin and reply with {"files": {...}} on stdout.
Both answer --plugin-info with their metadata.

Examples:
  swatch export --plugin ./swatch-vscode --theme meadow -o out/
  swatch export --plugin vim-export --seed '#a78bfa' --arg variant=dark --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			name, p, err := seeds.palette(cmd, a, nil)
			if err != nil {
				return err
			}
			data, err := executor.NewPaletteData(name, p, pluginArgs)
			if err != nil {
				return err
			}
			data.DryRun = dryRun

			ex, err := executor.New(ctx, expandPath(pluginPath), executor.Options{
				PluginDir: expandPath(a.cfg.Plugins.Dir),
				Logger:    a.logger,
				Verbose:   a.verbose,
			})
			if err != nil {
				return err
			}
			defer ex.Close()

			files, err := ex.Export(ctx, data)
			if err != nil {
				return err
			}

			paths, err := executor.WriteFiles(files, outputDir, dryRun)
			if err != nil {
				return err
			}

			verb := "wrote"
			if dryRun {
				verb = "would write"
			}
			out := cmd.OutOrStdout()
			for _, path := range paths {
				fmt.Fprintf(out, "%s %s\n", verb, path)
			}
			return nil
		},
	}

	seeds.register(cmd)
	cmd.Flags().StringVar(&pluginPath, "plugin", "", "exporter plugin executable (required)")
	cmd.Flags().String("plugin-dir", "", "only allow plugins inside this directory")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory for exported files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list files without writing them")
	cmd.Flags().StringToStringVar(&pluginArgs, "arg", nil, "plugin argument as key=value, repeatable")
	_ = cmd.MarkFlagRequired("plugin")

	return cmd
}
