// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/log"
	"github.com/jmylchreest/swatch/internal/seed"
	"github.com/jmylchreest/swatch/internal/theme"
	"github.com/jmylchreest/swatch/internal/version"
)

// app is the state shared by every command of one invocation.
type app struct {
	cfgFile string
	verbose bool
	quiet   bool

	cfg      *config.Config
	engine   colour.Config
	logger   hclog.Logger
	registry *theme.Registry
	cache    *theme.Cache

	// generator overrides the Gen AI client used by suggest.
	generator seed.Generator
}

// NewRootCmd builds the swatch command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "swatch",
		Short: "Derive syntax-highlighting palettes from two colours",
		Long: `Swatch derives a fixed, position-significant palette of 15 colours from two
seed colours and uses it to theme code snippets.

The palette can be printed, rendered as CSS variables, drawn as a PNG card,
used to highlight source files or handed to exporter plugins.`,
		Version:           version.Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/swatch/swatch.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.String("log-level", "", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	flags.Float64("min-contrast", 0, "minimum contrast ratio against the reference colour")
	flags.String("themes-file", "", "additional theme file (JSON, optionally xz-compressed)")

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newPaletteCmd(a),
		newThemesCmd(a),
		newContrastCmd(),
		newConvertCmd(),
		newHighlightCmd(a),
		newImageCmd(a),
		newSuggestCmd(a),
		newExportCmd(a),
		newVersionCmd(),
	)

	return root
}

// setup loads configuration and builds the logger, engine config and
// theme registry before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = log.New(log.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Verbose: a.verbose,
		Quiet:   a.quiet,
		Output:  cmd.ErrOrStderr(),
	})
	if cfg.File != "" {
		a.logger.Debug("loaded config", "file", cfg.File)
	}

	engine, err := cfg.Engine.ColourConfig()
	if err != nil {
		return err
	}
	a.engine = engine
	a.cache = theme.NewCache(engine)

	a.registry = theme.NewRegistry()
	if cfg.Themes.File != "" {
		n, err := a.registry.LoadInto(expandPath(cfg.Themes.File))
		if err != nil {
			return err
		}
		a.logger.Named("theme").Debug("loaded themes", "file", cfg.Themes.File, "count", n)
	}

	return nil
}

// reference returns the decoded contrast reference colour.
func (a *app) reference() colour.RGB {
	// Validated by ColourConfig.
	ref, _ := colour.CSSColorToRGB(a.engine.Reference)
	return ref
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		// Version output never depends on configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
