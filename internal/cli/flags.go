package cli

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/seed"
	"github.com/jmylchreest/swatch/internal/theme"
)

// enumValue is a string flag restricted to a fixed set of values.
type enumValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnum(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(s)
	if !slices.Contains(e.allowed, s) {
		return fmt.Errorf("must be one of %s", strings.Join(e.allowed, ", "))
	}
	e.value = s
	return nil
}

func (e *enumValue) Type() string { return "string" }

// usage lists the allowed values for flag help.
func (e *enumValue) usage() string {
	return strings.Join(e.allowed, "|")
}

// seedFlags selects the seed pair of a command: explicit colours, an
// image, or a named theme, in that order of preference.
type seedFlags struct {
	theme string
	seeds []string
	image string
}

func (s *seedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.theme, "theme", "t", "", "named theme (see 'swatch themes')")
	cmd.Flags().StringArrayVarP(&s.seeds, "seed", "s", nil, "seed colour, repeatable up to 3 times")
	cmd.Flags().StringVar(&s.image, "image", "", "derive seeds from an image file or URL")
	cmd.MarkFlagsMutuallyExclusive("theme", "seed", "image")
}

// resolve returns the theme name and seed pair the flags select. Extra
// positional colours count as seeds.
func (s *seedFlags) resolve(cmd *cobra.Command, a *app, extra []string) (string, [2]string, error) {
	picked := append(slices.Clone(s.seeds), extra...)

	switch {
	case len(picked) > 0:
		if s.theme != "" || s.image != "" {
			return "", [2]string{}, fmt.Errorf("seed colours cannot be combined with --theme or --image")
		}
		for _, p := range picked {
			if _, err := colour.ParseColorValue(p); err != nil {
				return "", [2]string{}, fmt.Errorf("invalid seed: %w", err)
			}
		}
		seeds, err := theme.NormaliseSeeds(picked)
		if err != nil {
			return "", [2]string{}, err
		}
		return "custom", seeds, nil

	case s.image != "":
		img, err := image.Load(cmd.Context(), expandPath(s.image))
		if err != nil {
			return "", [2]string{}, err
		}
		seeds, err := seed.FromImage(img, seed.DefaultExtractOptions())
		if err != nil {
			return "", [2]string{}, err
		}
		a.logger.Named("seed").Debug("extracted seeds", "image", s.image, "seeds", seeds)
		name := strings.TrimSuffix(filepath.Base(s.image), filepath.Ext(s.image))
		return name, seeds, nil
	}

	name := cmp.Or(s.theme, a.cfg.Themes.Default, theme.DefaultName)
	t, err := a.registry.Lookup(name)
	if err != nil {
		return "", [2]string{}, err
	}
	return t.Name, t.Seeds, nil
}

// palette resolves the seeds and derives their palette through the cache.
func (s *seedFlags) palette(cmd *cobra.Command, a *app, extra []string) (string, *colour.Palette, error) {
	name, seeds, err := s.resolve(cmd, a, extra)
	if err != nil {
		return "", nil, err
	}
	p, err := a.cache.Palette(seeds[0], seeds[1])
	if err != nil {
		return "", nil, err
	}
	return name, p, nil
}

// isTerminal reports whether cmd writes to an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// expandPath expands a leading ~ and environment variables.
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
