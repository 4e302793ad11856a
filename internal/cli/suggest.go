package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/seed"
	"github.com/jmylchreest/swatch/internal/theme"
)

func newSuggestCmd(a *app) *cobra.Command {
	var (
		prompt string
		save   string
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask a Gemini model for a seed pair",
		Long: `Describe a mood or brand and let a Gemini model pick the two seed colours.

The Gemini API backend reads its key from GOOGLE_API_KEY. The vertex-ai
backend uses application default credentials.

Examples:
  swatch suggest --prompt "late night terminal, neon on slate"
  swatch suggest --prompt "forest after rain" --save ~/.config/swatch/themes.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			gen := a.generator
			if gen == nil {
				g, err := seed.NewGenAI(ctx, seed.GenAIOptions{
					Backend: a.cfg.GenAI.Backend,
					Model:   a.cfg.GenAI.Model,
					Logger:  a.logger.Named("genai"),
				})
				if err != nil {
					return err
				}
				gen = g
			}

			s, err := seed.Suggest(ctx, gen, prompt)
			if err != nil {
				return err
			}

			p, err := a.cache.Palette(s.Seeds[0], s.Seeds[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Theme: %s\n", s.Name)
			fmt.Fprint(out, p.StringWithPreview(isTerminal(cmd)))

			if save != "" {
				if err := appendTheme(expandPath(save), s.Theme(prompt)); err != nil {
					return err
				}
				a.logger.Info("saved theme", "name", s.Name, "file", save)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "theme description (required)")
	cmd.Flags().String("model", "", "Gemini model (default "+seed.DefaultModel+")")
	cmd.Flags().String("backend", "", "Gen AI backend ("+seed.BackendGeminiAPI+" or "+seed.BackendVertexAI+")")
	cmd.Flags().StringVar(&save, "save", "", "add the suggestion to a theme file")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

// appendTheme adds t to the theme file at path, replacing a theme of the
// same name. A missing file is created.
func appendTheme(path string, t theme.Theme) error {
	themes, err := theme.LoadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	reg := theme.NewRegistry()
	if err := reg.Register(t); err != nil {
		return err
	}
	t, _ = reg.Get(t.Name)

	themes = slices.DeleteFunc(themes, func(existing theme.Theme) bool {
		return strings.EqualFold(existing.Name, t.Name)
	})
	themes = append(themes, t)

	return saveThemes(path, themes)
}
