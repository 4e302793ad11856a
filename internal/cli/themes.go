package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/theme"
)

func newThemesCmd(a *app) *cobra.Command {
	var (
		format = newEnum("table", "table", "json")
		save   string
	)

	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the available themes",
		Long: `List built-in themes and those loaded from themes.file.

The json format is the theme file format, so its output can be edited and
loaded back with --themes-file. --save writes it to a file, xz-compressed
when the name ends in .xz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			themes := a.registry.All()

			if save != "" {
				if err := saveThemes(expandPath(save), themes); err != nil {
					return err
				}
				a.logger.Info("saved themes", "file", save, "count", len(themes))
			}

			out := cmd.OutOrStdout()
			if format.String() == "json" {
				return theme.Encode(out, themes, false)
			}

			preview := isTerminal(cmd)
			headers := []string{"NAME", "SEEDS", "DESCRIPTION"}
			if preview {
				headers = append(headers, "PREVIEW")
			}

			table := NewTable(headers)
			table.SetColumnMaxWidth(2, 40)
			for _, t := range themes {
				row := []string{t.Name, t.Seeds[0] + " " + t.Seeds[1], t.Description}
				if preview {
					row = append(row, colour.ColourPreview(colour.HexToRGB(t.Seeds[0]), 3)+
						colour.ColourPreview(colour.HexToRGB(t.Seeds[1]), 3))
				}
				table.AddRow(row)
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}

	cmd.Flags().VarP(format, "format", "f", "output format ("+format.usage()+")")
	cmd.Flags().StringVar(&save, "save", "", "write all themes to a theme file")

	return cmd
}

// saveThemes writes themes to path, compressing .xz files.
func saveThemes(path string, themes []theme.Theme) error {
	f, err := os.Create(path) // #nosec G304 - User-specified theme file
	if err != nil {
		return fmt.Errorf("failed to create theme file: %w", err)
	}

	if err := theme.Encode(f, themes, strings.HasSuffix(path, ".xz")); err != nil {
		f.Close()
		return fmt.Errorf("failed to write theme file %s: %w", path, err)
	}
	return f.Close()
}
