package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/render"
	"github.com/jmylchreest/swatch/internal/theme"
)

func newPaletteCmd(a *app) *cobra.Command {
	var (
		seeds   seedFlags
		format  = newEnum("hsl", "hsl", "hex", "json", "css")
		preview bool
		prefix  string
	)

	cmd := &cobra.Command{
		Use:   "palette [colour...]",
		Short: "Derive and print the palette for a seed pair",
		Long: `Derive the palette for up to three colours, a named theme or an image.

One colour is used for both seeds; three colours use the first and last.
Colours may be hex, rgb(), rgba(), hsl() or hsla().

Examples:
  swatch palette '#38bdf8' '#3b82f6'
  swatch palette --theme rose --format css
  swatch palette --image wallpaper.jpg --format json`,
		Args: cobra.MaximumNArgs(theme.MaxPickedColours),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, p, err := seeds.palette(cmd, a, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("preview") {
				preview = isTerminal(cmd)
			}

			out := cmd.OutOrStdout()
			switch format.String() {
			case "hex":
				for i, c := range p.All() {
					if preview {
						fmt.Fprintf(out, "%s %s\n", colour.ColourPreviewWithText(c.RGB(), strconv.Itoa(i), 4), c.Hex())
					} else {
						fmt.Fprintln(out, c.Hex())
					}
				}
			case "json":
				data, err := p.ToJSON()
				if err != nil {
					return fmt.Errorf("failed to encode palette: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "css":
				data, err := render.CSS(p, a.reference(), prefix)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				fmt.Fprint(out, p.StringWithPreview(preview))
			}
			return nil
		},
	}

	seeds.register(cmd)
	cmd.Flags().VarP(format, "format", "f", "output format ("+format.usage()+")")
	cmd.Flags().BoolVar(&preview, "preview", false, "show colour blocks (default: when writing to a terminal)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "CSS custom property prefix (default swatch)")

	return cmd
}
