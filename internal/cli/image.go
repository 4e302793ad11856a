package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/image"
)

func newImageCmd(a *app) *cobra.Command {
	var (
		seeds    seedFlags
		output   string
		opts     = image.DefaultCardOptions()
		noLabels bool
	)

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Draw the palette as a PNG card",
		Long: `Draw a PNG card with the seed gradient across the top and one swatch per
palette colour, labelled with its hex code.

Examples:
  swatch image --theme violet -o violet.png
  swatch image --seed '#fbbf24' --title amber --no-labels -o card.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, p, err := seeds.palette(cmd, a, nil)
			if err != nil {
				return err
			}

			opts.Labels = !noLabels
			if err := image.SavePNG(output, p, opts); err != nil {
				return err
			}

			a.logger.Info("wrote palette card", "file", output, "colours", p.Len())
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	seeds.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title drawn on the gradient (default: the seed pair)")
	cmd.Flags().IntVar(&opts.SwatchSize, "swatch-size", opts.SwatchSize, "swatch edge in pixels")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit hex labels")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
