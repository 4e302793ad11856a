package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
)

func newContrastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <colour> <colour>",
		Short: "Report the WCAG contrast ratio of two colours",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := colour.ParseColorValue(args[0])
			if err != nil {
				return err
			}
			b, err := colour.ParseColorValue(args[1])
			if err != nil {
				return err
			}

			ratio := colour.ContrastRatio(a.RGB(), b.RGB())
			out := cmd.OutOrStdout()
			tty := isTerminal(cmd)
			if tty {
				fmt.Fprintln(out, colour.FormatColourWithLabel(a.RGB(), args[0], 4))
				fmt.Fprintln(out, colour.FormatColourWithLabel(b.RGB(), args[1], 4))
			}
			fmt.Fprintf(out, "Contrast ratio: %.2f:1\n", ratio)
			fmt.Fprintf(out, "AA  (%g:1): %s\n", colour.ContrastAA, passFail(ratio >= colour.ContrastAA, tty))
			fmt.Fprintf(out, "AAA (%g:1): %s\n", colour.ContrastAAA, passFail(ratio >= colour.ContrastAAA, tty))
			return nil
		},
	}
}

func newConvertCmd() *cobra.Command {
	var alpha float64

	cmd := &cobra.Command{
		Use:   "convert <colour>",
		Short: "Print a colour in every supported notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := colour.ParseColorValue(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("alpha") {
				alpha = v.Alpha()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hex:  %s\n", v.ToHex())
			fmt.Fprintf(out, "rgb:  %s\n", v.RGB())
			fmt.Fprintf(out, "hsl:  %s\n", v.ToHSL())
			fmt.Fprintf(out, "hsla: %s\n", v.ToHSLA(alpha))
			return nil
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 1, "alpha for the hsla form")
	return cmd
}

var (
	passColour = colour.RGB{R: 34, G: 197, B: 94}
	failColour = colour.RGB{R: 239, G: 68, B: 68}
)

// passFail labels a threshold check, in green or red when colourise is set.
func passFail(ok, colourise bool) string {
	label, c := "fail", failColour
	if ok {
		label, c = "pass", passColour
	}
	if !colourise {
		return label
	}
	return colour.ColourString(c, label)
}
