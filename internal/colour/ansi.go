package colour

import (
	"fmt"
	"regexp"
	"strings"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// ColourPreview returns a solid block of width cells in the given colour.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return background(c) + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText returns a colour block with text centred over it.
// The text is black or white, whichever contrasts more with c.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := RGB{R: 255, G: 255, B: 255}
	if ContrastRatio(c, RGB{}) > ContrastRatio(c, fg) {
		fg = RGB{}
	}

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return background(c) + foreground(fg) + displayText + ansiReset
}

// FormatColourWithLabel formats a colour with a label and preview.
func FormatColourWithLabel(rgb RGB, label string, width int) string {
	return fmt.Sprintf("%s  %-20s %s", ColourPreview(rgb, width), label, rgb.Hex())
}

// ColourString wraps text in a foreground colour escape.
func ColourString(rgb RGB, text string) string {
	return foreground(rgb) + text + ansiReset
}

// StripANSI removes colour escapes, leaving the printable text.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func background(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
}

func foreground(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
}
