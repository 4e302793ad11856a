// Package colour implements the palette engine used to theme code snippets.
//
// Given two seed colours it derives a fixed-length, position-significant
// palette: a set of base tones remapped onto a saturation/lightness table
// plus hue-shifted copies of each. Every function in this package is pure
// and safe for concurrent use.
package colour

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidCSSColour is returned when a string is not an rgb() or rgba() colour.
	ErrInvalidCSSColour = errors.New("invalid css colour")

	// ErrInvalidHSL is returned when a string is not an hsl(H, S%, L%) colour.
	ErrInvalidHSL = errors.New("invalid hsl colour")
)

var (
	cssColourPattern = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*(\d*\.?\d+)\s*)?\)$`)
	hslPattern       = regexp.MustCompile(`^hsl\((\d+), (\d+)%, (\d+)%\)$`)
	hslaPattern      = regexp.MustCompile(`^hsla\((\d+), (\d+)%, (\d+)%, (\d*\.?\d+)\)$`)
	hexStripper      = strings.NewReplacer("-", "", ".", "")
)

// HexToRGB decodes a hex colour. A leading '#' and any '-' or '.' characters
// are ignored, and 3-digit shorthand is expanded by doubling each digit.
// Anything that is not 3 or 6 hex digits decodes to black.
func HexToRGB(hex string) RGB {
	s := hexStripper.Replace(strings.TrimPrefix(strings.TrimSpace(hex), "#"))

	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// RGBToHex encodes channels as "#rrggbb", clamping each into [0,255] first.
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", clampChannel(r), clampChannel(g), clampChannel(b))
}

// CSSColorToRGB parses "rgb(r, g, b)" or "rgba(r, g, b, a)". The alpha
// component is validated but discarded.
func CSSColorToRGB(css string) (RGB, error) {
	m := cssColourPattern.FindStringSubmatch(strings.TrimSpace(css))
	if m == nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidCSSColour, css)
	}

	var ch [3]int
	for i := range ch {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidCSSColour, css, err)
		}
		ch[i] = v
	}

	return RGB{R: clampChannel(ch[0]), G: clampChannel(ch[1]), B: clampChannel(ch[2])}, nil
}

// RGBToHSL converts to HSL with hue in whole degrees and saturation and
// lightness in whole percent.
func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))

	l := (maxVal + minVal) / 2.0

	var h, s float64
	if maxVal != minVal {
		delta := maxVal - minVal

		if l > 0.5 {
			s = delta / (2.0 - maxVal - minVal)
		} else {
			s = delta / (maxVal + minVal)
		}

		switch maxVal {
		case r:
			h = (g - b) / delta
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/delta + 2
		default:
			h = (r-g)/delta + 4
		}
		h /= 6
	}

	return HSL{
		H: int(math.Round(h*360)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// ConvertToHSL converts a list of hex colours to HSL, preserving order.
func ConvertToHSL(hexes []string) []HSL {
	out := make([]HSL, len(hexes))
	for i, hex := range hexes {
		out[i] = RGBToHSL(HexToRGB(hex))
	}
	return out
}

// ParseHSL parses the exact form produced by HSL.String: "hsl(H, S%, L%)".
func ParseHSL(s string) (HSL, error) {
	m := hslPattern.FindStringSubmatch(s)
	if m == nil {
		return HSL{}, fmt.Errorf("%w: %q", ErrInvalidHSL, s)
	}

	h, _ := strconv.Atoi(m[1])
	sat, _ := strconv.Atoi(m[2])
	l, _ := strconv.Atoi(m[3])

	return HSL{H: h % 360, S: clampPercent(sat), L: clampPercent(l)}, nil
}

// ParseHSLA parses the exact form produced by HSLA.String: "hsla(H, S%, L%, A)".
func ParseHSLA(s string) (HSLA, error) {
	m := hslaPattern.FindStringSubmatch(s)
	if m == nil {
		return HSLA{}, fmt.Errorf("%w: %q", ErrInvalidHSL, s)
	}

	h, _ := strconv.Atoi(m[1])
	sat, _ := strconv.Atoi(m[2])
	l, _ := strconv.Atoi(m[3])
	a, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return HSLA{}, fmt.Errorf("%w: %q: %v", ErrInvalidHSL, s, err)
	}

	return HSL{H: h % 360, S: clampPercent(sat), L: clampPercent(l)}.WithAlpha(a), nil
}

// HSLToHSLA rewrites an "hsl(H, S%, L%)" string as "hsla(H, S%, L%, A)".
// Alpha is clamped into [0,1].
func HSLToHSLA(hsl string, alpha float64) (string, error) {
	c, err := ParseHSL(hsl)
	if err != nil {
		return "", err
	}
	return c.WithAlpha(alpha).String(), nil
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clampPercent(v int) int {
	return max(0, min(100, v))
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
