package colour

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return RGBToHex(int(rgb.R), int(rgb.G), int(rgb.B))
}

// HSL converts the colour to whole-number HSL.
func (rgb RGB) HSL() HSL {
	return RGBToHSL(rgb)
}

// Color returns the colour as an opaque color.RGBA.
func (rgb RGB) Color() color.Color {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// HSL is a colour with hue in degrees [0,360) and saturation and lightness
// in percent [0,100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// String formats the colour as "hsl(H, S%, L%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// Shift rotates the hue by deg degrees, wrapping into [0,360).
func (c HSL) Shift(deg int) HSL {
	c.H = ((c.H+deg)%360 + 360) % 360
	return c
}

// WithAlpha attaches an alpha channel, clamped into [0,1].
func (c HSL) WithAlpha(alpha float64) HSLA {
	if math.IsNaN(alpha) {
		alpha = 1
	}
	return HSLA{HSL: c, A: clampUnit(alpha)}
}

// RGB converts back to 8-bit channels.
func (c HSL) RGB() RGB {
	r, g, b := colorful.Hsl(float64(c.H), float64(c.S)/100, float64(c.L)/100).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Hex converts to a "#rrggbb" string.
func (c HSL) Hex() string {
	return c.RGB().Hex()
}

// HSLA is an HSL colour with an alpha channel in [0,1].
type HSLA struct {
	HSL
	A float64 `json:"a"`
}

// String formats the colour as "hsla(H, S%, L%, A)".
func (c HSLA) String() string {
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", c.H, c.S, c.L, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Kind identifies which encoding a ColorValue carries.
type Kind int

const (
	// KindHex is a "#rrggbb" colour.
	KindHex Kind = iota
	// KindHSL is an "hsl(H, S%, L%)" colour.
	KindHSL
	// KindHSLA is an "hsla(H, S%, L%, A)" colour.
	KindHSLA
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindHex:
		return "hex"
	case KindHSL:
		return "hsl"
	case KindHSLA:
		return "hsla"
	default:
		return "unknown"
	}
}

// ColorValue is a colour tagged with the encoding it travels in. Conversions
// between encodings are explicit so an HSL string is never handed to code
// expecting hex.
type ColorValue struct {
	kind  Kind
	rgb   RGB
	hsl   HSL
	alpha float64
}

// HexValue builds a hex ColorValue. Malformed input decodes to black.
func HexValue(hex string) ColorValue {
	return FromRGB(HexToRGB(hex))
}

// FromRGB builds a hex ColorValue from channels.
func FromRGB(rgb RGB) ColorValue {
	return ColorValue{kind: KindHex, rgb: rgb, alpha: 1}
}

// HSLValue builds an HSL ColorValue.
func HSLValue(c HSL) ColorValue {
	return ColorValue{kind: KindHSL, hsl: c, alpha: 1}
}

// HSLAValue builds an HSLA ColorValue.
func HSLAValue(c HSLA) ColorValue {
	return ColorValue{kind: KindHSLA, hsl: c.HSL, alpha: c.A}
}

// ParseColorValue accepts hex, rgb()/rgba(), hsl() or hsla() notation.
// Unlike HexValue it rejects malformed hex.
func ParseColorValue(s string) (ColorValue, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "hsla("):
		c, err := ParseHSLA(s)
		if err != nil {
			return ColorValue{}, err
		}
		return HSLAValue(c), nil
	case strings.HasPrefix(s, "hsl("):
		c, err := ParseHSL(s)
		if err != nil {
			return ColorValue{}, err
		}
		return HSLValue(c), nil
	case strings.HasPrefix(s, "rgb"):
		rgb, err := CSSColorToRGB(s)
		if err != nil {
			return ColorValue{}, err
		}
		return FromRGB(rgb), nil
	default:
		if !IsHex(s) {
			return ColorValue{}, fmt.Errorf("invalid hex colour: %q", s)
		}
		return HexValue(s), nil
	}
}

// IsHex reports whether s is a 3 or 6 digit hex colour, with or without '#'.
func IsHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// Kind returns the encoding tag.
func (v ColorValue) Kind() Kind {
	return v.kind
}

// RGB returns the colour's channels regardless of encoding.
func (v ColorValue) RGB() RGB {
	if v.kind == KindHex {
		return v.rgb
	}
	return v.hsl.RGB()
}

// HSL returns the colour's HSL form regardless of encoding.
func (v ColorValue) HSL() HSL {
	if v.kind == KindHex {
		return RGBToHSL(v.rgb)
	}
	return v.hsl
}

// Alpha returns the alpha channel; hex and hsl values are opaque.
func (v ColorValue) Alpha() float64 {
	if v.kind == KindHSLA {
		return v.alpha
	}
	return 1
}

// ToHex re-tags the value as hex. Alpha is dropped.
func (v ColorValue) ToHex() ColorValue {
	return FromRGB(v.RGB())
}

// ToHSL re-tags the value as HSL. Alpha is dropped.
func (v ColorValue) ToHSL() ColorValue {
	return HSLValue(v.HSL())
}

// ToHSLA re-tags the value as HSLA with the given alpha.
func (v ColorValue) ToHSLA(alpha float64) ColorValue {
	return HSLAValue(v.HSL().WithAlpha(alpha))
}

// String renders the value in its own encoding.
func (v ColorValue) String() string {
	switch v.kind {
	case KindHSL:
		return v.hsl.String()
	case KindHSLA:
		return HSLA{HSL: v.hsl, A: v.alpha}.String()
	default:
		return v.rgb.Hex()
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v ColorValue) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *ColorValue) UnmarshalText(text []byte) error {
	parsed, err := ParseColorValue(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
