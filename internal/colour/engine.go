package colour

import (
	"errors"
	"fmt"
)

// DefaultReference is the colour every derived tone is checked against.
// Alpha is ignored, so this is black.
const DefaultReference = "rgba(0,0,0,0.7)"

// Config holds the constants of the derivation pipeline. It is passed by
// value; the engine keeps no state between calls.
type Config struct {
	// MinContrast is the ratio each candidate must reach against Reference
	// before it is brightened.
	MinContrast float64

	// Reference is a css rgb()/rgba() colour.
	Reference string

	// Offsets are added channel-wise to the seed average, one per base tone.
	Offsets [][3]int

	// Saturations and Lightnesses replace the computed values of each base
	// tone by position. Both must be as long as Offsets.
	Saturations []int
	Lightnesses []int

	// HueShifts produce one rotated copy of the base tones each, in order.
	HueShifts []int
}

// DefaultConfig returns the canonical pipeline constants: a 7:1 contrast
// floor, five offsets and a ±45° extension, giving 15 colours.
func DefaultConfig() Config {
	return Config{
		MinContrast: ContrastAAA,
		Reference:   DefaultReference,
		Offsets: [][3]int{
			{20, -20, -20},
			{-20, 20, 20},
			{10, 10, -30},
			{-30, -10, 10},
			{20, -10, 20},
		},
		Saturations: []int{90, 85, 100, 100, 85},
		Lightnesses: []int{88, 72, 65, 59, 53},
		HueShifts:   []int{-45, 45},
	}
}

// Size returns the number of colours Derive produces.
func (c Config) Size() int {
	return len(c.Offsets) * (1 + len(c.HueShifts))
}

// Validate checks the table lengths, ranges and the reference colour.
func (c Config) Validate() error {
	var errs []error

	if len(c.Offsets) == 0 {
		errs = append(errs, errors.New("at least one offset is required"))
	}
	if len(c.Saturations) != len(c.Offsets) {
		errs = append(errs, fmt.Errorf("saturations has %d entries, want %d", len(c.Saturations), len(c.Offsets)))
	}
	if len(c.Lightnesses) != len(c.Offsets) {
		errs = append(errs, fmt.Errorf("lightnesses has %d entries, want %d", len(c.Lightnesses), len(c.Offsets)))
	}
	for i, v := range c.Saturations {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Errorf("saturation %d out of range: %d", i, v))
		}
	}
	for i, v := range c.Lightnesses {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Errorf("lightness %d out of range: %d", i, v))
		}
	}
	if c.MinContrast < 1 || c.MinContrast > 21 {
		errs = append(errs, fmt.Errorf("min contrast must be between 1 and 21, got %g", c.MinContrast))
	}
	if _, err := CSSColorToRGB(c.Reference); err != nil {
		errs = append(errs, fmt.Errorf("reference: %w", err))
	}

	return errors.Join(errs...)
}

// Derive runs the pipeline for two seed colours. Malformed seeds decode to
// black; the only error source is an invalid Config.
func (c Config) Derive(color1, color2 string) (*Palette, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	// Validated above.
	ref, _ := CSSColorToRGB(c.Reference)

	seed1 := HexToRGB(color1)
	seed2 := HexToRGB(color2)
	avg := Average(seed1, seed2)

	corrected := make([]string, len(c.Offsets))
	for i, off := range c.Offsets {
		candidate := Offset(avg, off)
		corrected[i] = CorrectContrast(HexToRGB(candidate), ref, c.MinContrast).Hex()
	}

	base := RemapSaturationLightness(ConvertToHSL(corrected), c.Saturations, c.Lightnesses)

	colours := make([]HSL, 0, c.Size())
	colours = append(colours, base...)
	for _, deg := range c.HueShifts {
		colours = append(colours, ShiftHue(base, deg)...)
	}

	return &Palette{
		Seeds:     [2]RGB{seed1, seed2},
		Colours:   colours,
		baseCount: len(base),
	}, nil
}

// GenerateColors derives the default 15-colour palette from two seeds and
// returns it as "hsl(H, S%, L%)" strings.
func GenerateColors(color1, color2 string) []string {
	p, err := DefaultConfig().Derive(color1, color2)
	if err != nil {
		// DefaultConfig is a literal and always validates.
		panic(err)
	}
	return p.Strings()
}

// Average returns the channel-wise floored mean of two colours.
func Average(a, b RGB) RGB {
	return RGB{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
	}
}

// Offset adds a per-channel delta and returns the clamped result as hex.
func Offset(c RGB, delta [3]int) string {
	return RGBToHex(int(c.R)+delta[0], int(c.G)+delta[1], int(c.B)+delta[2])
}

// RemapSaturationLightness replaces saturation and lightness by position,
// keeping each colour's hue. Colours beyond the shorter table keep their
// own values.
func RemapSaturationLightness(colours []HSL, saturations, lightnesses []int) []HSL {
	out := make([]HSL, len(colours))
	for i, c := range colours {
		if i < len(saturations) {
			c.S = clampPercent(saturations[i])
		}
		if i < len(lightnesses) {
			c.L = clampPercent(lightnesses[i])
		}
		out[i] = c
	}
	return out
}

// ShiftHue returns a copy of colours with every hue rotated by deg.
func ShiftHue(colours []HSL, deg int) []HSL {
	out := make([]HSL, len(colours))
	for i, c := range colours {
		out[i] = c.Shift(deg)
	}
	return out
}
