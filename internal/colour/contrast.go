package colour

import "math"

// WCAG 2.0 contrast thresholds for normal text.
const (
	ContrastAA  = 4.5
	ContrastAAA = 7.0
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	r := gammaCorrect(float64(rgb.R) / 255.0)
	g := gammaCorrect(float64(rgb.G) / 255.0)
	b := gammaCorrect(float64(rgb.B) / 255.0)

	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect converts an sRGB component in [0,1] to linear light.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// CorrectContrast brightens c when its contrast against ref is below
// minRatio, scaling every channel by (minRatio+0.05)/ratio in one step.
// The result is not guaranteed to reach minRatio.
func CorrectContrast(c, ref RGB, minRatio float64) RGB {
	ratio := ContrastRatio(c, ref)
	if ratio >= minRatio {
		return c
	}

	factor := (minRatio + 0.05) / ratio
	return RGB{
		R: scaleChannel(c.R, factor),
		G: scaleChannel(c.G, factor),
		B: scaleChannel(c.B, factor),
	}
}

func scaleChannel(v uint8, factor float64) uint8 {
	return clampChannel(int(math.Round(float64(v) * factor)))
}
