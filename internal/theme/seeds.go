package theme

import (
	"fmt"

	"github.com/jmylchreest/swatch/internal/colour"
)

// MaxPickedColours is the most colours a custom theme may supply.
const MaxPickedColours = 3

// NormaliseSeeds reduces 1-3 picked colours to the engine's seed pair:
// one colour is duplicated, two are used as given and three keep the
// first and last. Each colour may be hex, rgb(), hsl() or hsla(); the
// result is always "#rrggbb".
func NormaliseSeeds(picked []string) ([2]string, error) {
	switch n := len(picked); {
	case n == 0:
		return [2]string{}, fmt.Errorf("at least one seed colour is required")
	case n > MaxPickedColours:
		return [2]string{}, fmt.Errorf("too many seed colours: %d (max %d)", n, MaxPickedColours)
	}

	hex := make([]string, len(picked))
	for i, p := range picked {
		v, err := colour.ParseColorValue(p)
		if err != nil {
			return [2]string{}, fmt.Errorf("seed %d: %w", i+1, err)
		}
		hex[i] = v.ToHex().String()
	}

	return [2]string{hex[0], hex[len(hex)-1]}, nil
}
