package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Palette is the ordered output of Derive. Position is meaningful:
// consumers index into Colours to pick syntax token tones.
type Palette struct {
	// Seeds are the decoded input colours.
	Seeds [2]RGB

	// Colours holds the base tones followed by one block per hue shift.
	Colours []HSL

	baseCount int
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// Base returns the tones before any hue shift.
func (p *Palette) Base() []HSL {
	return p.Colours[:p.baseCount]
}

// Shifted returns the block produced by the n-th hue shift.
func (p *Palette) Shifted(n int) ([]HSL, error) {
	start := p.baseCount * (n + 1)
	if n < 0 || p.baseCount == 0 || start+p.baseCount > len(p.Colours) {
		return nil, fmt.Errorf("hue shift block out of bounds: %d", n)
	}
	return p.Colours[start : start+p.baseCount], nil
}

// Get returns the colour at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (HSL, error) {
	if index < 0 || index >= len(p.Colours) {
		return HSL{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Colours))
	}
	return p.Colours[index], nil
}

// Strings returns every colour as "hsl(H, S%, L%)".
func (p *Palette) Strings() []string {
	out := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		out[i] = c.String()
	}
	return out
}

// Hex returns every colour as "#rrggbb".
func (p *Palette) Hex() []string {
	out := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		out[i] = c.Hex()
	}
	return out
}

// All returns an iterator over all colours in the palette.
func (p *Palette) All() func(func(int, HSL) bool) {
	return func(yield func(int, HSL) bool) {
		for i, c := range p.Colours {
			if !yield(i, c) {
				return
			}
		}
	}
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Index int    `json:"index"`
	HSL   string `json:"hsl"`
	Hex   string `json:"hex"`
	RGB   RGB    `json:"rgb"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Seeds   []string     `json:"seeds"`
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colours"`
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	colours := make([]ColourJSON, len(p.Colours))
	for i, c := range p.Colours {
		rgb := c.RGB()
		colours[i] = ColourJSON{
			Index: i,
			HSL:   c.String(),
			Hex:   rgb.Hex(),
			RGB:   rgb,
		}
	}

	return json.MarshalIndent(PaletteJSON{
		Seeds:   []string{p.Seeds[0].Hex(), p.Seeds[1].Hex()},
		Count:   len(p.Colours),
		Colours: colours,
	}, "", "  ")
}

// String returns a human-readable listing of the palette.
func (p *Palette) String() string {
	return p.StringWithPreview(false)
}

// StringWithPreview lists the palette, optionally with ANSI colour blocks.
func (p *Palette) StringWithPreview(preview bool) string {
	if len(p.Colours) == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette from %s + %s (%d colours):\n", p.Seeds[0].Hex(), p.Seeds[1].Hex(), len(p.Colours))
	for i, c := range p.Colours {
		if preview {
			fmt.Fprintf(&b, "  %2d: %s %-20s %s\n", i, ColourPreview(c.RGB(), 4), c.String(), c.Hex())
		} else {
			fmt.Fprintf(&b, "  %2d: %-20s %s\n", i, c.String(), c.Hex())
		}
	}
	return b.String()
}
