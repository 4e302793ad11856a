package executor

import (
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/theme"
	"github.com/jmylchreest/swatch/pkg/plugin"
)

// NewPaletteData converts a derived palette into the wire form exporters
// receive. The palette must be long enough to carry every token role.
func NewPaletteData(name string, p *colour.Palette, args map[string]string) (plugin.PaletteData, error) {
	s, err := theme.NewSyntax(p)
	if err != nil {
		return plugin.PaletteData{}, err
	}

	data := plugin.PaletteData{
		Name:    name,
		Seeds:   [2]string{p.Seeds[0].Hex(), p.Seeds[1].Hex()},
		Colours: make([]plugin.PaletteColour, p.Len()),
		Tokens:  make(map[string]int, len(theme.Tokens)),
		Chrome: map[string]string{
			"comment":   s.Comment.String(),
			"gutter":    s.Gutter.String(),
			"selection": s.Selection.String(),
			"caption":   s.Caption.String(),
		},
		Args: args,
	}

	for i, c := range p.All() {
		rgb := c.RGB()
		data.Colours[i] = plugin.PaletteColour{
			Index: i,
			HSL:   c.String(),
			Hex:   rgb.Hex(),
			RGB:   plugin.RGBColour{R: rgb.R, G: rgb.G, B: rgb.B},
		}
	}
	for i, tok := range theme.Tokens {
		data.Tokens[string(tok)] = i
	}

	return data, nil
}
