package plugin

import "fmt"

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}

// PaletteData is the palette sent to exporters. Colours keep the engine's
// order; Tokens maps each syntax role to its index in Colours.
type PaletteData struct {
	Name    string            `json:"name"`
	Seeds   [2]string         `json:"seeds"`
	Colours []PaletteColour   `json:"colours"`
	Tokens  map[string]int    `json:"tokens"`
	Chrome  map[string]string `json:"chrome"`
	Args    map[string]string `json:"args,omitempty"`
	DryRun  bool              `json:"dry_run"`
}

// PaletteColour is one palette entry in every encoding exporters need.
type PaletteColour struct {
	Index int       `json:"index"`
	HSL   string    `json:"hsl"`
	Hex   string    `json:"hex"`
	RGB   RGBColour `json:"rgb"`
}

// RGBColour represents an RGB color.
type RGBColour struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Token returns the colour for a syntax role.
func (p PaletteData) Token(name string) (PaletteColour, error) {
	i, ok := p.Tokens[name]
	if !ok {
		return PaletteColour{}, fmt.Errorf("unknown token %q", name)
	}
	if i < 0 || i >= len(p.Colours) {
		return PaletteColour{}, fmt.Errorf("token %q index %d out of range", name, i)
	}
	return p.Colours[i], nil
}
