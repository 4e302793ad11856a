package plugin

import (
	"context"
)

// Exporter is the interface exporter plugins implement for go-plugin RPC.
type Exporter interface {
	// Export renders the palette into files keyed by relative name.
	Export(ctx context.Context, palette PaletteData) (map[string][]byte, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
