// Package plugin provides the public API for swatch exporter plugins.
// External plugins should import this package instead of internal packages.
package plugin

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "1.0.0"

	// MinCompatibleVersion is the oldest protocol version this swatch version can work with.
	MinCompatibleVersion = "1.0.0"

	// ExporterName is the key exporters are dispensed under.
	ExporterName = "exporter"

	// InfoFlag makes a plugin print its PluginInfo as JSON and exit.
	InfoFlag = "--plugin-info"
)

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)

// Handshake is the handshake configuration for go-plugin protocol.
// This ensures that plugins using go-plugin can only connect to compatible hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1, // Major version from ProtocolVersion
	MagicCookieKey:   "SWATCH_PLUGIN",
	MagicCookieValue: "swatch_palette_exporter",
}

// PluginMap returns the plugin set a host dispenses from.
func PluginMap() map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		ExporterName: &ExporterRPC{},
	}
}

// Serve runs impl as a plugin process. It blocks until the host exits.
// When started with InfoFlag it prints impl's metadata instead.
func Serve(impl Exporter) {
	if slices.Contains(os.Args[1:], InfoFlag) {
		_ = json.NewEncoder(os.Stdout).Encode(Describe(impl))
		return
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			ExporterName: &ExporterRPC{Impl: impl},
		},
	})
}

// Describe returns impl's metadata with the protocol fields filled in.
func Describe(impl Exporter) PluginInfo {
	info := impl.GetMetadata()
	info.PluginProtocol = string(PluginTypeGoPlugin)
	if info.ProtocolVersion == "" {
		info.ProtocolVersion = ProtocolVersion
	}
	return info
}
