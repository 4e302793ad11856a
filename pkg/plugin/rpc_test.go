package plugin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-plugin"
)

type mockExporter struct {
	files     map[string][]byte
	metadata  PluginInfo
	exportErr error
	received  PaletteData
}

func (m *mockExporter) Export(_ context.Context, palette PaletteData) (map[string][]byte, error) {
	m.received = palette
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	return m.files, nil
}

func (m *mockExporter) GetMetadata() PluginInfo {
	return m.metadata
}

func samplePalette() PaletteData {
	return PaletteData{
		Name:  "sky",
		Seeds: [2]string{"#38bdf8", "#3b82f6"},
		Colours: []PaletteColour{
			{Index: 0, HSL: "hsl(214, 90%, 88%)", Hex: "#cde2fe", RGB: RGBColour{R: 205, G: 226, B: 254}},
			{Index: 1, HSL: "hsl(201, 85%, 72%)", Hex: "#7dcaf4", RGB: RGBColour{R: 125, G: 202, B: 244}},
		},
		Tokens: map[string]int{"base": 0, "link": 1, "broken": 9},
		Chrome: map[string]string{"comment": "hsla(214, 90%, 88%, 0.5)"},
		Args:   map[string]string{"prefix": "sky"},
	}
}

// dispense connects a client and server over an in-memory RPC connection.
func dispense(t *testing.T, impl Exporter) Exporter {
	t.Helper()

	client, _ := plugin.TestPluginRPCConn(t, map[string]plugin.Plugin{
		ExporterName: &ExporterRPC{Impl: impl},
	}, nil)
	t.Cleanup(func() { client.Close() })

	raw, err := client.Dispense(ExporterName)
	if err != nil {
		t.Fatalf("Dispense() error = %v", err)
	}
	exp, ok := raw.(Exporter)
	if !ok {
		t.Fatalf("dispensed %T, want Exporter", raw)
	}
	return exp
}

func TestExporterRoundTrip(t *testing.T) {
	mock := &mockExporter{
		files: map[string][]byte{"sky.conf": []byte("base=#cde2fe\n")},
		metadata: PluginInfo{
			Name:            "test-exporter",
			Version:         "1.0.0",
			ProtocolVersion: ProtocolVersion,
			Description:     "Test exporter",
		},
	}

	exp := dispense(t, mock)

	if got := exp.GetMetadata(); got != mock.metadata {
		t.Errorf("GetMetadata() = %+v, want %+v", got, mock.metadata)
	}

	files, err := exp.Export(context.Background(), samplePalette())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if string(files["sky.conf"]) != "base=#cde2fe\n" {
		t.Errorf("Export() files = %v", files)
	}

	if mock.received.Name != "sky" || len(mock.received.Colours) != 2 {
		t.Errorf("server received %+v", mock.received)
	}
	if mock.received.Args["prefix"] != "sky" {
		t.Errorf("args not transferred: %v", mock.received.Args)
	}
}

func TestExporterRemoteError(t *testing.T) {
	exp := dispense(t, &mockExporter{exportErr: errors.New("template missing")})

	_, err := exp.Export(context.Background(), samplePalette())
	if err == nil {
		t.Fatal("Export() expected error")
	}
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Errorf("error %T is not *RPCError", err)
	}
	if !strings.Contains(err.Error(), "template missing") {
		t.Errorf("error = %v, want remote message", err)
	}
}

func TestPaletteDataToken(t *testing.T) {
	p := samplePalette()

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{name: "base", token: "base", want: "#cde2fe"},
		{name: "link", token: "link", want: "#7dcaf4"},
		{name: "unknown", token: "keyword", wantErr: true},
		{name: "out of range", token: "broken", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Token(tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Token() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Hex != tt.want {
				t.Errorf("Token() = %s, want %s", got.Hex, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	info := Describe(&mockExporter{metadata: PluginInfo{Name: "css"}})
	if info.PluginProtocol != string(PluginTypeGoPlugin) {
		t.Errorf("PluginProtocol = %q", info.PluginProtocol)
	}
	if info.ProtocolVersion != ProtocolVersion {
		t.Errorf("ProtocolVersion = %q", info.ProtocolVersion)
	}

	pinned := Describe(&mockExporter{metadata: PluginInfo{Name: "css", ProtocolVersion: "1.2.0"}})
	if pinned.ProtocolVersion != "1.2.0" {
		t.Errorf("declared ProtocolVersion overwritten: %q", pinned.ProtocolVersion)
	}
}

func TestPluginMap(t *testing.T) {
	m := PluginMap()
	if _, ok := m[ExporterName].(*ExporterRPC); !ok {
		t.Errorf("PluginMap()[%q] = %T", ExporterName, m[ExporterName])
	}
	if Handshake.MagicCookieKey != "SWATCH_PLUGIN" {
		t.Errorf("Handshake cookie = %s", Handshake.MagicCookieKey)
	}
}
