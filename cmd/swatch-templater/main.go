// Swatch-templater is an exporter plugin that renders a text/template file
// with the palette it is handed.
//
// Plugin arguments:
//
//	template  path of the template to render (default: a key = value listing)
//	output    name of the returned file (default: <palette>.conf)
package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

const (
	pluginName    = "templater"
	pluginVersion = "0.1.0"
)

//go:embed default.tmpl
var defaultTemplate string

type templater struct{}

func (templater) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        pluginName,
		Version:     pluginVersion,
		Description: "Render text/template files with a swatch palette",
	}
}

func (templater) Export(_ context.Context, data plugin.PaletteData) (map[string][]byte, error) {
	src := defaultTemplate
	if path := data.Args["template"]; path != "" {
		b, err := os.ReadFile(path) // #nosec G304 - User-specified template, intended to be read
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		src = string(b)
	}

	output := data.Args["output"]
	if output == "" {
		output = data.Name + ".conf"
	}

	tmpl, err := template.New(output).
		Funcs(templateFuncs(data)).
		Option("missingkey=error").
		Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return map[string][]byte{output: buf.Bytes()}, nil
}

func templateFuncs(data plugin.PaletteData) template.FuncMap {
	return template.FuncMap{
		"token": func(name string) (string, error) {
			c, err := data.Token(name)
			return c.Hex, err
		},
		"colour": func(i int) (string, error) {
			if i < 0 || i >= len(data.Colours) {
				return "", fmt.Errorf("colour index %d out of range", i)
			}
			return data.Colours[i].Hex, nil
		},
		"bare":  func(hex string) string { return strings.TrimPrefix(hex, "#") },
		"upper": strings.ToUpper,
	}
}

func main() {
	plugin.Serve(templater{})
}
