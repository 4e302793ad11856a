package theme

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/security"
)

// maxThemeFileSize bounds a decompressed theme file.
const maxThemeFileSize = 4 * 1024 * 1024

// fileTheme is the on-disk shape. Seeds hold 1-3 colours in any notation
// colour.ParseColorValue accepts.
type fileTheme struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Seeds       []colour.ColorValue `json:"seeds"`
}

type themeFile struct {
	Themes []fileTheme `json:"themes"`
}

// LoadFile reads themes from a JSON file. Files that start with the xz
// magic bytes are decompressed first, whatever their extension.
func LoadFile(path string) ([]Theme, error) {
	f, err := os.Open(path) // #nosec G304 - User-specified theme file, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open theme file: %w", err)
	}
	defer f.Close()

	themes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme file %s: %w", path, err)
	}
	return themes, nil
}

// Decode parses a theme document, transparently handling xz compression.
func Decode(r io.Reader) ([]Theme, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(xz.HeaderLen); err == nil && xz.ValidHeader(magic) {
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		src = xzr
	}

	data, err := io.ReadAll(security.NewLimitedReader(src, maxThemeFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read themes: %w", err)
	}

	var doc themeFile
	if err := json.Unmarshal(bytes.TrimSpace(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse themes: %w", err)
	}

	out := make([]Theme, 0, len(doc.Themes))
	for i, ft := range doc.Themes {
		if ft.Name == "" {
			return nil, fmt.Errorf("theme %d has no name", i)
		}

		picked := make([]string, len(ft.Seeds))
		for j, s := range ft.Seeds {
			picked[j] = s.String()
		}
		seeds, err := NormaliseSeeds(picked)
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", ft.Name, err)
		}

		out = append(out, Theme{Name: ft.Name, Description: ft.Description, Seeds: seeds})
	}

	return out, nil
}

// Encode writes themes in the format Decode reads, xz-compressed when
// compress is set.
func Encode(w io.Writer, themes []Theme, compress bool) error {
	doc := themeFile{Themes: make([]fileTheme, len(themes))}
	for i, t := range themes {
		doc.Themes[i] = fileTheme{
			Name:        t.Name,
			Description: t.Description,
			Seeds:       []colour.ColorValue{colour.HexValue(t.Seeds[0]), colour.HexValue(t.Seeds[1])},
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode themes: %w", err)
	}
	data = append(data, '\n')

	if !compress {
		_, err := w.Write(data)
		return err
	}

	xzw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := xzw.Write(data); err != nil {
		xzw.Close()
		return fmt.Errorf("failed to compress themes: %w", err)
	}
	return xzw.Close()
}

// LoadInto reads a theme file and registers every theme in it.
func (r *Registry) LoadInto(path string) (int, error) {
	themes, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	for _, t := range themes {
		if err := r.Register(t); err != nil {
			return 0, err
		}
	}
	return len(themes), nil
}
