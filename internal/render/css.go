package render

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"text/template"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/theme"
)

//go:embed *.tmpl
var templates embed.FS

// prefixPattern limits prefixes to characters valid in a CSS custom property name.
var prefixPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// GradientAngle is the direction of the background gradient in degrees.
const GradientAngle = 135

// CSSData holds data for the CSS template.
type CSSData struct {
	Prefix     string
	Colours    []CSSColour
	Tokens     []CSSToken
	Comment    string
	Gutter     string
	Selection  string
	Caption    string
	Backdrop   string
	Angle      int
	From       string
	Via        string
	To         string
	Foreground string
}

// CSSColour is one palette entry.
type CSSColour struct {
	Index int
	HSL   string
	Hex   string
}

// CSSToken aliases a token role to its palette entry.
type CSSToken struct {
	Name  string
	Index int
}

// CSS renders custom properties for every palette entry, the token roles
// and the seed gradient. Property names start with "--<prefix>-".
func CSS(p *colour.Palette, ref colour.RGB, prefix string) ([]byte, error) {
	if prefix == "" {
		prefix = "swatch"
	}
	if !prefixPattern.MatchString(prefix) {
		return nil, fmt.Errorf("invalid CSS prefix %q: must start with a letter and contain only letters, digits, '-' or '_'", prefix)
	}

	s, err := theme.NewSyntax(p)
	if err != nil {
		return nil, err
	}

	tmplContent, err := templates.ReadFile("palette.css.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read CSS template: %w", err)
	}

	tmpl, err := template.New("palette.css").Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSS template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, prepareCSSData(p, s, ref, prefix)); err != nil {
		return nil, fmt.Errorf("failed to execute CSS template: %w", err)
	}

	return buf.Bytes(), nil
}

func prepareCSSData(p *colour.Palette, s *theme.Syntax, ref colour.RGB, prefix string) CSSData {
	data := CSSData{
		Prefix:     prefix,
		Comment:    s.Comment.String(),
		Gutter:     s.Gutter.String(),
		Selection:  s.Selection.String(),
		Caption:    s.Caption.String(),
		Backdrop:   Backdrop(s, ref).Hex(),
		Angle:      GradientAngle,
		From:       s.Gradient[0].Hex(),
		Via:        fromColorful(toColorful(s.Gradient[0]).BlendLab(toColorful(s.Gradient[1]), 0.5)).Hex(),
		To:         s.Gradient[1].Hex(),
		Foreground: s.Tokens[theme.TokenBase].String(),
	}

	for i, c := range p.Colours {
		data.Colours = append(data.Colours, CSSColour{Index: i, HSL: c.String(), Hex: c.Hex()})
	}
	for i, tok := range theme.Tokens {
		data.Tokens = append(data.Tokens, CSSToken{Name: string(tok), Index: i})
	}

	return data
}
