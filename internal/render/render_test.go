package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/theme"
)

const goSnippet = `package main

// greet says hello.
func greet(name string) string {
	return "hello " + name
}
`

func skySyntax(t *testing.T) (*colour.Palette, *theme.Syntax) {
	t.Helper()
	p, err := colour.DefaultConfig().Derive("#38bdf8", "#3b82f6")
	if err != nil {
		t.Fatal(err)
	}
	s, err := theme.NewSyntax(p)
	if err != nil {
		t.Fatal(err)
	}
	return p, s
}

func TestStyle(t *testing.T) {
	p, s := skySyntax(t)

	style, err := Style("sky", s, colour.RGB{})
	if err != nil {
		t.Fatalf("Style() error = %v", err)
	}

	tests := []struct {
		tt   chroma.TokenType
		want string
	}{
		{chroma.Text, p.Colours[0].Hex()},
		{chroma.Keyword, p.Colours[2].Hex()},
		{chroma.LiteralString, p.Colours[3].Hex()},
		{chroma.NameFunction, p.Colours[6].Hex()},
		{chroma.LiteralNumber, p.Colours[7].Hex()},
		{chroma.LiteralStringRegex, p.Colours[14].Hex()},
	}
	for _, tt := range tests {
		t.Run(tt.tt.String(), func(t *testing.T) {
			if got := style.Get(tt.tt).Colour.String(); got != tt.want {
				t.Errorf("colour = %s, want %s", got, tt.want)
			}
		})
	}

	comment := style.Get(chroma.Comment)
	if comment.Italic != chroma.Yes {
		t.Error("comments should be italic")
	}
	if got := style.Get(chroma.Background).Background.String(); got != Backdrop(s, colour.RGB{}).Hex() {
		t.Errorf("background = %s, want backdrop", got)
	}
}

func TestBackdropIsDarkerThanSeeds(t *testing.T) {
	_, s := skySyntax(t)

	bg := Backdrop(s, colour.RGB{})
	for _, seed := range s.Gradient {
		if colour.Luminance(bg) >= colour.Luminance(seed) {
			t.Errorf("backdrop %s not darker than seed %s", bg.Hex(), seed.Hex())
		}
	}
}

func TestHighlight(t *testing.T) {
	p, s := skySyntax(t)
	style, err := Style("sky", s, colour.RGB{})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("html", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Highlight(&buf, goSnippet, style, HighlightOptions{Language: "go", Format: FormatHTML}); err != nil {
			t.Fatalf("Highlight() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "<pre") {
			t.Error("expected a <pre> block")
		}
		if !strings.Contains(out, p.Colours[2].Hex()) {
			t.Errorf("expected keyword colour %s in output", p.Colours[2].Hex())
		}
	})

	t.Run("terminal", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Highlight(&buf, goSnippet, style, HighlightOptions{Language: "go", Format: FormatTerminal}); err != nil {
			t.Fatalf("Highlight() error = %v", err)
		}
		if !strings.Contains(buf.String(), "\033[") {
			t.Error("expected ANSI escapes")
		}
		if got := colour.StripANSI(buf.String()); !strings.Contains(got, "func greet") {
			t.Errorf("stripped output lost source text: %q", got)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		if err := Highlight(&bytes.Buffer{}, goSnippet, style, HighlightOptions{Format: "pdf"}); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestLexerName(t *testing.T) {
	tests := []struct {
		name string
		opts HighlightOptions
		want string
	}{
		{name: "explicit", opts: HighlightOptions{Language: "go"}, want: "Go"},
		{name: "filename", opts: HighlightOptions{Filename: "main.go"}, want: "Go"},
		{name: "css file", opts: HighlightOptions{Filename: "style.css"}, want: "CSS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LexerName(goSnippet, tt.opts); got != tt.want {
				t.Errorf("LexerName() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCSS(t *testing.T) {
	p, _ := skySyntax(t)

	out, err := CSS(p, colour.RGB{}, "")
	if err != nil {
		t.Fatalf("CSS() error = %v", err)
	}
	css := string(out)

	want := []string{
		"--swatch-0: hsl(214, 90%, 88%);",
		"--swatch-14: hsl(261, 85%, 53%);",
		"--swatch-keyword: var(--swatch-2);",
		"--swatch-regex: var(--swatch-14);",
		"--swatch-comment: hsla(214, 90%, 88%, 0.5);",
		"--swatch-selection: hsla(201, 85%, 72%, 0.2);",
		"linear-gradient(135deg, #38bdf8,",
		", #3b82f6);",
	}
	for _, w := range want {
		if !strings.Contains(css, w) {
			t.Errorf("CSS missing %q", w)
		}
	}
}

func TestCSSPrefixAndShortPalette(t *testing.T) {
	p, _ := skySyntax(t)
	out, err := CSS(p, colour.RGB{}, "snip")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "--snip-link: var(--snip-1);") {
		t.Error("custom prefix not applied")
	}

	cfg := colour.DefaultConfig()
	cfg.HueShifts = []int{90}
	short, err := cfg.Derive("#38bdf8", "#3b82f6")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := CSS(short, colour.RGB{}, ""); err == nil {
		t.Error("CSS() accepted a 10-colour palette")
	}
}

func TestCSSInvalidPrefix(t *testing.T) {
	p, _ := skySyntax(t)

	for _, prefix := range []string{"x{}", "a;b", "1st", "-dash", "has space"} {
		if _, err := CSS(p, colour.RGB{}, prefix); err == nil {
			t.Errorf("CSS() accepted prefix %q", prefix)
		}
	}
	for _, prefix := range []string{"a", "code_block", "snip-2"} {
		if _, err := CSS(p, colour.RGB{}, prefix); err != nil {
			t.Errorf("CSS() rejected prefix %q: %v", prefix, err)
		}
	}
}
