package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"NAME", "SEEDS"})
	table.AddRow([]string{"sky", "#38bdf8"})
	table.AddRow([]string{"meadow"})

	want := "NAME    SEEDS\n" +
		"------  -------\n" +
		"sky     #38bdf8\n" +
		"meadow\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}

	lines := strings.Split(NewTable([]string{"A", "B"}).Render(), "\n")
	if len(lines) != 3 || lines[0] != "A  B" || lines[1] != "-  -" {
		t.Errorf("header-only table = %q", lines)
	}
}

func TestTableAddRowTruncates(t *testing.T) {
	table := NewTable([]string{"A", "B"})
	table.AddRow([]string{"1", "2", "3"})
	if len(table.rows[0]) != 2 {
		t.Errorf("row has %d cells, want 2", len(table.rows[0]))
	}
}

func TestTableANSIWidth(t *testing.T) {
	table := NewTable([]string{"C", "V"})
	table.AddRow([]string{colour.ColourString(colour.RGB{R: 255}, "red"), "x"})
	table.AddRow([]string{"longer", "y"})

	lines := strings.Split(table.Render(), "\n")
	if got := colour.StripANSI(lines[2]); got != "red     x" {
		t.Errorf("coloured row = %q, want %q", got, "red     x")
	}
	if lines[3] != "longer  y" {
		t.Errorf("plain row = %q", lines[3])
	}
}

func TestTableWrap(t *testing.T) {
	table := NewTable([]string{"N", "DESCRIPTION"})
	table.SetColumnMaxWidth(1, 11)
	table.AddRow([]string{"a", "the quick brown fox"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	want := []string{"N  DESCRIPTION", "-  -----------", "a  the quick", "   brown fox"}
	if !slices.Equal(lines, want) {
		t.Errorf("wrapped table = %q, want %q", lines, want)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"short", 10, []string{"short"}},
		{"the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"abcdefghijkl", 5, []string{"abcde", "fghij", "kl"}},
		{"no limit at all", 0, []string{"no limit at all"}},
	}

	for _, tt := range tests {
		if got := wrapText(tt.text, tt.width); !slices.Equal(got, tt.want) {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"→", 3, "→  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}
