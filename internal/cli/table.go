package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Table is a plain-text table with dynamic column widths. Cells may carry
// ANSI colour escapes; widths count printable characters only.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth wraps a column's text at word boundaries.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats the table.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	wrapped := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		wrapped[r] = make([][]string, len(row))
		for c, cell := range row {
			wrapped[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visibleWidth(h)
	}
	for _, row := range wrapped {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], visibleWidth(line))
			}
		}
	}

	sep := strings.Repeat(" ", t.padding)
	var b strings.Builder

	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = padRight(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		b.WriteByte('\n')
	}

	writeLine(t.headers)
	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	writeLine(dashes)

	for _, row := range wrapped {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for n := range height {
			cells := make([]string, len(t.headers))
			for c, lines := range row {
				if n < len(lines) {
					cells[c] = lines[n]
				}
			}
			writeLine(cells)
		}
	}

	return b.String()
}

func visibleWidth(s string) int {
	return utf8.RuneCountInString(colour.StripANSI(s))
}

// padRight pads s with spaces to width printable characters.
func padRight(s string, width int) string {
	if w := visibleWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// wrapText wraps text at word boundaries, splitting words longer than
// width. Coloured text is never wrapped.
func wrapText(text string, width int) []string {
	if width <= 0 || visibleWidth(text) <= width || colour.StripANSI(text) != text {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}

		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
