package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Output formats for Highlight.
const (
	FormatHTML     = "html"
	FormatTerminal = "terminal"
)

// Formats lists the supported highlight output formats.
var Formats = []string{FormatHTML, FormatTerminal}

// HighlightOptions controls lexer selection and output.
type HighlightOptions struct {
	// Language is a chroma lexer name or alias. Empty means detect.
	Language string

	// Filename is matched against lexer globs when Language is empty.
	Filename string

	Format      string
	LineNumbers bool
}

// Highlight writes source coloured with style.
func Highlight(w io.Writer, source string, style *chroma.Style, opts HighlightOptions) error {
	lexer := selectLexer(source, opts)

	it, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("failed to tokenise source: %w", err)
	}

	var formatter chroma.Formatter
	switch strings.ToLower(opts.Format) {
	case "", FormatHTML:
		formatter = html.New(
			html.Standalone(true),
			html.WithClasses(false),
			html.WithLineNumbers(opts.LineNumbers),
			html.TabWidth(4),
		)
	case FormatTerminal:
		formatter = formatters.Get("terminal16m")
	default:
		return fmt.Errorf("invalid format: %s (must be one of: %s)", opts.Format, strings.Join(Formats, ", "))
	}

	if err := formatter.Format(w, style, it); err != nil {
		return fmt.Errorf("failed to format source: %w", err)
	}
	return nil
}

// LexerName reports which lexer Highlight would use.
func LexerName(source string, opts HighlightOptions) string {
	return selectLexer(source, opts).Config().Name
}

func selectLexer(source string, opts HighlightOptions) chroma.Lexer {
	var lexer chroma.Lexer
	if opts.Language != "" {
		lexer = lexers.Get(opts.Language)
	}
	if lexer == nil && opts.Filename != "" {
		lexer = lexers.Match(opts.Filename)
	}
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return lexer
}
