package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/render"
	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/internal/theme"
)

// maxSourceBytes bounds snippets read by highlight.
const maxSourceBytes = 1 << 20

func newHighlightCmd(a *app) *cobra.Command {
	var (
		seeds       seedFlags
		opts        render.HighlightOptions
		format      = newEnum(render.FormatTerminal, render.Formats...)
		output      string
		lineNumbers bool
	)

	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Highlight a source file with a derived palette",
		Long: `Highlight a source file, or standard input when the file is "-", with the
syntax style derived from a theme or seed colours.

The language is detected from the file name and content unless --lang is set.

Examples:
  swatch highlight main.go
  swatch highlight --seed '#f43f5e' --format html -o snippet.html main.go
  cat query.sql | swatch highlight --lang sql -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			name, p, err := seeds.palette(cmd, a, nil)
			if err != nil {
				return err
			}
			syntax, err := theme.NewSyntax(p)
			if err != nil {
				return err
			}
			style, err := render.Style(name, syntax, a.reference())
			if err != nil {
				return err
			}

			if args[0] != "-" {
				opts.Filename = args[0]
			}
			opts.Format = format.String()
			opts.LineNumbers = lineNumbers
			a.logger.Debug("highlighting", "lexer", render.LexerName(source, opts), "theme", name)

			if output == "" {
				return render.Highlight(cmd.OutOrStdout(), source, style, opts)
			}

			var buf bytes.Buffer
			if err := render.Highlight(&buf, source, style, opts); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil { // #nosec G306 - rendered snippet is public
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.logger.Info("wrote highlighted source", "file", output)
			return nil
		},
	}

	seeds.register(cmd)
	cmd.Flags().StringVarP(&opts.Language, "lang", "l", "", "lexer name or alias (default: detect)")
	cmd.Flags().VarP(format, "format", "f", "output format ("+format.usage()+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", false, "include line numbers")

	return cmd
}

// readSource reads a snippet from a file or, for "-", the command's input.
func readSource(cmd *cobra.Command, path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path) // #nosec G304 - User-specified source file, intended to be read
		if err != nil {
			return "", fmt.Errorf("failed to open source: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(security.NewLimitedReader(r, maxSourceBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(data), nil
}
