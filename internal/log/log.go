// Package log builds the hclog root logger for swatch.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options selects the level and encoding of the root logger.
type Options struct {
	// Level is an hclog level name. Unknown or empty names mean warn.
	Level string

	// Format is "text" or "json".
	Format string

	// Verbose forces debug and Quiet forces error; Verbose wins.
	Verbose bool
	Quiet   bool

	// Output defaults to stderr.
	Output io.Writer
}

// New creates the root logger named "swatch".
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	jsonFormat := strings.EqualFold(opts.Format, "json")

	return hclog.New(&hclog.LoggerOptions{
		Name:       "swatch",
		Level:      ResolveLevel(opts),
		Output:     out,
		JSONFormat: jsonFormat,
		Color:      colorMode(out, jsonFormat),
	})
}

// colorMode colours text output on files only. hclog leaves colour on for
// writers it cannot inspect, and coloured JSON is not JSON.
func colorMode(out io.Writer, jsonFormat bool) hclog.ColorOption {
	if jsonFormat {
		return hclog.ColorOff
	}
	if _, ok := out.(*os.File); ok {
		return hclog.AutoColor
	}
	return hclog.ColorOff
}

// ResolveLevel applies the verbose and quiet switches over the configured level.
func ResolveLevel(opts Options) hclog.Level {
	switch {
	case opts.Verbose:
		return hclog.Debug
	case opts.Quiet:
		return hclog.Error
	}

	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		return hclog.Warn
	}
	return level
}
