// Package security guards the files swatch reads and writes on behalf of
// theme files and exporter plugins.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned once a LimitedReader has delivered its quota.
var ErrSizeLimit = errors.New("size limit exceeded")

// ValidatePluginPath ensures an exporter plugin lives inside baseDir.
// An empty baseDir allows any path.
func ValidatePluginPath(pluginPath, baseDir string) error {
	if pluginPath == "" {
		return fmt.Errorf("empty plugin path")
	}
	if baseDir == "" {
		return nil
	}

	absPluginPath, err := filepath.Abs(filepath.Clean(pluginPath))
	if err != nil {
		return fmt.Errorf("invalid plugin path: %w", err)
	}

	absBaseDir, err := filepath.Abs(filepath.Clean(baseDir))
	if err != nil {
		return fmt.Errorf("invalid base directory: %w", err)
	}

	if !within(absPluginPath, absBaseDir) {
		return fmt.Errorf("plugin path must be within plugin directory (attempted path traversal)")
	}

	return nil
}

// ValidateOutputName checks a file name returned by an exporter before it
// is joined onto baseDir.
func ValidateOutputName(name, baseDir string) error {
	if name == "" {
		return fmt.Errorf("empty file name")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("file name %q contains directory traversal", name)
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("absolute file name %q is not allowed", name)
	}

	cleanBase := filepath.Clean(baseDir)
	if !within(filepath.Clean(filepath.Join(baseDir, name)), cleanBase) {
		return fmt.Errorf("file name %q would escape %s", name, baseDir)
	}

	return nil
}

func within(path, base string) bool {
	return path == base || strings.HasPrefix(path, base+string(filepath.Separator))
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitReader it fails loudly instead of truncating, so a
// decompression bomb surfaces as an error.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
// Input of exactly the limit is accepted: once the budget is spent, one
// more byte is read to tell EOF from overflow.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		var extra [1]byte
		n, err := l.R.Read(extra[:])
		if n == 0 && err != nil {
			return 0, err
		}
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
