// Package image loads source pictures for seed extraction and renders
// palette cards as PNG.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsRemote reports whether path is an HTTP(S) URL.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Load decodes an image from a local file or an HTTP(S) URL.
// Supported formats: JPEG, PNG, GIF, WebP.
func Load(ctx context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	if IsRemote(path) {
		data, err := httputil.Fetch(ctx, path, httputil.FetchOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
		return decode(bytes.NewReader(data))
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != "" && !slices.Contains(SupportedImageExtensions(), ext) {
		return nil, fmt.Errorf("unsupported image extension %q (supported: %s)", ext, strings.Join(SupportedImageExtensions(), ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return decode(file)
}

func decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}
