package image

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
)

func skyPalette(t *testing.T) *colour.Palette {
	t.Helper()
	p, err := colour.DefaultConfig().Derive("#38bdf8", "#3b82f6")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestCardLayout(t *testing.T) {
	p := skyPalette(t)
	opts := DefaultCardOptions()

	img, err := Card(p, opts)
	if err != nil {
		t.Fatalf("Card() error = %v", err)
	}

	wantW := 15*opts.SwatchSize + 2*opts.Padding
	wantH := opts.HeaderHeight + opts.SwatchSize + 2*opts.Padding + labelHeight
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Fatalf("card size = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}

	cy := opts.HeaderHeight + opts.Padding + opts.SwatchSize/2
	for i, c := range p.Colours {
		cx := opts.Padding + i*opts.SwatchSize + opts.SwatchSize/2
		got := img.RGBAAt(cx, cy)
		want := c.RGB()
		if got.R != want.R || got.G != want.G || got.B != want.B {
			t.Errorf("swatch %d = %v, want %s", i, got, want)
		}
	}

	// Bottom row of the header sits below the title text.
	left := img.RGBAAt(0, opts.HeaderHeight-1)
	right := img.RGBAAt(wantW-1, opts.HeaderHeight-1)
	if !near(left.R, p.Seeds[0].R) || !near(left.G, p.Seeds[0].G) || !near(left.B, p.Seeds[0].B) {
		t.Errorf("gradient start = %v, want %s", left, p.Seeds[0])
	}
	if !near(right.R, p.Seeds[1].R) || !near(right.G, p.Seeds[1].G) || !near(right.B, p.Seeds[1].B) {
		t.Errorf("gradient end = %v, want %s", right, p.Seeds[1])
	}
}

func TestCardErrors(t *testing.T) {
	if _, err := Card(&colour.Palette{}, DefaultCardOptions()); err == nil {
		t.Error("Card() accepted an empty palette")
	}

	opts := DefaultCardOptions()
	opts.SwatchSize = 0
	if _, err := Card(skyPalette(t), opts); err == nil {
		t.Error("Card() accepted a zero swatch size")
	}
}

func TestWritePNGAndLoad(t *testing.T) {
	p := skyPalette(t)
	path := filepath.Join(t.TempDir(), "card.png")

	if err := SavePNG(path, p, DefaultCardOptions()); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	img, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 15*64+32 {
		t.Errorf("loaded width = %d", img.Bounds().Dx())
	}
}

func TestLoadRemote(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, skyPalette(t), CardOptions{SwatchSize: 4}); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	img, err := Load(context.Background(), srv.URL+"/card.png")
	if err != nil {
		t.Fatalf("Load(remote) error = %v", err)
	}
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 4 {
		t.Errorf("remote image size = %v", img.Bounds())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	notImage := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(notImage, []byte("not a png"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"empty":       "",
		"missing":     filepath.Join(dir, "missing.png"),
		"directory":   dir,
		"unsupported": filepath.Join(dir, "photo.tiff"),
		"corrupt":     notImage,
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(context.Background(), path); err == nil {
				t.Errorf("Load(%q) expected error", path)
			}
		})
	}
}

func TestPNGDecodes(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, skyPalette(t), DefaultCardOptions()); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("png.Decode() error = %v", err)
	}
}
