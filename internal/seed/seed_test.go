package seed

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func stripes(widths []int, colours []color.RGBA) *image.RGBA {
	total := 0
	for _, w := range widths {
		total += w
	}
	img := image.NewRGBA(image.Rect(0, 0, total, 10))
	x := 0
	for i, w := range widths {
		for dx := range w {
			for y := range 10 {
				img.SetRGBA(x+dx, y, colours[i])
			}
		}
		x += w
	}
	return img
}

func TestFromImage(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	nearRed := color.RGBA{R: 250, G: 2, A: 255}

	tests := []struct {
		name    string
		img     image.Image
		want    [2]string
		wantErr bool
	}{
		{
			name: "two colours by weight",
			img:  stripes([]int{6, 4}, []color.RGBA{red, blue}),
			want: [2]string{"#ff0000", "#0000ff"},
		},
		{
			name: "skips near duplicate",
			img:  stripes([]int{5, 3, 2}, []color.RGBA{red, nearRed, blue}),
			want: [2]string{"#ff0000", "#0000ff"},
		},
		{
			name: "single colour duplicated",
			img:  stripes([]int{4}, []color.RGBA{blue}),
			want: [2]string{"#0000ff", "#0000ff"},
		},
		{
			name:    "fully transparent",
			img:     image.NewRGBA(image.Rect(0, 0, 4, 4)),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromImage(tt.img, DefaultExtractOptions())
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromImage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FromImage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDominantKMeansDeterministic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := range 64 {
		for x := range 64 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: 128, A: 255})
		}
	}

	opts := DefaultExtractOptions()
	a, err := Dominant(img, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Dominant(img, opts)
	if err != nil {
		t.Fatal(err)
	}

	if len(a) == 0 || len(a) > opts.Clusters {
		t.Fatalf("Dominant() returned %d clusters", len(a))
	}
	total := 0.0
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("cluster %d differs between runs: %v vs %v", i, a[i], b[i])
		}
		if i > 0 && a[i].Weight > a[i-1].Weight {
			t.Errorf("clusters not sorted by weight at %d", i)
		}
		total += a[i].Weight
	}
	if total < 0.999 || total > 1.001 {
		t.Errorf("weights sum to %f, want 1", total)
	}
}

func TestDominantInvalid(t *testing.T) {
	if _, err := Dominant(nil, DefaultExtractOptions()); err == nil {
		t.Error("Dominant(nil) expected error")
	}
	opts := DefaultExtractOptions()
	opts.Clusters = 0
	if _, err := Dominant(image.NewRGBA(image.Rect(0, 0, 1, 1)), opts); err == nil {
		t.Error("Dominant() accepted zero clusters")
	}
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    Suggestion
		wantErr bool
	}{
		{
			name: "json",
			text: `{"name": "Deep Ocean", "seeds": ["#0EA5E9", "#1e3a8a"]}`,
			want: Suggestion{Name: "deep-ocean", Seeds: [2]string{"#0ea5e9", "#1e3a8a"}},
		},
		{
			name: "fenced json",
			text: "```json\n{\"name\": \"ember\", \"seeds\": [\"#ef4444\"]}\n```",
			want: Suggestion{Name: "ember", Seeds: [2]string{"#ef4444", "#ef4444"}},
		},
		{
			name: "prose fallback",
			text: "Try #a3e635 fading into #22c55e for a fresh look.",
			want: Suggestion{Name: "suggested", Seeds: [2]string{"#a3e635", "#22c55e"}},
		},
		{
			name:    "no colours",
			text:    "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "invalid json seed",
			text:    `{"name": "x", "seeds": ["blue"]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSuggestion(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSuggestion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSuggestion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func TestSuggest(t *testing.T) {
	gen := &stubGenerator{reply: `{"name": "dusk", "seeds": ["#f97316", "#6366f1"]}`}

	got, err := Suggest(context.Background(), gen, "  warm evening sky ")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if got.Seeds != [2]string{"#f97316", "#6366f1"} {
		t.Errorf("Suggest() seeds = %v", got.Seeds)
	}
	if !strings.HasSuffix(gen.prompt, "warm evening sky") {
		t.Errorf("prompt = %q", gen.prompt)
	}
	if th := got.Theme("warm evening sky"); th.Name != "dusk" || th.Description != "warm evening sky" {
		t.Errorf("Theme() = %+v", th)
	}

	if _, err := Suggest(context.Background(), gen, " "); err == nil {
		t.Error("Suggest() accepted an empty prompt")
	}

	failing := &stubGenerator{err: errors.New("quota exceeded")}
	if _, err := Suggest(context.Background(), failing, "x"); err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Suggest() error = %v, want wrapped generator error", err)
	}
}

func TestNewGenAIRequiresKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	if _, err := NewGenAI(context.Background(), GenAIOptions{}); err == nil {
		t.Error("NewGenAI() expected error without GOOGLE_API_KEY")
	}
	if _, err := NewGenAI(context.Background(), GenAIOptions{Backend: "carrier-pigeon"}); err == nil {
		t.Error("NewGenAI() expected error for unknown backend")
	}
}
