package image

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/swatch/internal/colour"
)

// CardOptions controls the palette card layout.
type CardOptions struct {
	// SwatchSize is the edge of each square swatch in pixels.
	SwatchSize int

	// Padding surrounds the swatch row and separates the header.
	Padding int

	// HeaderHeight is the height of the seed gradient band.
	HeaderHeight int

	// Title is drawn on the gradient band. Empty draws the seed pair.
	Title string

	// Labels draws each colour's hex code under its swatch.
	Labels bool
}

// DefaultCardOptions returns the layout used by the image command.
func DefaultCardOptions() CardOptions {
	return CardOptions{
		SwatchSize:   64,
		Padding:      16,
		HeaderHeight: 96,
		Labels:       true,
	}
}

const labelHeight = 20

var (
	white = colour.RGB{R: 255, G: 255, B: 255}
	black = colour.RGB{}
)

// Card draws the seed gradient above one swatch per palette entry.
func Card(p *colour.Palette, opts CardOptions) (*image.RGBA, error) {
	if p.Len() == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	if opts.SwatchSize <= 0 {
		return nil, fmt.Errorf("swatch size must be positive, got %d", opts.SwatchSize)
	}
	opts.Padding = max(opts.Padding, 0)
	opts.HeaderHeight = max(opts.HeaderHeight, 0)

	width := p.Len()*opts.SwatchSize + 2*opts.Padding
	height := opts.HeaderHeight + opts.SwatchSize + 2*opts.Padding
	if opts.Labels {
		height += labelHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{A: 255}}, image.Point{}, draw.Src)

	drawGradient(img, image.Rect(0, 0, width, opts.HeaderHeight), p.Seeds[0], p.Seeds[1])

	if opts.HeaderHeight > 0 {
		title := opts.Title
		if title == "" {
			title = fmt.Sprintf("%s + %s", p.Seeds[0].Hex(), p.Seeds[1].Hex())
		}
		mid := colour.Average(p.Seeds[0], p.Seeds[1])
		drawLabel(img, title, opts.Padding, opts.HeaderHeight/2+4, readableOn(mid))
	}

	top := opts.HeaderHeight + opts.Padding
	for i, c := range p.All() {
		x := opts.Padding + i*opts.SwatchSize
		rect := image.Rect(x, top, x+opts.SwatchSize, top+opts.SwatchSize)
		draw.Draw(img, rect, &image.Uniform{C: c.RGB().Color()}, image.Point{}, draw.Src)

		if opts.Labels {
			drawLabel(img, c.Hex()[1:], x+2, top+opts.SwatchSize+labelHeight-6, white)
		}
	}

	return img, nil
}

// WritePNG encodes a card for p to w.
func WritePNG(w io.Writer, p *colour.Palette, opts CardOptions) error {
	img, err := Card(p, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes a card for p to path.
func SavePNG(path string, p *colour.Palette, opts CardOptions) error {
	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePNG(f, p, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// drawGradient fills r with a horizontal blend from a to b in Lab space.
func drawGradient(img *image.RGBA, r image.Rectangle, a, b colour.RGB) {
	if r.Empty() {
		return
	}
	from := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	to := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}

	span := max(r.Dx()-1, 1)
	for x := r.Min.X; x < r.Max.X; x++ {
		cr, cg, cb := from.BlendLab(to, float64(x-r.Min.X)/float64(span)).Clamped().RGB255()
		col := color.RGBA{R: cr, G: cg, B: cb, A: 255}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func drawLabel(img *image.RGBA, text string, x, y int, c colour.RGB) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.Color()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// readableOn picks black or white text, whichever contrasts more with bg.
func readableOn(bg colour.RGB) colour.RGB {
	if colour.ContrastRatio(bg, black) > colour.ContrastRatio(bg, white) {
		return black
	}
	return white
}
