// Package seed produces seed colour pairs for the palette engine from
// sources other than a user's colour picks: pictures and text prompts.
package seed

import (
	"cmp"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/swatch/internal/colour"
)

// ExtractOptions tunes image seed extraction.
type ExtractOptions struct {
	// Clusters is the number of k-means clusters considered.
	Clusters int

	// MaxIterations bounds the k-means refinement loop.
	MaxIterations int

	// MaxSamples bounds how many pixels are sampled.
	MaxSamples int

	// MinDistance is the smallest CIE76 distance between the two seeds.
	// A weaker second cluster is preferred over one closer than this.
	MinDistance float64
}

// DefaultExtractOptions returns the options used by the CLI.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Clusters:      6,
		MaxIterations: 20,
		MaxSamples:    2000,
		MinDistance:   0.15,
	}
}

// Cluster is a dominant colour and its share of the sampled pixels.
type Cluster struct {
	Colour colour.RGB
	Weight float64
}

type point struct{ r, g, b float64 }

func (p point) dist2(o point) float64 {
	dr, dg, db := p.r-o.r, p.g-o.g, p.b-o.b
	return dr*dr + dg*dg + db*db
}

func (p point) rgb() colour.RGB {
	return colour.RGB{R: uint8(math.Round(p.r)), G: uint8(math.Round(p.g)), B: uint8(math.Round(p.b))}
}

// FromImage picks two seeds from a picture: the dominant colour and the
// strongest cluster far enough from it. The result is deterministic for
// identical pixel content.
func FromImage(img image.Image, opts ExtractOptions) ([2]string, error) {
	clusters, err := Dominant(img, opts)
	if err != nil {
		return [2]string{}, err
	}

	first := clusters[0].Colour
	second := first
	for _, c := range clusters[1:] {
		if toColorful(first).DistanceLab(toColorful(c.Colour)) >= opts.MinDistance {
			second = c.Colour
			break
		}
	}

	return [2]string{first.Hex(), second.Hex()}, nil
}

// Dominant clusters the image's pixels and returns the clusters sorted by
// weight, heaviest first.
func Dominant(img image.Image, opts ExtractOptions) ([]Cluster, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if opts.Clusters < 1 || opts.Clusters > 256 {
		return nil, fmt.Errorf("cluster count must be between 1 and 256, got %d", opts.Clusters)
	}

	pixels := samplePixels(img, max(opts.MaxSamples, 1))
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	counts := make(map[colour.RGB]int)
	for _, p := range pixels {
		counts[p.rgb()]++
	}

	var clusters []Cluster
	if len(counts) <= opts.Clusters {
		for c, n := range counts {
			clusters = append(clusters, Cluster{Colour: c, Weight: float64(n) / float64(len(pixels))})
		}
	} else {
		rng := rand.New(rand.NewPCG(contentSeed(img), uint64(opts.Clusters))) // #nosec G404 -- clustering, not crypto
		centroids, weights := kmeans(pixels, opts.Clusters, max(opts.MaxIterations, 1), rng)
		for i, c := range centroids {
			if weights[i] > 0 {
				clusters = append(clusters, Cluster{Colour: c.rgb(), Weight: weights[i]})
			}
		}
	}

	slices.SortFunc(clusters, func(a, b Cluster) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.Colour.Hex(), b.Colour.Hex())
	})
	return clusters, nil
}

// samplePixels grid-samples up to maxSamples opaque pixels.
func samplePixels(img image.Image, maxSamples int) []point {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	step := max(int(math.Sqrt(float64(total)/float64(maxSamples))), 1)

	pixels := make([]point, 0, min(total, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			pixels = append(pixels, point{float64(r >> 8), float64(g >> 8), float64(b >> 8)})
			if len(pixels) >= maxSamples {
				return pixels
			}
		}
	}
	return pixels
}

// kmeans clusters points with k-means++ initialisation. Weights are the
// share of points assigned to each centroid.
func kmeans(points []point, k, maxIterations int, rng *rand.Rand) ([]point, []float64) {
	centroids := initCentroids(points, k, rng)
	assignments := make([]int, len(points))

	for range maxIterations {
		changed := 0
		for i, p := range points {
			if n := nearest(p, centroids); n != assignments[i] {
				assignments[i] = n
				changed++
			}
		}

		sums := make([]point, k)
		counts := make([]int, k)
		for i, p := range points {
			c := assignments[i]
			sums[c].r += p.r
			sums[c].g += p.g
			sums[c].b += p.b
			counts[c]++
		}
		for i := range centroids {
			if counts[i] > 0 {
				n := float64(counts[i])
				centroids[i] = point{sums[i].r / n, sums[i].g / n, sums[i].b / n}
			}
		}

		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	for i := range weights {
		weights[i] /= float64(len(points))
	}
	return centroids, weights
}

func initCentroids(points []point, k int, rng *rand.Rand) []point {
	centroids := make([]point, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	dists := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			dists[i] = p.dist2(centroids[nearest(p, centroids)])
			total += dists[i]
		}
		if total == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point{last.r + 0.1, last.g + 0.1, last.b + 0.1})
			continue
		}

		target := rng.Float64() * total
		next := points[len(points)-1]
		for i, d := range dists {
			target -= d
			if target <= 0 {
				next = points[i]
				break
			}
		}
		centroids = append(centroids, next)
	}
	return centroids
}

func nearest(p point, centroids []point) int {
	best, bestDist := 0, math.MaxFloat64
	for i, c := range centroids {
		if d := p.dist2(c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// contentSeed hashes the image dimensions and a pixel grid so the same
// picture always clusters the same way.
func contentSeed(img image.Image) uint64 {
	bounds := img.Bounds()
	h := sha256.New()

	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(bounds.Dx()))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(bounds.Dy()))
	h.Write(dims[:])

	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	var px [4]byte
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			px[0], px[1], px[2], px[3] = byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8)
			h.Write(px[:])
		}
	}

	return binary.LittleEndian.Uint64(h.Sum(nil)[:8])
}

func toColorful(c colour.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
