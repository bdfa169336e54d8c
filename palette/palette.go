// Package palette picks a small set of representative colors from an image.
package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// ErrEmpty is returned when no color could be extracted.
var ErrEmpty = errors.New("empty palette")

type Method int

const (
	MethodMedianCut Method = iota
	MethodDominantColor
	MethodKMeans
)

func (m Method) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	case MethodDominantColor:
		return "dominantcolor"
	default:
		return "mediancut"
	}
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "", "mediancut":
		return MethodMedianCut, nil
	case "dominantcolor", "dominant":
		return MethodDominantColor, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortByBrightness orders colors from darkest to brightest by relative luminance.
func SortByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ya, yb := luminance(a), luminance(b)
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Extract returns at most k colors of img. The kmeans method falls back to
// dominantcolor when clustering yields nothing.
func Extract(img image.Image, k int, method Method) ([]colorful.Color, error) {
	if k <= 0 {
		return nil, fmt.Errorf("palette size %d: must be positive", k)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s: %w: empty image", method, ErrEmpty)
	}
	var p []colorful.Color
	switch method {
	case MethodKMeans:
		p = extractKMeans(img, k)
		if len(p) == 0 {
			slog.Warn("kmeans returned empty palette, falling back to dominantcolor")
			p = extractDominant(img, k)
		}
	case MethodDominantColor:
		p = extractDominant(img, k)
	default:
		p = extractMedianCut(img, k)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrEmpty)
	}
	return p, nil
}

func extractMedianCut(img image.Image, k int) []colorful.Color {
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, k), img)
	out := make([]colorful.Color, 0, len(pal))
	for _, c := range pal {
		col, ok := colorful.MakeColor(c)
		if !ok {
			// fully transparent bucket
			continue
		}
		out = append(out, col.Clamped())
	}
	return out
}

func extractDominant(img image.Image, k int) []colorful.Color {
	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: c.Weight})
	}
	return SelectDiverse(weighted, k)
}

// maxSamples bounds the kmeans dataset.
const maxSamples = 12000

// samples returns the straight RGB of visible pixels on a regular stride
// chosen so that at most about limit pixels are visited.
func samples(img image.Image, limit int) clusters.Observations {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	stride := max(1, int(math.Ceil(math.Sqrt(float64(n)/float64(limit)))))
	obs := make(clusters.Observations, 0, min(n, limit))
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			obs = append(obs, clusters.Coordinates{c.R, c.G, c.B})
		}
	}
	return obs
}

func extractKMeans(img image.Image, k int) []colorful.Color {
	dataset := samples(img, maxSamples)
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	// Most populated first so the seed is the dominant tone.
	slices.SortStableFunc(weighted, func(a, b weightedColor) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}
		return 0
	})
	return SelectDiverse(weighted, k)
}

// SelectDiverse greedily picks k colors that are far apart in Lab space,
// favoring heavier candidates. The heaviest candidate is always first.
func SelectDiverse(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := max(c.Weight, 1e-6)
		maxW = max(maxW, w)
		items = append(items, item{col: col, lab: [3]float64{l, a, b}, w: w})
	}
	k = min(k, len(items))

	picked := make([]int, 0, k)
	taken := make([]bool, len(items))

	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[seed].w {
			seed = i
		}
	}
	picked = append(picked, seed)
	taken[seed] = true

	for len(picked) < k {
		best := -1
		bestScore := -1.0
		for i := range items {
			if taken[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range picked {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(items[i].w/maxW))
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, 0, len(picked))
	for _, idx := range picked {
		out = append(out, items[idx].col)
	}
	return out
}

// ToColorPalette converts colors to opaque 8-bit palette entries.
func ToColorPalette(p []colorful.Color) color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		r, g, b := c.Clamped().RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}
