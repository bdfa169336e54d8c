package brickimg

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV is an 8-bit hue, saturation, value triple. Hue 0..255 covers the full circle.
type HSV struct {
	H, S, V uint8
}

// Pixel is one cell of a brick grid. The zero Pixel is empty.
type Pixel struct {
	HSV
	Solid bool
}

const (
	saturationGamma = 0.3
	valueGamma      = 1.6666
)

// ToHSV converts c to 8-bit HSV, ignoring alpha.
func ToHSV(c color.Color) HSV {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return HSV{}
	}
	// un-premultiply
	col := colorful.Color{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
	}
	h, s, v := col.Clamped().Hsv()
	return HSV{
		H: clamp8(h * 255 / 360),
		S: clamp8(s * 255),
		V: clamp8(math.Round(v * 255)),
	}
}

// Remap boosts saturation and darkens value on a power curve so colors read
// closer to the source image once rendered in game.
func Remap(c HSV) HSV {
	return HSV{
		H: c.H,
		S: clamp8(math.Pow(float64(c.S)/255, saturationGamma) * 255),
		V: clamp8(math.Pow(float64(c.V)/255, valueGamma) * 255),
	}
}

// RemapSaturation applies only the saturation curve of Remap. Text bricks
// keep the source value.
func RemapSaturation(c HSV) HSV {
	return HSV{
		H: c.H,
		S: clamp8(math.Pow(float64(c.S)/255, saturationGamma) * 255),
		V: c.V,
	}
}

// RGBA converts a remapped triple back to an opaque color for previews.
func (c HSV) RGBA() (r, g, b, a uint32) {
	col := colorful.Hsv(float64(c.H)/255*360, float64(c.S)/255, float64(c.V)/255)
	return col.Clamped().RGBA()
}

func clamp8(v float64) uint8 {
	return uint8(max(0, min(255, int(v))))
}

// HSVGrid converts img to a row-major grid of pixels passed through remap.
// Pixels whose alpha is below alphaThreshold (0..255) become empty cells.
func HSVGrid(img image.Image, alphaThreshold uint8, remap func(HSV) HSV) [][]Pixel {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	grid := make([][]Pixel, h)
	thr := uint32(alphaThreshold) * 0x101
	for y := range h {
		row := make([]Pixel, w)
		for x := range w {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			if _, _, _, a := c.RGBA(); a < thr || a == 0 {
				continue
			}
			row[x] = Pixel{HSV: remap(ToHSV(c)), Solid: true}
		}
		grid[y] = row
	}
	return grid
}
