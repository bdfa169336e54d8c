package brickimg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/disintegration/gift"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"github.com/setanarut/brickimg/palette"
)

// ErrBadSize is returned for non-positive target dimensions.
var ErrBadSize = errors.New("invalid target size")

type Options struct {
	// Output height in cells. Required.
	Height int
	// Output width in cells. 0 keeps the source aspect ratio.
	Width int
	// Maximum palette size.
	Colors int
	Method palette.Method
	// Gaussian blur sigma applied before resizing. 0 disables it.
	// Small values (0.5-1.5) merge speckles and cut the brick count.
	Blur float32
	// Floyd-Steinberg dithering when mapping to the palette. Produces more bricks.
	Dither bool
	// Pixels with alpha below this value (0..255) get no brick.
	AlphaThreshold uint8
}

func DefaultOptions() Options {
	return Options{
		Height:         64,
		Colors:         16,
		Method:         palette.MethodMedianCut,
		AlphaThreshold: 128,
	}
}

// TargetSize resolves the output size for an image of size src. A zero width
// is derived from height, keeping the aspect ratio.
func TargetSize(src image.Point, width, height int) (image.Point, error) {
	if height <= 0 || width < 0 {
		return image.Point{}, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	if width == 0 {
		if src.X <= 0 || src.Y <= 0 {
			return image.Point{}, fmt.Errorf("%w: empty source image", ErrBadSize)
		}
		width = src.X * height / src.Y
		if width == 0 {
			return image.Point{}, fmt.Errorf("%w: derived width is 0 for %v at height %d", ErrBadSize, src, height)
		}
	}
	return image.Pt(width, height), nil
}

// Prepared is an image reduced to a small palette at brick resolution.
type Prepared struct {
	Image   *image.Paletted
	Palette []colorful.Color
}

// Grid returns the remapped HSV cells of p for scalable bricks.
// Transparent palette entries are empty.
func (p *Prepared) Grid() [][]Pixel {
	return HSVGrid(p.Image, 1, Remap)
}

// TextGrid is Grid with only the saturation curve applied, as text bricks use it.
func (p *Prepared) TextGrid() [][]Pixel {
	return HSVGrid(p.Image, 1, RemapSaturation)
}

// Prepare resizes img to brick resolution and reduces it to opt.Colors colors.
func Prepare(img image.Image, opt Options) (*Prepared, error) {
	size, err := TargetSize(img.Bounds().Size(), opt.Width, opt.Height)
	if err != nil {
		return nil, err
	}

	src := img
	if opt.Blur > 0 {
		g := gift.New(gift.GaussianBlur(opt.Blur))
		dst := image.NewNRGBA(g.Bounds(img.Bounds()))
		g.Draw(dst, img)
		src = dst
	}
	small := resize.Resize(uint(size.X), uint(size.Y), src, resize.Bicubic)

	if opt.Colors > 255 {
		return nil, fmt.Errorf("palette size %d: at most 255 colors", opt.Colors)
	}
	colors, err := palette.Extract(small, opt.Colors, opt.Method)
	if err != nil {
		return nil, err
	}
	palette.SortByBrightness(colors)
	slog.Debug("palette extracted", "method", opt.Method, "colors", len(colors), "size", size)

	return &Prepared{
		Image:   mapToPalette(small, palette.ToColorPalette(colors), opt),
		Palette: colors,
	}, nil
}

// mapToPalette draws src onto a paletted image. When src has pixels below the
// alpha threshold a transparent entry is appended and those pixels use it.
func mapToPalette(src image.Image, pal color.Palette, opt Options) *image.Paletted {
	b := src.Bounds()
	thr := uint32(opt.AlphaThreshold) * 0x101
	hidden := func(x, y int) bool {
		_, _, _, a := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return a == 0 || a < thr
	}

	flat := opaque{src}
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	if opt.Dither {
		draw.FloydSteinberg.Draw(dst, dst.Bounds(), flat, b.Min)
	} else {
		for y := range b.Dy() {
			for x := range b.Dx() {
				dst.SetColorIndex(x, y, uint8(pal.Index(flat.At(b.Min.X+x, b.Min.Y+y))))
			}
		}
	}

	transparent := uint8(len(pal))
	for y := range b.Dy() {
		for x := range b.Dx() {
			if !hidden(x, y) {
				continue
			}
			if len(dst.Palette) == len(pal) {
				dst.Palette = append(pal[:len(pal):len(pal)], color.NRGBA{})
			}
			dst.SetColorIndex(x, y, transparent)
		}
	}
	return dst
}

// opaque un-premultiplies and drops alpha, so palette matching sees the
// straight color and never lands on the transparent entry.
type opaque struct{ image.Image }

func (o opaque) At(x, y int) color.Color {
	r, g, b, a := o.Image.At(x, y).RGBA()
	if a == 0 {
		return color.Black
	}
	return color.RGBA64{
		R: uint16(r * 0xffff / a),
		G: uint16(g * 0xffff / a),
		B: uint16(b * 0xffff / a),
		A: 0xffff,
	}
}
