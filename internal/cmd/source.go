package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/setanarut/brickimg"
	"github.com/setanarut/brickimg/palette"
)

// Source holds the image preparation flags shared by all commands.
type Source struct {
	Height int     `short:"H" help:"Image height in bricks." default:"64" env:"BRICKIMG_HEIGHT"`
	Width  int     `short:"W" help:"Image width in bricks (0 keeps the aspect ratio)." default:"0" env:"BRICKIMG_WIDTH"`
	Colors int     `short:"c" help:"Number of different colors." default:"16" env:"BRICKIMG_COLORS"`
	Method string  `help:"Palette method: mediancut, dominantcolor, kmeans." enum:"mediancut,dominantcolor,kmeans" default:"mediancut" env:"BRICKIMG_METHOD"`
	Blur   float32 `help:"Gaussian blur sigma applied before resizing (0 disables)." default:"0"`
	Dither bool    `help:"Dither when mapping to the palette."`
	Alpha  uint8   `help:"Alpha threshold below which pixels get no brick." default:"128"`
}

func (s *Source) Options() (brickimg.Options, error) {
	m, err := palette.ParseMethod(s.Method)
	if err != nil {
		return brickimg.Options{}, err
	}
	return brickimg.Options{
		Height:         s.Height,
		Width:          s.Width,
		Colors:         s.Colors,
		Method:         m,
		Blur:           s.Blur,
		Dither:         s.Dither,
		AlphaThreshold: s.Alpha,
	}, nil
}

// Load reads and prepares the image at path.
func (s *Source) Load(logger *slog.Logger, path string) (*brickimg.Prepared, error) {
	opt, err := s.Options()
	if err != nil {
		return nil, err
	}
	img, err := palette.ReadImage(path)
	if err != nil {
		return nil, err
	}
	p, err := brickimg.Prepare(img, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("image prepared", "image", path, "size", p.Image.Bounds().Size(), "colors", len(p.Palette))
	return p, nil
}

// ProjectName derives the project name from an image path: "cat.png" -> "br_cat".
func ProjectName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return "br_" + base
}
