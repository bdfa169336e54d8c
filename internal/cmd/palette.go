package cmd

import (
	"log/slog"

	"github.com/setanarut/brickimg/palette"
)

// Palette saves the palette an image would be reduced to.
type Palette struct {
	Source `embed:""`

	Image  string `arg:"" type:"existingfile" help:"Input image."`
	Output string `short:"o" help:"Output PNG." default:"palette.png" type:"path"`
	Tile   int    `help:"Swatch size in pixels." default:"64"`
}

func (c *Palette) Run(logger *slog.Logger) error {
	p, err := c.Load(logger, c.Image)
	if err != nil {
		return err
	}
	if err := palette.Save(p.Palette, c.Tile, c.Output); err != nil {
		return err
	}
	logger.Info("palette written", "file", c.Output, "colors", len(p.Palette))
	return nil
}
