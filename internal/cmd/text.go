package cmd

import (
	"fmt"
	"log/slog"

	"github.com/setanarut/brickimg/brick"
)

// Text draws the image with rows of text bricks, one layer per color.
type Text struct {
	Source `embed:""`

	Image    string  `arg:"" type:"existingfile" help:"Input image."`
	Out      string  `short:"o" help:"Output directory." default:"." type:"path" env:"BRICKIMG_OUT"`
	FontSize float64 `help:"Font size of the text bricks." default:"10"`
}

func (c *Text) Run(logger *slog.Logger) error {
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive")
	}
	p, err := c.Load(logger, c.Image)
	if err != nil {
		return err
	}
	name := ProjectName(c.Image)
	proj := &brick.Project{
		Name:        name,
		DisplayName: name,
		Description: description,
		Bricks:      brick.TextBricks(p.TextGrid(), c.FontSize),
	}
	w := &brick.Writer{Dir: c.Out, Logger: logger}
	_, err = w.Write(proj)
	return err
}
