package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/setanarut/brickimg"
	"github.com/setanarut/brickimg/brick"
)

const description = "Generated using brickimg"

// Scalable builds one scalable brick per uniform rectangle of each image.
type Scalable struct {
	Source `embed:""`

	Images    []string `arg:"" help:"Input images."`
	Out       string   `short:"o" help:"Output directory." default:"." type:"path" env:"BRICKIMG_OUT"`
	PixelSize float64  `help:"Edge length of one pixel in centimeters." default:"10" env:"BRICKIMG_PIXEL_SIZE"`
	Thickness float64  `help:"Image thickness in centimeters." default:"10" env:"BRICKIMG_THICKNESS"`
	Preview   int      `help:"Preview pixels per brick cell (0 disables the preview)." default:"8"`
	Workers   int      `help:"Images compressed in parallel (0 = all)." default:"0"`
}

func (c *Scalable) Run(ctx context.Context, logger *slog.Logger) error {
	if c.PixelSize <= 0 || c.Thickness <= 0 {
		return fmt.Errorf("pixel size and thickness must be positive")
	}
	grids := make([][][]brickimg.Pixel, len(c.Images))
	for i, path := range c.Images {
		p, err := c.Load(logger, path)
		if err != nil {
			return err
		}
		grids[i] = p.Grid()
	}

	tilings, err := brickimg.CompressBatch(ctx, grids, c.Workers)
	if err != nil {
		return err
	}

	w := &brick.Writer{Dir: c.Out, Logger: logger}
	for i, rects := range tilings {
		path := c.Images[i]
		st := brickimg.Summarize(rects)
		logger.Info("image compressed",
			"image", path,
			"rects", st.Rects,
			"cells", st.Cells,
			"ratio", fmt.Sprintf("%.2f", st.Ratio),
			"mean_area", fmt.Sprintf("%.2f", st.MeanArea),
			"stddev_area", fmt.Sprintf("%.2f", st.StdDevArea),
		)

		name := ProjectName(path)
		proj := &brick.Project{
			Name:        name,
			DisplayName: name,
			Description: description,
			Bricks:      brick.ScalableBricks(rects, c.PixelSize, c.Thickness),
		}
		if c.Preview > 0 {
			rows := len(grids[i])
			cols := 0
			if rows > 0 {
				cols = len(grids[i][0])
			}
			proj.Preview = brick.Preview(rects, cols, rows, c.Preview)
		}
		if _, err := w.Write(proj); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
