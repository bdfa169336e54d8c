// Package brick places bricks for compressed image grids and writes them as a project.
package brick

import (
	"fmt"
	"strings"

	"github.com/setanarut/brickimg"
)

const (
	ClassScalable = "ScalableBrick"
	ClassText     = "TextBrick"

	// Scalable brick sizes are in tenths of the position unit.
	sizeScale = 0.1
	// Height above ground of the image plane.
	planeZ = 10.0

	textFont    = "Orbitron"
	textOn      = "||||"
	textOff     = "   "
	textShadowX = -0.0835
	textLineY   = -0.71
)

type Vec3 [3]float64

type Brick struct {
	Name       string         `yaml:"name"`
	Class      string         `yaml:"class"`
	Properties map[string]any `yaml:"properties"`
	Position   Vec3           `yaml:"position"`
	Rotation   Vec3           `yaml:"rotation"`
}

// Color returns the brick color as H, S, V, alpha.
func Color(c brickimg.HSV) [4]int {
	return [4]int{int(c.H), int(c.S), int(c.V), 255}
}

// ScalableBricks places one scalable brick per rectangle. pixelSize is the
// edge length of one grid cell and thickness the brick depth.
// The image is mirrored on both axes so it reads correctly from the front.
func ScalableBricks(rects []brickimg.Rect[brickimg.Pixel], pixelSize, thickness float64) []Brick {
	out := make([]Brick, 0, len(rects))
	for i, r := range rects {
		w, h := float64(r.Width), float64(r.Height)
		out = append(out, Brick{
			Name:  fmt.Sprintf("brick_%d", i),
			Class: ClassScalable,
			Properties: map[string]any{
				"BrickColor": Color(r.Value.HSV),
				"BrickSize":  Vec3{pixelSize * w * sizeScale, pixelSize * h * sizeScale, thickness * sizeScale},
			},
			Position: Vec3{
				-(float64(r.X) + w/2) * pixelSize,
				-(float64(r.Y) + h/2) * pixelSize,
				planeZ,
			},
		})
	}
	return out
}

// TextLines renders, for every color of grid, one line per row containing
// that color: textOn where the cell matches and textOff elsewhere.
// Colors are returned in row-major order of first appearance.
func TextLines(grid [][]brickimg.Pixel) ([]brickimg.HSV, map[brickimg.HSV]map[int]string) {
	var order []brickimg.HSV
	lines := map[brickimg.HSV]map[int]string{}
	for y, row := range grid {
		for _, px := range row {
			if !px.Solid {
				continue
			}
			rows, ok := lines[px.HSV]
			if !ok {
				rows = map[int]string{}
				lines[px.HSV] = rows
				order = append(order, px.HSV)
			}
			if _, ok := rows[y]; ok {
				continue
			}
			var sb strings.Builder
			for _, other := range row {
				if other.Solid && other.HSV == px.HSV {
					sb.WriteString(textOn)
				} else {
					sb.WriteString(textOff)
				}
			}
			rows[y] = sb.String()
		}
	}
	return order, lines
}

// TextBricks draws grid with text bricks, one layer of lines per color.
// Each line is doubled with a small horizontal offset to fill the gaps
// between glyphs.
func TextBricks(grid [][]brickimg.Pixel, fontSize float64) []Brick {
	order, lines := TextLines(grid)
	var out []Brick
	for _, c := range order {
		rows := lines[c]
		for y := range grid {
			text, ok := rows[y]
			if !ok {
				continue
			}
			name := fmt.Sprintf("text_%d_%d_%d_%d", c.H, c.S, c.V, y)
			yPos := textLineY * fontSize * float64(y)
			for i, x := range []float64{0, textShadowX * fontSize} {
				out = append(out, Brick{
					Name:  fmt.Sprintf("%s_%d", name, i),
					Class: ClassText,
					Properties: map[string]any{
						"Font":      textFont,
						"FontSize":  fontSize,
						"Text":      text,
						"TextColor": [3]int{int(c.H), int(c.S), int(c.V)},
					},
					Position: Vec3{x, yPos, 0},
				})
			}
		}
	}
	return out
}
