package brick

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/setanarut/brickimg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = brickimg.Pixel{HSV: brickimg.HSV{H: 0, S: 255, V: 255}, Solid: true}
	blue = brickimg.Pixel{HSV: brickimg.HSV{H: 170, S: 255, V: 255}, Solid: true}
)

func TestScalableBricks(t *testing.T) {
	rects := []brickimg.Rect[brickimg.Pixel]{
		{Value: red, X: 0, Y: 0, Width: 2, Height: 2},
		{Value: blue, X: 2, Y: 1, Width: 1, Height: 3},
	}
	bricks := ScalableBricks(rects, 10, 5)
	require.Len(t, bricks, 2)

	b := bricks[0]
	assert.Equal(t, "brick_0", b.Name)
	assert.Equal(t, ClassScalable, b.Class)
	assert.Equal(t, [4]int{0, 255, 255, 255}, b.Properties["BrickColor"])
	assert.Equal(t, Vec3{2, 2, 0.5}, b.Properties["BrickSize"])
	assert.Equal(t, Vec3{-10, -10, 10}, b.Position)

	b = bricks[1]
	assert.Equal(t, "brick_1", b.Name)
	assert.Equal(t, [4]int{170, 255, 255, 255}, b.Properties["BrickColor"])
	assert.Equal(t, Vec3{1, 3, 0.5}, b.Properties["BrickSize"])
	assert.Equal(t, Vec3{-25, -25, 10}, b.Position)
}

func TestTextLines(t *testing.T) {
	grid := [][]brickimg.Pixel{
		{red, blue, red},
		{red, red, {}},
	}
	order, lines := TextLines(grid)
	assert.Equal(t, []brickimg.HSV{red.HSV, blue.HSV}, order)
	assert.Equal(t, map[int]string{
		0: "||||   ||||",
		1: "||||||||   ",
	}, lines[red.HSV])
	assert.Equal(t, map[int]string{0: "   ||||   "}, lines[blue.HSV])
}

func TestTextBricks(t *testing.T) {
	grid := [][]brickimg.Pixel{{red}, {blue}}
	bricks := TextBricks(grid, 2)
	require.Len(t, bricks, 4)

	assert.Equal(t, "text_0_255_255_0_0", bricks[0].Name)
	assert.Equal(t, Vec3{0, 0, 0}, bricks[0].Position)
	assert.InDelta(t, -0.167, bricks[1].Position[0], 1e-9)
	assert.Equal(t, "||||", bricks[0].Properties["Text"])
	assert.Equal(t, textFont, bricks[0].Properties["Font"])

	// second color sits on row 1
	assert.Equal(t, "text_170_255_255_1_0", bricks[2].Name)
	assert.InDelta(t, -1.42, bricks[2].Position[1], 1e-9)
	assert.Equal(t, [3]int{170, 255, 255}, bricks[2].Properties["TextColor"])
}

func TestWriterRoundTrip(t *testing.T) {
	rects := []brickimg.Rect[brickimg.Pixel]{
		{Value: red, X: 0, Y: 0, Width: 2, Height: 1},
		{Value: blue, X: 0, Y: 1, Width: 1, Height: 1},
	}
	p := &Project{
		Name:        "br_test",
		DisplayName: "br_test",
		Description: "test",
		Bricks:      ScalableBricks(rects, 1, 1),
		Preview:     Preview(rects, 2, 2, 3),
	}

	w := &Writer{Dir: t.TempDir()}
	dir, err := w.Write(p)
	require.NoError(t, err)
	for _, f := range []string{BricksFile, MetadataFile, PreviewFile} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	got, err := ReadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, "br_test", got.Name)
	require.Len(t, got.Bricks, 2)
	assert.Equal(t, ClassScalable, got.Bricks[1].Class)
	assert.Equal(t, p.Bricks[1].Position, got.Bricks[1].Position)

	_, err = w.Write(&Project{})
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	rects := []brickimg.Rect[brickimg.Pixel]{{Value: red, X: 1, Y: 0, Width: 1, Height: 1}}
	img := Preview(rects, 2, 1, 2)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
	c := img.NRGBAAt(3, 1)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.B)
}
