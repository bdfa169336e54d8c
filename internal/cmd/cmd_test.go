package cmd

import (
	"context"
	"image"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/setanarut/brickimg/brick"
	"github.com/setanarut/brickimg/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeFlag saves a 30x20 image with three vertical color bands.
func writeFlag(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 30, 20))
	bands := []color.NRGBA{
		{R: 0, G: 85, B: 164, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 239, G: 65, B: 53, A: 255},
	}
	for y := range 20 {
		for x := range 30 {
			img.SetNRGBA(x, y, bands[x/10])
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, palette.SaveImage(img, path))
	return path
}

func source() Source {
	return Source{Height: 2, Colors: 3, Method: "mediancut", Alpha: 128}
}

func TestProjectName(t *testing.T) {
	assert.Equal(t, "br_cat", ProjectName("/tmp/cat.png"))
	assert.Equal(t, "br_cat", ProjectName("cat.tar.png"))
	assert.Equal(t, "br_.hidden", ProjectName(".hidden"))
}

func TestSourceOptions(t *testing.T) {
	s := source()
	s.Method = "kmeans"
	opt, err := s.Options()
	require.NoError(t, err)
	assert.Equal(t, palette.MethodKMeans, opt.Method)
	assert.Equal(t, 2, opt.Height)

	s.Method = "bogus"
	_, err = s.Options()
	assert.Error(t, err)
}

func TestScalableRun(t *testing.T) {
	dir := t.TempDir()
	a := writeFlag(t, dir, "flag.png")
	b := writeFlag(t, dir, "other.png")

	c := &Scalable{
		Source:    source(),
		Images:    []string{a, b},
		Out:       filepath.Join(dir, "out"),
		PixelSize: 10,
		Thickness: 5,
		Preview:   2,
		Workers:   2,
	}
	require.NoError(t, c.Run(context.Background(), quietLogger()))

	for _, name := range []string{"br_flag", "br_other"} {
		p, err := brick.ReadProject(filepath.Join(c.Out, name))
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
		assert.NotEmpty(t, p.Bricks)
		// a 3x2 grid never needs more than six bricks
		assert.LessOrEqual(t, len(p.Bricks), 6)
		for _, b := range p.Bricks {
			assert.Equal(t, brick.ClassScalable, b.Class)
		}
		assert.FileExists(t, filepath.Join(c.Out, name, brick.PreviewFile))
	}
}

func TestScalableRunRejectsBadSizes(t *testing.T) {
	c := &Scalable{Source: source(), PixelSize: 0, Thickness: 1}
	assert.Error(t, c.Run(context.Background(), quietLogger()))
}

func TestTextRun(t *testing.T) {
	dir := t.TempDir()
	c := &Text{
		Source:   source(),
		Image:    writeFlag(t, dir, "flag.png"),
		Out:      dir,
		FontSize: 4,
	}
	require.NoError(t, c.Run(quietLogger()))

	p, err := brick.ReadProject(filepath.Join(dir, "br_flag"))
	require.NoError(t, err)
	require.NotEmpty(t, p.Bricks)
	assert.Equal(t, brick.ClassText, p.Bricks[0].Class)
	// bricks come in pairs
	assert.Zero(t, len(p.Bricks)%2)
}

func TestPaletteRun(t *testing.T) {
	dir := t.TempDir()
	c := &Palette{
		Source: source(),
		Image:  writeFlag(t, dir, "flag.png"),
		Output: filepath.Join(dir, "palette.png"),
		Tile:   4,
	}
	require.NoError(t, c.Run(quietLogger()))

	img, err := palette.ReadImage(c.Output)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestLoadMissingFile(t *testing.T) {
	s := source()
	_, err := s.Load(quietLogger(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
