package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *CLI {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("brickimg"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return &cli
}

func TestDefaultCommandIsScalable(t *testing.T) {
	cli := parse(t, "cat.png")
	assert.Equal(t, []string{"cat.png"}, cli.Scalable.Images)
	assert.Equal(t, 64, cli.Scalable.Height)
	assert.Equal(t, 16, cli.Scalable.Colors)
	assert.Equal(t, "mediancut", cli.Scalable.Method)
	assert.Equal(t, 10.0, cli.Scalable.PixelSize)
	assert.Equal(t, "info", cli.Log.Level)
}

// touch creates an empty file so existingfile arguments resolve.
func touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestTextFlags(t *testing.T) {
	img := touch(t, "dog.jpg")
	cli := parse(t, "--log.level=debug", "text", "-H", "32", "--method", "kmeans", "--font-size", "3", img)
	assert.Equal(t, "debug", cli.Log.Level)
	assert.Equal(t, 32, cli.Text.Height)
	assert.Equal(t, "kmeans", cli.Text.Method)
	assert.Equal(t, 3.0, cli.Text.FontSize)
	assert.Equal(t, img, cli.Text.Image)
}

func TestRejectsMissingImage(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Exit(func(int) {}))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"text", filepath.Join(t.TempDir(), "missing.png")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<image>")
}

func TestRejectsUnknownMethod(t *testing.T) {
	img := touch(t, "x.png")
	var cli CLI
	parser, err := kong.New(&cli, kong.Exit(func(int) {}))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"palette", "--method", "octree", img})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--method")
	assert.Contains(t, err.Error(), "octree")
}
