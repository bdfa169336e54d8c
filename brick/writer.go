package brick

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/setanarut/brickimg"
	"github.com/setanarut/brickimg/palette"
	"gopkg.in/yaml.v3"
)

const Generator = "brickimg"

type Project struct {
	Name        string  `yaml:"name"`
	DisplayName string  `yaml:"display_name"`
	Description string  `yaml:"description"`
	Bricks      []Brick `yaml:"bricks"`

	Preview image.Image `yaml:"-"`
}

// Metadata is the summary stored next to the bricks.
type Metadata struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	BrickCount  int    `yaml:"brick_count"`
	Generator   string `yaml:"generator"`
}

func (p *Project) Metadata() Metadata {
	return Metadata{
		Name:        p.Name,
		DisplayName: p.DisplayName,
		Description: p.Description,
		BrickCount:  len(p.Bricks),
		Generator:   Generator,
	}
}

// Writer stores projects as directories below Dir.
type Writer struct {
	Dir    string
	Logger *slog.Logger
}

const (
	BricksFile   = "bricks.yaml"
	MetadataFile = "metadata.yaml"
	PreviewFile  = "preview.png"
)

// Write creates Dir/<name>/ holding the bricks, the metadata and, when set,
// the preview. It returns the project directory.
func (w *Writer) Write(p *Project) (string, error) {
	if p.Name == "" {
		return "", fmt.Errorf("project has no name")
	}
	dir := filepath.Join(w.Dir, p.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := writeYAML(filepath.Join(dir, BricksFile), p); err != nil {
		return "", err
	}
	if err := writeYAML(filepath.Join(dir, MetadataFile), p.Metadata()); err != nil {
		return "", err
	}
	if p.Preview != nil {
		if err := palette.SaveImage(p.Preview, filepath.Join(dir, PreviewFile)); err != nil {
			return "", fmt.Errorf("write preview: %w", err)
		}
	}
	w.logger().Info("project written", "dir", dir, "bricks", len(p.Bricks))
	return dir, nil
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

func writeYAML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadProject loads the bricks file of a project directory.
func ReadProject(dir string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(dir, BricksFile))
	if err != nil {
		return nil, err
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", BricksFile, err)
	}
	return &p, nil
}

// Preview renders rects at scale pixels per cell. Empty cells stay transparent.
func Preview(rects []brickimg.Rect[brickimg.Pixel], cols, rows, scale int) *image.NRGBA {
	scale = max(scale, 1)
	img := image.NewNRGBA(image.Rect(0, 0, cols*scale, rows*scale))
	for _, r := range rects {
		c := color.NRGBAModel.Convert(r.Value.HSV).(color.NRGBA)
		for y := r.Y * scale; y < (r.Y+r.Height)*scale; y++ {
			for x := r.X * scale; x < (r.X+r.Width)*scale; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}
