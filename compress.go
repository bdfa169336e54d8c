package brickimg

import (
	"context"
	"errors"
	"fmt"
	"image"
	"iter"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// ErrJaggedGrid is returned when the rows of a grid differ in length.
var ErrJaggedGrid = errors.New("grid rows differ in length")

// Rect is an axis-aligned block of cells sharing one value.
// X is the column and Y the row of the top-left cell.
type Rect[T comparable] struct {
	Value         T
	X, Y          int
	Width, Height int
}

func (r Rect[T]) Area() int {
	return r.Width * r.Height
}

// Cells yields the cells of r in row-major order as (column, row) points.
func (r Rect[T]) Cells() iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				if !yield(image.Pt(x, y)) {
					return
				}
			}
		}
	}
}

// Contains reports whether the cell at column x, row y lies inside r.
func (r Rect[T]) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect[T]) Overlaps(o Rect[T]) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// ValidateGrid checks that every row of grid has the same length.
func ValidateGrid[T any](grid [][]T) error {
	if len(grid) == 0 {
		return nil
	}
	cols := len(grid[0])
	for i, row := range grid {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, row 0 has %d", ErrJaggedGrid, i, len(row), cols)
		}
	}
	return nil
}

// Compress tiles grid with rectangles of uniform value.
//
// Cells holding the zero value of T are empty and never covered. The scan is
// row-major; at each uncovered cell the run is grown to the right first, then
// downwards for as long as the whole run matches in the next row. The result is
// deterministic but not the minimum number of rectangles.
//
// grid is only read. Consumed cells are tracked in a private mask.
func Compress[T comparable](grid [][]T) ([]Rect[T], error) {
	if err := ValidateGrid(grid); err != nil {
		return nil, err
	}
	rows := len(grid)
	if rows == 0 || len(grid[0]) == 0 {
		return nil, nil
	}
	cols := len(grid[0])

	var zero T
	used := make([]bool, rows*cols)
	free := func(i, j int, v T) bool {
		return !used[i*cols+j] && grid[i][j] == v
	}

	var out []Rect[T]
	for i := range rows {
		for j := range cols {
			v := grid[i][j]
			if v == zero || used[i*cols+j] {
				continue
			}
			sizeX := 1
			for j+sizeX < cols && free(i, j+sizeX, v) {
				sizeX++
			}
			sizeY := 1
		grow:
			for i+sizeY < rows {
				for k := range sizeX {
					if !free(i+sizeY, j+k, v) {
						break grow
					}
				}
				sizeY++
			}
			out = append(out, Rect[T]{Value: v, X: j, Y: i, Width: sizeX, Height: sizeY})

			for y := i; y < i+sizeY; y++ {
				for x := j; x < j+sizeX; x++ {
					used[y*cols+x] = true
				}
			}
		}
	}
	return out, nil
}

// CompressBatch compresses independent grids concurrently with at most
// workers goroutines. workers <= 0 means one per grid. Result i belongs to
// grids[i]. The first error cancels the remaining work.
func CompressBatch[T comparable](ctx context.Context, grids [][][]T, workers int) ([][]Rect[T], error) {
	out := make([][]Rect[T], len(grids))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range grids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rects, err := Compress(grids[i])
			if err != nil {
				return fmt.Errorf("grid %d: %w", i, err)
			}
			out[i] = rects
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Paint draws rects into a fresh rows x cols grid. Cells outside every
// rectangle keep the zero value.
func Paint[T comparable](rects []Rect[T], rows, cols int) [][]T {
	grid := make([][]T, rows)
	for i := range grid {
		grid[i] = make([]T, cols)
	}
	for _, r := range rects {
		for y := max(r.Y, 0); y < min(r.Y+r.Height, rows); y++ {
			for x := max(r.X, 0); x < min(r.X+r.Width, cols); x++ {
				grid[y][x] = r.Value
			}
		}
	}
	return grid
}

// Stats summarizes a tiling.
type Stats struct {
	Rects      int
	Cells      int
	MeanArea   float64
	StdDevArea float64
	MaxArea    int
	// Ratio is covered cells per rectangle.
	Ratio float64
}

func Summarize[T comparable](rects []Rect[T]) Stats {
	s := Stats{Rects: len(rects)}
	if len(rects) == 0 {
		return s
	}
	areas := make([]float64, len(rects))
	for i, r := range rects {
		a := r.Area()
		areas[i] = float64(a)
		s.Cells += a
		s.MaxArea = max(s.MaxArea, a)
	}
	s.MeanArea, s.StdDevArea = stat.MeanStdDev(areas, nil)
	if len(rects) == 1 {
		s.StdDevArea = 0
	}
	s.Ratio = float64(s.Cells) / float64(len(rects))
	return s
}
