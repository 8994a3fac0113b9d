package entity

import (
	"fmt"
	"image"
)

// DefaultRows и DefaultCols раскладка карты CameraTrax 24 (6×4).
const (
	DefaultRows = 6
	DefaultCols = 4
)

// Grid равномерное деление области карты на ячейки.
// Остаток от целочисленного деления не попадает ни в одну ячейку.
type Grid struct {
	Rows       int
	Cols       int
	CellWidth  int
	CellHeight int
}

// Cell одна ячейка сетки в координатах обрезанного изображения.
type Cell struct {
	Row  int
	Col  int
	Rect image.Rectangle
}

// NewGrid делит область на rows×cols ячеек.
func NewGrid(region BoundingRegion, rows, cols int) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return Grid{}, fmt.Errorf("%w: rows=%d cols=%d", ErrInvalidGridConfig, rows, cols)
	}

	g := Grid{
		Rows:       rows,
		Cols:       cols,
		CellWidth:  region.Width / cols,
		CellHeight: region.Height / rows,
	}
	if g.CellWidth == 0 || g.CellHeight == 0 {
		return Grid{}, fmt.Errorf("%w: region %dx%d is smaller than %dx%d grid",
			ErrInvalidGridConfig, region.Width, region.Height, cols, rows)
	}

	return g, nil
}

// Size возвращает число ячеек.
func (g Grid) Size() int {
	return g.Rows * g.Cols
}

// Cell возвращает прямоугольник ячейки (r, c).
func (g Grid) Cell(r, c int) Cell {
	x := c * g.CellWidth
	y := r * g.CellHeight
	return Cell{
		Row:  r,
		Col:  c,
		Rect: image.Rect(x, y, x+g.CellWidth, y+g.CellHeight),
	}
}

// Cells возвращает все ячейки построчно: строка 0 сверху, столбцы слева направо.
func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Size())
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			cells = append(cells, g.Cell(r, c))
		}
	}
	return cells
}
