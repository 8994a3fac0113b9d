package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGrid_InvalidConfig(t *testing.T) {
	region := BoundingRegion{Width: 100, Height: 60}

	for _, rc := range [][2]int{{0, 4}, {6, 0}, {-1, 4}, {6, -3}} {
		_, err := NewGrid(region, rc[0], rc[1])
		require.ErrorIs(t, err, ErrInvalidGridConfig)
	}
}

func TestNewGrid_RegionTooSmall(t *testing.T) {
	_, err := NewGrid(BoundingRegion{Width: 3, Height: 60}, 6, 4)
	require.ErrorIs(t, err, ErrInvalidGridConfig)
}

func TestGrid_FloorDivision(t *testing.T) {
	g, err := NewGrid(BoundingRegion{X: 7, Y: 3, Width: 103, Height: 65}, 6, 4)
	require.NoError(t, err)
	require.Equal(t, Grid{Rows: 6, Cols: 4, CellWidth: 25, CellHeight: 10}, g)
	require.Equal(t, 24, g.Size())
}

func TestGrid_CellsRowMajorAndCoverage(t *testing.T) {
	region := BoundingRegion{Width: 103, Height: 65}
	g, err := NewGrid(region, 6, 4)
	require.NoError(t, err)

	cells := g.Cells()
	require.Len(t, cells, 24)

	bounds := image.Rect(0, 0, region.Width, region.Height)
	covered := 0
	for i, cell := range cells {
		require.Equal(t, i/g.Cols, cell.Row)
		require.Equal(t, i%g.Cols, cell.Col)
		require.True(t, cell.Rect.In(bounds))
		require.Equal(t, image.Rect(cell.Col*25, cell.Row*10, (cell.Col+1)*25, (cell.Row+1)*10), cell.Rect)
		covered += cell.Rect.Dx() * cell.Rect.Dy()

		for _, other := range cells[i+1:] {
			require.False(t, cell.Rect.Overlaps(other.Rect), "cells %v and %v overlap", cell, other)
		}
	}

	// Остаток (3 столбца и 5 строк пикселей) не принадлежит ни одной ячейке.
	require.Equal(t, 100*60, covered)
	require.Less(t, covered, region.Area())
}
