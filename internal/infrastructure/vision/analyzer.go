//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"calibration-bot/internal/domain/entity"
)

// AnalyzeCard находит карту, делит её на ячейки и снимает их цвета.
// Ячейки берутся из равномерного деления рамки; найденные линии идут только в диагностику.
func (a *GoCVAnalyzer) AnalyzeCard(ctx context.Context, imageData []byte, rows, cols int) (*entity.CardAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: rows=%d cols=%d", entity.ErrInvalidGridConfig, rows, cols)
	}

	img, mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	seg, err := segmentCard(mat, a.Segment)
	if err != nil {
		return nil, err
	}
	defer seg.Close()

	region := seg.Region
	grid, err := entity.NewGrid(region, rows, cols)
	if err != nil {
		return nil, err
	}

	// Цвета снимаются с исходного (не размытого) изображения.
	crop := img.Crop(region.Rect())
	cells := grid.Cells()
	samples := entity.ReduceCells(crop, cells)

	edgesROI := seg.Edges.Region(region.Rect())
	defer edgesROI.Close()
	lines := detectGridLines(edgesROI, a.Lines)

	diagnostics, err := a.diagnostics(mat, seg, lines, crop, cells, samples)
	if err != nil {
		return nil, err
	}

	return &entity.CardAnalysis{
		ImageWidth:  img.Width,
		ImageHeight: img.Height,
		Region:      region,
		Grid:        grid,
		Lines:       lines,
		Samples:     samples,
		Diagnostics: diagnostics,
	}, nil
}

func (a *GoCVAnalyzer) diagnostics(
	mat gocv.Mat,
	seg *segmentation,
	lines []entity.LineSegment,
	crop *entity.Pixels,
	cells []entity.Cell,
	samples []entity.CellColorSample,
) (entity.Diagnostics, error) {
	var d entity.Diagnostics
	var err error

	if d.Mask, err = encodeMat(seg.Mask, a.MaxDiagnosticSide); err != nil {
		return d, err
	}
	if d.Edges, err = encodeMat(seg.Edges, a.MaxDiagnosticSide); err != nil {
		return d, err
	}

	cardROI := mat.Region(seg.Region.Rect())
	defer cardROI.Close()
	gridVis := drawGridLines(cardROI, lines, a.Lines.Thickness)
	defer gridVis.Close()
	if d.GridLines, err = encodeMat(gridVis, a.MaxDiagnosticSide); err != nil {
		return d, err
	}

	cellVis := entity.RenderCells(crop.Width, crop.Height, cells, samples)
	if d.Cells, err = EncodePNG(cellVis, a.MaxDiagnosticSide); err != nil {
		return d, err
	}

	return d, nil
}
