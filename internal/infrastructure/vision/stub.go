//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"calibration-bot/internal/domain/entity"
)

// AnalyzeCard возвращает ошибку, если сборка без тега gocv.
func (a *GoCVAnalyzer) AnalyzeCard(ctx context.Context, imageData []byte, rows, cols int) (*entity.CardAnalysis, error) {
	_ = ctx
	_ = imageData
	_ = rows
	_ = cols
	return nil, errGoCVDisabled
}

// MeasureFocus возвращает ошибку, если сборка без тега gocv.
func (m *GoCVFocusMeter) MeasureFocus(ctx context.Context, imageData []byte) (float64, error) {
	_ = ctx
	_ = imageData
	return 0, errGoCVDisabled
}

// MeasureLight возвращает ошибку, если сборка без тега gocv.
func (m *GoCVLightMeter) MeasureLight(ctx context.Context, imageData []byte) (float64, error) {
	_ = ctx
	_ = imageData
	return 0, errGoCVDisabled
}

// Calibrate возвращает ошибку, если сборка без тега gocv.
func (c *GoCVLensCalibrator) Calibrate(ctx context.Context, frames [][]byte) (*entity.LensCalibration, error) {
	_ = ctx
	_ = frames
	return nil, errGoCVDisabled
}
