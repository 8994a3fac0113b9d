package port

import (
	"context"

	"calibration-bot/internal/domain/entity"
)

// FocusMeter оценивает резкость снимка
type FocusMeter interface {
	MeasureFocus(ctx context.Context, imageData []byte) (float64, error)
}

// LightMeter оценивает среднюю освещённость снимка
type LightMeter interface {
	MeasureLight(ctx context.Context, imageData []byte) (float64, error)
}

// LensCalibrator калибрует объектив по снимкам шахматной доски
type LensCalibrator interface {
	Calibrate(ctx context.Context, frames [][]byte) (*entity.LensCalibration, error)
}
