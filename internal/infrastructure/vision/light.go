//go:build gocv
// +build gocv

package vision

import "context"

// MeasureLight возвращает среднюю яркость серого изображения (0-255).
func (m *GoCVLightMeter) MeasureLight(ctx context.Context, imageData []byte) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	gray, err := decodeGray(imageData)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	mean, _ := meanStdDev(gray)
	return mean, nil
}
