//go:build gocv
// +build gocv

package vision

import (
	"fmt"

	"gocv.io/x/gocv"

	"calibration-bot/internal/domain/entity"
)

// decodeToMat декодирует снимок и возвращает его и как буфер RGB, и как BGR-матрицу.
// При ошибке матрица нулевая и закрывать её не нужно.
func decodeToMat(imageData []byte) (*entity.Pixels, gocv.Mat, error) {
	img, err := DecodeImage(imageData)
	if err != nil {
		return nil, gocv.Mat{}, err
	}

	mat, err := gocv.NewMatFromBytes(img.Height, img.Width, gocv.MatTypeCV8UC3, bgrBytes(img))
	if err != nil {
		return nil, gocv.Mat{}, fmt.Errorf("%w: %v", entity.ErrInvalidImage, err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, gocv.Mat{}, fmt.Errorf("%w: empty matrix", entity.ErrInvalidImage)
	}

	return img, mat, nil
}

// decodeGray декодирует снимок сразу в оттенки серого.
func decodeGray(imageData []byte) (gocv.Mat, error) {
	_, mat, err := decodeToMat(imageData)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer mat.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	return gray, nil
}

// meanStdDev возвращает среднее и стандартное отклонение первого канала.
func meanStdDev(m gocv.Mat) (float64, float64) {
	mean := gocv.NewMat()
	defer mean.Close()
	std := gocv.NewMat()
	defer std.Close()

	gocv.MeanStdDev(m, &mean, &std)
	return mean.GetDoubleAt(0, 0), std.GetDoubleAt(0, 0)
}

// encodeMat переводит матрицу в PNG. Трёхканальная матрица читается как BGR
// и разворачивается в RGB тем же путём, что и bgrBytes, но в обратную сторону.
func encodeMat(m gocv.Mat, maxSide int) ([]byte, error) {
	if m.Type() != gocv.MatTypeCV8UC3 {
		img, err := m.ToImage()
		if err != nil {
			return nil, fmt.Errorf("failed to convert mat: %w", err)
		}
		return EncodePNG(img, maxSide)
	}

	if !m.IsContinuous() {
		m = m.Clone()
		defer m.Close()
	}
	img, err := pixelsFromBGR(m.Cols(), m.Rows(), m.ToBytes())
	if err != nil {
		return nil, err
	}
	return EncodePNG(img, maxSide)
}
