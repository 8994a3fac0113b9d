//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// MeasureFocus возвращает значение резкости, округлённое до сотых.
func (m *GoCVFocusMeter) MeasureFocus(ctx context.Context, imageData []byte) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	gray, err := decodeGray(imageData)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	var value float64
	switch m.Method {
	case FocusSobelVariance, "":
		_, std := meanStdDev(gray)
		value = m.sobelMagnitudeMean(gray) + std*std
	case FocusTenengrad:
		value = m.sobelMagnitudeMean(gray)
	case FocusLaplacian:
		value = laplacianVariance(gray)
	case FocusLocalVariance:
		value = m.localVariance(gray)
	case FocusBrenner:
		value = brenner(gray)
	default:
		return 0, fmt.Errorf("unknown focus method %q", m.Method)
	}

	return math.Round(value*100) / 100, nil
}

func (m *GoCVFocusMeter) sobelMagnitudeMean(gray gocv.Mat) float64 {
	sx := gocv.NewMat()
	defer sx.Close()
	gocv.Sobel(gray, &sx, gocv.MatTypeCV64F, 1, 0, m.SobelKernel, 1, 0, gocv.BorderDefault)

	sy := gocv.NewMat()
	defer sy.Close()
	gocv.Sobel(gray, &sy, gocv.MatTypeCV64F, 0, 1, m.SobelKernel, 1, 0, gocv.BorderDefault)

	magnitude := gocv.NewMat()
	defer magnitude.Close()
	gocv.Magnitude(sx, sy, &magnitude)

	return magnitude.Mean().Val1
}

func laplacianVariance(gray gocv.Mat) float64 {
	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	_, std := meanStdDev(lap)
	return std * std
}

// localVariance считает E[x²]-E[x]² в скользящем окне и усредняет по кадру.
func (m *GoCVFocusMeter) localVariance(gray gocv.Mat) float64 {
	f := gocv.NewMat()
	defer f.Close()
	gray.ConvertTo(&f, gocv.MatTypeCV64F)

	sq := gocv.NewMat()
	defer sq.Close()
	gocv.Multiply(f, f, &sq)

	window := image.Pt(m.LocalWindow, m.LocalWindow)
	mean := gocv.NewMat()
	defer mean.Close()
	gocv.Blur(f, &mean, window)

	sqMean := gocv.NewMat()
	defer sqMean.Close()
	gocv.Blur(sq, &sqMean, window)

	meanSq := gocv.NewMat()
	defer meanSq.Close()
	gocv.Multiply(mean, mean, &meanSq)

	variance := gocv.NewMat()
	defer variance.Close()
	gocv.Subtract(sqMean, meanSq, &variance)

	return variance.Mean().Val1
}

// brenner суммирует квадраты разностей пикселей, отстоящих на 2 по горизонтали.
func brenner(gray gocv.Mat) float64 {
	if gray.Cols() <= 2 {
		return 0
	}

	left := gray.Region(image.Rect(0, 0, gray.Cols()-2, gray.Rows()))
	defer left.Close()
	right := gray.Region(image.Rect(2, 0, gray.Cols(), gray.Rows()))
	defer right.Close()

	lf := gocv.NewMat()
	defer lf.Close()
	left.ConvertTo(&lf, gocv.MatTypeCV64F)

	rf := gocv.NewMat()
	defer rf.Close()
	right.ConvertTo(&rf, gocv.MatTypeCV64F)

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.Subtract(lf, rf, &diff)

	sq := gocv.NewMat()
	defer sq.Close()
	gocv.Multiply(diff, diff, &sq)

	return sq.Sum().Val1
}
