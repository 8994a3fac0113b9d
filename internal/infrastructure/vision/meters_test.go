//go:build gocv
// +build gocv

package vision

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"calibration-bot/internal/domain/entity"
)

// checkerboard рисует доску из квадратов size×size с белым полем margin.
func checkerboard(squaresX, squaresY, size, margin int) *image.RGBA {
	w := squaresX*size + 2*margin
	h := squaresY*size + 2*margin
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), color.RGBA{R: 255, G: 255, B: 255, A: 255})
	for y := 0; y < squaresY; y++ {
		for x := 0; x < squaresX; x++ {
			if (x+y)%2 == 0 {
				r := image.Rect(margin+x*size, margin+y*size, margin+(x+1)*size, margin+(y+1)*size)
				fillRect(img, r, color.RGBA{A: 255})
			}
		}
	}
	return img
}

func TestMeasureLight_UniformGray(t *testing.T) {
	img := blackCanvas(64, 64)
	fillRect(img, img.Bounds(), color.RGBA{R: 150, G: 150, B: 150, A: 255})

	value, err := NewGoCVLightMeter().MeasureLight(context.Background(), encodeTestPNG(t, img))
	require.NoError(t, err)
	require.InDelta(t, 150, value, 0.5)
}

func TestMeasureFocus_SharpBeatsBlurred(t *testing.T) {
	sharp := checkerboard(8, 8, 20, 20)
	blurred := imaging.Blur(sharp, 4)

	for _, method := range []FocusMethod{FocusSobelVariance, FocusTenengrad, FocusLaplacian, FocusLocalVariance, FocusBrenner} {
		t.Run(string(method), func(t *testing.T) {
			meter := NewGoCVFocusMeter(method)

			sharpValue, err := meter.MeasureFocus(context.Background(), encodeTestPNG(t, sharp))
			require.NoError(t, err)
			blurredValue, err := meter.MeasureFocus(context.Background(), encodeTestPNG(t, blurred))
			require.NoError(t, err)

			require.Greater(t, sharpValue, blurredValue)
		})
	}
}

func TestMeasureFocus_Invalid(t *testing.T) {
	_, err := NewGoCVFocusMeter(FocusSobelVariance).MeasureFocus(context.Background(), nil)
	require.ErrorIs(t, err, entity.ErrInvalidImage)
}

func TestLensCalibrator_FindCorners(t *testing.T) {
	// Доска 10×7 квадратов даёт 9×6 внутренних углов.
	board := checkerboard(10, 7, 40, 40)
	calibrator := NewGoCVLensCalibrator(9, 6)

	corners, size, err := calibrator.findCorners(encodeTestPNG(t, board))
	require.NoError(t, err)
	require.Len(t, corners, 54)
	require.Equal(t, image.Pt(board.Bounds().Dx(), board.Bounds().Dy()), size)
}

func TestLensCalibrator_NoBoard(t *testing.T) {
	img := blackCanvas(200, 200)

	_, err := NewGoCVLensCalibrator(9, 6).Calibrate(context.Background(), [][]byte{encodeTestPNG(t, img)})
	require.ErrorIs(t, err, entity.ErrNoChessboardFound)

	_, err = NewGoCVLensCalibrator(9, 6).Calibrate(context.Background(), nil)
	require.ErrorIs(t, err, entity.ErrNoChessboardFound)
}
