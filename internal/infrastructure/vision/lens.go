//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"
	"image"
	"log"

	"gocv.io/x/gocv"

	"calibration-bot/internal/domain/entity"
)

// Calibrate находит углы доски на каждом кадре и оценивает матрицу камеры
// и коэффициенты дисторсии. Кадры без доски пропускаются.
func (c *GoCVLensCalibrator) Calibrate(ctx context.Context, frames [][]byte) (*entity.LensCalibration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objectPoints := gocv.NewPoints3fVector()
	defer objectPoints.Close()
	imagePoints := gocv.NewPoints2fVector()
	defer imagePoints.Close()

	board := c.objectGrid()
	var imageSize image.Point
	used := 0

	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		corners, size, err := c.findCorners(frame)
		if err != nil {
			log.Printf("Chessboard frame %d skipped: %v", i, err)
			continue
		}
		if corners == nil {
			continue
		}
		// Все кадры калибровки должны быть одного размера.
		if used > 0 && size != imageSize {
			log.Printf("Chessboard frame %d skipped: size %v differs from %v", i, size, imageSize)
			continue
		}
		imageSize = size

		obj := gocv.NewPoint3fVectorFromPoints(board)
		objectPoints.Append(obj)
		obj.Close()

		img := gocv.NewPoint2fVectorFromPoints(corners)
		imagePoints.Append(img)
		img.Close()

		used++
	}

	if used == 0 {
		return nil, fmt.Errorf("%w: 0 of %d frames", entity.ErrNoChessboardFound, len(frames))
	}

	cameraMatrix := gocv.NewMat()
	defer cameraMatrix.Close()
	distCoeffs := gocv.NewMat()
	defer distCoeffs.Close()
	rvecs := gocv.NewMat()
	defer rvecs.Close()
	tvecs := gocv.NewMat()
	defer tvecs.Close()

	rms := gocv.CalibrateCamera(objectPoints, imagePoints, imageSize, &cameraMatrix, &distCoeffs, &rvecs, &tvecs, 0)

	result := &entity.LensCalibration{
		ReprojectionError: rms,
		FramesUsed:        used,
		FramesTotal:       len(frames),
	}
	for r := 0; r < 3; r++ {
		for col := 0; col < 3; col++ {
			result.CameraMatrix[r][col] = cameraMatrix.GetDoubleAt(r, col)
		}
	}
	for i := 0; i < distCoeffs.Rows()*distCoeffs.Cols(); i++ {
		if distCoeffs.Rows() == 1 {
			result.DistCoefficients = append(result.DistCoefficients, distCoeffs.GetDoubleAt(0, i))
		} else {
			result.DistCoefficients = append(result.DistCoefficients, distCoeffs.GetDoubleAt(i, 0))
		}
	}

	return result, nil
}

// objectGrid возвращает плоские координаты углов (x, y, 0), x меняется быстрее.
func (c *GoCVLensCalibrator) objectGrid() []gocv.Point3f {
	points := make([]gocv.Point3f, 0, c.PatternCols*c.PatternRows)
	for y := 0; y < c.PatternRows; y++ {
		for x := 0; x < c.PatternCols; x++ {
			points = append(points, gocv.Point3f{X: float32(x), Y: float32(y)})
		}
	}
	return points
}

// findCorners возвращает уточнённые углы доски или nil, если доска не найдена.
func (c *GoCVLensCalibrator) findCorners(frame []byte) ([]gocv.Point2f, image.Point, error) {
	gray, err := decodeGray(frame)
	if err != nil {
		return nil, image.Point{}, err
	}
	defer gray.Close()

	size := image.Pt(gray.Cols(), gray.Rows())

	corners := gocv.NewMat()
	defer corners.Close()
	found := gocv.FindChessboardCorners(gray, image.Pt(c.PatternCols, c.PatternRows), &corners,
		gocv.CalibCBAdaptiveThresh|gocv.CalibCBNormalizeImage)
	if !found || corners.Empty() {
		return nil, size, nil
	}

	criteria := gocv.NewTermCriteria(gocv.Count|gocv.EPS, c.MaxIterations, c.Epsilon)
	gocv.CornerSubPix(gray, &corners, image.Pt(c.SubPixWindow, c.SubPixWindow), image.Pt(-1, -1), criteria)

	points := make([]gocv.Point2f, 0, corners.Rows())
	for i := 0; i < corners.Rows(); i++ {
		v := corners.GetVecfAt(i, 0)
		points = append(points, gocv.Point2f{X: v[0], Y: v[1]})
	}

	return points, size, nil
}
