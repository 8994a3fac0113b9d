//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"calibration-bot/internal/domain/entity"
)

// detectGridLines ищет отрезки линий сетки на карте границ и продлевает их.
// Пустой результат не считается ошибкой.
func detectGridLines(edges gocv.Mat, p LineParams) []entity.LineSegment {
	lines := gocv.NewMat()
	defer lines.Close()

	gocv.HoughLinesPWithParams(edges, &lines,
		float32(p.Rho), float32(p.ThetaDegrees*math.Pi/180), p.Threshold,
		float32(p.MinLineLength), float32(p.MaxLineGap))

	segments := make([]entity.LineSegment, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		if len(v) < 4 {
			continue
		}
		segment := entity.LineSegment{X1: int(v[0]), Y1: int(v[1]), X2: int(v[2]), Y2: int(v[3])}
		segments = append(segments, segment.Extend(p.Extension))
	}

	return segments
}

// drawGridLines рисует линии красным на копии изображения.
func drawGridLines(src gocv.Mat, lines []entity.LineSegment, thickness int) gocv.Mat {
	vis := src.Clone()
	red := color.RGBA{R: 255, A: 255}
	for _, l := range lines {
		gocv.Line(&vis, image.Pt(l.X1, l.Y1), image.Pt(l.X2, l.Y2), red, thickness)
	}
	return vis
}
