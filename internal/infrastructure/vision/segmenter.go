//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"calibration-bot/internal/domain/entity"
)

// segmentation маска, карта границ и найденная область карты.
// Матрицы принадлежат вызывающему и закрываются через Close.
type segmentation struct {
	Mask   gocv.Mat
	Edges  gocv.Mat
	Region entity.BoundingRegion
}

func (s *segmentation) Close() {
	s.Mask.Close()
	s.Edges.Close()
}

// segmentCard выделяет насыщенные и яркие пиксели, ищет внешние контуры
// и возвращает рамку самого большого из них.
func segmentCard(src gocv.Mat, p SegmentParams) (*segmentation, error) {
	if src.Empty() {
		return nil, fmt.Errorf("%w: empty matrix", entity.ErrInvalidImage)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(src, &blurred, image.Pt(p.BlurKernel, p.BlurKernel), 0, 0, gocv.BorderDefault)

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(blurred, &hsv, gocv.ColorBGRToHSV)

	channels := gocv.Split(hsv)
	for i := range channels {
		defer channels[i].Close()
	}
	if len(channels) < 3 {
		return nil, fmt.Errorf("%w: invalid hsv channels", entity.ErrInvalidImage)
	}

	satMask := gocv.NewMat()
	defer satMask.Close()
	gocv.Threshold(channels[1], &satMask, float32(p.SaturationCutoff), 255, gocv.ThresholdBinary)

	valMask := gocv.NewMat()
	defer valMask.Close()
	gocv.Threshold(channels[2], &valMask, float32(p.ValueCutoff), 255, gocv.ThresholdBinary)

	mask := gocv.NewMat()
	gocv.BitwiseAnd(satMask, valMask, &mask)

	canny := gocv.NewMat()
	defer canny.Close()
	gocv.Canny(mask, &canny, float32(p.CannyLow), float32(p.CannyHigh))

	// Замыкание склеивает разрывы в границах перед поиском контуров.
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(p.CloseKernel, p.CloseKernel))
	defer kernel.Close()

	edges := gocv.NewMat()
	gocv.MorphologyEx(canny, &edges, gocv.MorphClose, kernel)

	region, ok := largestContourRegion(edges)
	if !ok {
		mask.Close()
		edges.Close()
		return nil, entity.ErrNoRegionFound
	}

	return &segmentation{Mask: mask, Edges: edges, Region: region}, nil
}

// largestContourRegion возвращает рамку внешнего контура с наибольшей площадью.
func largestContourRegion(edges gocv.Mat) (entity.BoundingRegion, bool) {
	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	best := -1
	bestArea := -1.0
	for i := 0; i < contours.Size(); i++ {
		area := gocv.ContourArea(contours.At(i))
		if area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best < 0 {
		return entity.BoundingRegion{}, false
	}

	return entity.RegionFromPoints(contours.At(best).ToPoints())
}
