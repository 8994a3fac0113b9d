package entity

import (
	"image"
	"math"
)

// BoundingRegion прямоугольная область карты на исходном изображении.
type BoundingRegion struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// RegionFromPoints строит минимальный прямоугольник, содержащий все точки контура.
// Ширина и высота считаются включительно, как у cv::boundingRect.
func RegionFromPoints(points []image.Point) (BoundingRegion, bool) {
	if len(points) == 0 {
		return BoundingRegion{}, false
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	return BoundingRegion{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}, true
}

// Rect возвращает область как image.Rectangle.
func (r BoundingRegion) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Area возвращает площадь области в пикселях.
func (r BoundingRegion) Area() int {
	return r.Width * r.Height
}

// Center возвращает координаты центра области
func (r BoundingRegion) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Valid проверяет инварианты: ненулевой размер и вложенность в границы изображения.
func (r BoundingRegion) Valid(bounds image.Rectangle) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return r.Rect().In(bounds)
}

// LineSegment отрезок линии сетки.
type LineSegment struct {
	X1, Y1 int
	X2, Y2 int
}

// Length возвращает длину отрезка.
func (l LineSegment) Length() float64 {
	return math.Hypot(float64(l.X2-l.X1), float64(l.Y2-l.Y1))
}

// Extend удлиняет отрезок на length в обе стороны вдоль его направления.
// Нужен, потому что вероятностный Хафф не дотягивает линии до краёв карты.
// Вырожденный отрезок возвращается без изменений.
func (l LineSegment) Extend(length float64) LineSegment {
	dx := float64(l.X2 - l.X1)
	dy := float64(l.Y2 - l.Y1)
	lineLen := math.Hypot(dx, dy)
	if lineLen == 0 {
		return l
	}

	scale := length / lineLen
	return LineSegment{
		X1: int(float64(l.X1) - dx*scale),
		Y1: int(float64(l.Y1) - dy*scale),
		X2: int(float64(l.X2) + dx*scale),
		Y2: int(float64(l.Y2) + dy*scale),
	}
}
