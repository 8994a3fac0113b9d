package entity

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CellColorSample итоговые цвета одной ячейки.
type CellColorSample struct {
	Row    int
	Col    int
	Mean   Color // поканальное среднее
	Median Color // поканальная медиана, устойчива к бликам и теням
}

// ReduceCells сводит каждую ячейку к среднему и медианному цвету.
// Порядок результата совпадает с порядком cells (построчный для Grid.Cells).
func ReduceCells(img *Pixels, cells []Cell) []CellColorSample {
	samples := make([]CellColorSample, len(cells))
	for i, cell := range cells {
		mean, median := reduceCell(img, cell)
		samples[i] = CellColorSample{
			Row:    cell.Row,
			Col:    cell.Col,
			Mean:   mean,
			Median: median,
		}
	}
	return samples
}

func reduceCell(img *Pixels, cell Cell) (Color, Color) {
	r := cell.Rect.Intersect(img.Bounds())
	n := r.Dx() * r.Dy()
	if n <= 0 {
		return Black, Black
	}

	var channels [3][]float64
	for i := range channels {
		channels[i] = make([]float64, 0, n)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px := img.PixelAt(x, y)
			channels[0] = append(channels[0], float64(px.R))
			channels[1] = append(channels[1], float64(px.G))
			channels[2] = append(channels[2], float64(px.B))
		}
	}

	var mean, median [3]uint8
	for i, ch := range channels {
		// Среднее усекается до 8 бит, медиана округляется.
		mean[i] = uint8(stat.Mean(ch, nil))
		median[i] = uint8(math.Round(medianOf(ch)))
	}

	return Color{R: mean[0], G: mean[1], B: mean[2]},
		Color{R: median[0], G: median[1], B: median[2]}
}

// medianOf сортирует values на месте; при чётном количестве берёт середину двух центральных.
func medianOf(values []float64) float64 {
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid]
	}
	return (values[mid-1] + values[mid]) / 2
}

// RenderCells рисует буфер, где каждая ячейка залита своим медианным цветом.
func RenderCells(width, height int, cells []Cell, samples []CellColorSample) *Pixels {
	vis := NewPixels(width, height)
	for i, cell := range cells {
		if i >= len(samples) {
			break
		}
		vis.Fill(cell.Rect, samples[i].Median)
	}
	return vis
}
