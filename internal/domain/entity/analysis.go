package entity

// Diagnostics промежуточные изображения конвейера в PNG.
type Diagnostics struct {
	Mask      []byte // бинарная маска S∧V
	Edges     []byte // границы после замыкания
	GridLines []byte // вырезанная карта с продлёнными линиями
	Cells     []byte // ячейки, залитые медианным цветом
}

// CardAnalysis результат разбора одного снимка цветовой карты.
type CardAnalysis struct {
	ImageWidth  int
	ImageHeight int
	Region      BoundingRegion
	Grid        Grid
	Lines       []LineSegment // только для диагностики, ячейки от них не зависят
	Samples     []CellColorSample
	Diagnostics Diagnostics
}

// MedianColors возвращает медианные цвета ячеек построчно.
func (a *CardAnalysis) MedianColors() []Color {
	colors := make([]Color, len(a.Samples))
	for i, s := range a.Samples {
		colors[i] = s.Median
	}
	return colors
}
