package entity

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"
)

// Color цвет в каноническом порядке каналов RGB (0-255).
// Порядок BGR встречается только внутри кода OpenCV и переводится на границе.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// HSV цвет в "человеческой" шкале: H 0-359°, S и V в процентах 0-100.
type HSV struct {
	H int
	S int
	V int
}

// Black используется как заглушка, когда цвет ячейки получить не удалось.
var Black = Color{}

// RGBA переводит цвет в стандартный color.RGBA (непрозрачный).
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// BGR возвращает каналы в порядке OpenCV.
func (c Color) BGR() [3]uint8 {
	return [3]uint8{c.B, c.G, c.R}
}

// FromBGR собирает цвет из тройки в порядке OpenCV.
func FromBGR(b, g, r uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex возвращает цвет в формате #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

func (c Color) vector() []float64 {
	return []float64{float64(c.R), float64(c.G), float64(c.B)}
}

// ToHSVScaled переводит RGB в HSV так же, как 8-битное преобразование OpenCV
// (H хранится в полушкале 0-179), после чего H удваивается, а S и V
// переводятся в проценты с отбрасыванием дробной части.
func ToHSVScaled(c Color) HSV {
	h, s, v := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()

	half := int(math.Round(h/2)) % 180
	sat := math.Round(s * 255)
	val := math.Round(v * 255)

	return HSV{
		H: half * 2,
		S: int(sat / 255 * 100),
		V: int(val / 255 * 100),
	}
}

// ColorDistance евклидово расстояние между двумя цветами в пространстве RGB.
// Перцептивные метрики (CIEDE2000) сознательно не используются.
func ColorDistance(a, b Color) float64 {
	return floats.Distance(a.vector(), b.vector(), 2)
}

func (h HSV) String() string {
	return fmt.Sprintf("%d°, %d%%, %d%%", h.H, h.S, h.V)
}
