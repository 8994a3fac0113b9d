package entity

import (
	"fmt"
	"image"
	"image/color"
)

// Pixels буфер пикселей в каноническом порядке RGB.
// Реализует image.Image, поэтому его можно сразу кодировать в PNG.
type Pixels struct {
	Width  int
	Height int
	Pix    []Color
}

// NewPixels создаёт буфер заданного размера, заполненный чёрным.
func NewPixels(width, height int) *Pixels {
	return &Pixels{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// PixelsFromImage копирует произвольное image.Image в буфер RGB.
// Альфа-канал отбрасывается без умножения на него: полупрозрачный пиксель
// сохраняет свой цвет, как при чтении файла в OpenCV без альфы.
func PixelsFromImage(img image.Image) (*Pixels, error) {
	if img == nil {
		return nil, ErrInvalidImage
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty bounds", ErrInvalidImage)
	}

	p := NewPixels(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			p.Set(x-b.Min.X, y-b.Min.Y, Color{R: c.R, G: c.G, B: c.B})
		}
	}
	return p, nil
}

// PixelAt возвращает пиксель (x, y).
func (p *Pixels) PixelAt(x, y int) Color {
	return p.Pix[y*p.Width+x]
}

// Set записывает пиксель (x, y).
func (p *Pixels) Set(x, y int, c Color) {
	p.Pix[y*p.Width+x] = c
}

// Fill заливает прямоугольник одним цветом (обрезается по границам буфера).
func (p *Pixels) Fill(r image.Rectangle, c Color) {
	r = r.Intersect(p.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p.Set(x, y, c)
		}
	}
}

func (p *Pixels) ColorModel() color.Model { return color.RGBAModel }

func (p *Pixels) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

func (p *Pixels) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(p.Bounds())) {
		return color.RGBA{}
	}
	return p.PixelAt(x, y).RGBA()
}

// Crop копирует прямоугольник r (обрезанный по границам) в новый буфер.
func (p *Pixels) Crop(r image.Rectangle) *Pixels {
	r = r.Intersect(p.Bounds())
	out := NewPixels(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(out.Pix[(y-r.Min.Y)*out.Width:(y-r.Min.Y+1)*out.Width], p.Pix[y*p.Width+r.Min.X:y*p.Width+r.Max.X])
	}
	return out
}
