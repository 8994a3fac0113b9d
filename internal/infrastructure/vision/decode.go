package vision

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"calibration-bot/internal/domain/entity"
)

// DecodeImage декодирует снимок любого поддерживаемого формата с учётом EXIF-ориентации.
func DecodeImage(imageData []byte) (*entity.Pixels, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("%w: empty data", entity.ErrInvalidImage)
	}

	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidImage, err)
	}

	return entity.PixelsFromImage(img)
}

// EncodePNG кодирует изображение в PNG, уменьшая его до maxSide по большей стороне.
func EncodePNG(img image.Image, maxSide int) ([]byte, error) {
	b := img.Bounds()
	if maxSide > 0 && (b.Dx() > maxSide || b.Dy() > maxSide) {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// bgrBytes раскладывает буфер в плотный массив BGR для cv::Mat CV_8UC3.
func bgrBytes(p *entity.Pixels) []byte {
	out := make([]byte, 0, len(p.Pix)*3)
	for _, c := range p.Pix {
		bgr := c.BGR()
		out = append(out, bgr[:]...)
	}
	return out
}

// pixelsFromBGR собирает буфер RGB из плотного массива BGR.
func pixelsFromBGR(width, height int, data []byte) (*entity.Pixels, error) {
	if len(data) != width*height*3 {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", entity.ErrInvalidImage, width*height*3, len(data))
	}

	p := entity.NewPixels(width, height)
	for i := range p.Pix {
		p.Pix[i] = entity.FromBGR(data[i*3], data[i*3+1], data[i*3+2])
	}
	return p, nil
}
