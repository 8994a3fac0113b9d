package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"calibration-bot/internal/domain/entity"
)

func encodeTestPNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage_PNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	p, err := DecodeImage(encodeTestPNG(t, src))
	require.NoError(t, err)
	require.Equal(t, 3, p.Width)
	require.Equal(t, 2, p.Height)
	require.Equal(t, entity.Color{R: 10, G: 20, B: 30}, p.PixelAt(1, 1))
}

func TestDecodeImage_BMP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 255
	}

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	p, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, entity.Color{R: 255, G: 255, B: 255}, p.PixelAt(3, 3))
}

func TestDecodeImage_Invalid(t *testing.T) {
	_, err := DecodeImage(nil)
	require.ErrorIs(t, err, entity.ErrInvalidImage)

	_, err = DecodeImage([]byte("definitely not an image"))
	require.ErrorIs(t, err, entity.ErrInvalidImage)
}

func TestEncodePNG_Downscales(t *testing.T) {
	p := entity.NewPixels(200, 100)
	data, err := EncodePNG(p, 50)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 50, img.Bounds().Dx())
	require.Equal(t, 25, img.Bounds().Dy())
}

func TestBGRRoundTrip(t *testing.T) {
	p := entity.NewPixels(2, 1)
	p.Set(0, 0, entity.Color{R: 1, G: 2, B: 3})
	p.Set(1, 0, entity.Color{R: 4, G: 5, B: 6})

	raw := bgrBytes(p)
	require.Equal(t, []byte{3, 2, 1, 6, 5, 4}, raw)

	back, err := pixelsFromBGR(2, 1, raw)
	require.NoError(t, err)
	require.Equal(t, p, back)

	_, err = pixelsFromBGR(2, 2, raw)
	require.ErrorIs(t, err, entity.ErrInvalidImage)
}

func TestParseFocusMethod(t *testing.T) {
	m, err := ParseFocusMethod("")
	require.NoError(t, err)
	require.Equal(t, FocusSobelVariance, m)

	m, err = ParseFocusMethod("brenner")
	require.NoError(t, err)
	require.Equal(t, FocusBrenner, m)

	_, err = ParseFocusMethod("autofocus")
	require.Error(t, err)
}

func TestDefaultFocusThreshold(t *testing.T) {
	require.Equal(t, 150000.0, DefaultFocusThreshold(FocusSobelVariance))
	require.Equal(t, 10000.0, DefaultFocusThreshold(FocusLaplacian))
	require.Equal(t, 100.0, DefaultFocusThreshold(FocusTenengrad))
	require.Equal(t, 200.0, DefaultFocusThreshold(FocusLocalVariance))
	require.Equal(t, 5000.0, DefaultFocusThreshold(FocusBrenner))
}
