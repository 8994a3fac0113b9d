//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"calibration-bot/internal/domain/entity"
)

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func blackCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, img.Bounds(), color.RGBA{A: 255})
	return img
}

// syntheticCard рисует на чёрном фоне карту 6×4 из насыщенных полей 60×60.
func syntheticCard() (*image.RGBA, image.Rectangle, []entity.Color) {
	img := blackCanvas(400, 480)
	card := image.Rect(60, 40, 60+240, 40+360)

	var colors []entity.Color
	for r := 0; r < 6; r++ {
		for c := 0; c < 4; c++ {
			col := entity.Color{
				R: uint8(100 + 40*c),
				G: uint8(10 + 5*r),
				B: uint8(240 - 30*r),
			}
			colors = append(colors, col)
			cell := image.Rect(card.Min.X+c*60, card.Min.Y+r*60, card.Min.X+(c+1)*60, card.Min.Y+(r+1)*60)
			fillRect(img, cell, col.RGBA())
		}
	}
	return img, card, colors
}

func TestAnalyzeCard_SyntheticCard(t *testing.T) {
	img, card, colors := syntheticCard()
	analyzer := NewGoCVAnalyzer(DefaultSegmentParams())

	result, err := analyzer.AnalyzeCard(context.Background(), encodeTestPNG(t, img), 6, 4)
	require.NoError(t, err)

	require.InDelta(t, card.Min.X, result.Region.X, 3)
	require.InDelta(t, card.Min.Y, result.Region.Y, 3)
	require.InDelta(t, card.Dx(), result.Region.Width, 6)
	require.InDelta(t, card.Dy(), result.Region.Height, 6)
	require.True(t, result.Region.Valid(image.Rect(0, 0, result.ImageWidth, result.ImageHeight)))

	require.Len(t, result.Samples, 24)
	for i, s := range result.Samples {
		require.Equal(t, i/4, s.Row)
		require.Equal(t, i%4, s.Col)
		require.Equal(t, colors[i], s.Median, "cell %d", i)
	}

	require.NotEmpty(t, result.Diagnostics.Mask)
	require.NotEmpty(t, result.Diagnostics.Edges)
	require.NotEmpty(t, result.Diagnostics.GridLines)
	require.NotEmpty(t, result.Diagnostics.Cells)
}

func TestAnalyzeCard_Deterministic(t *testing.T) {
	img, _, _ := syntheticCard()
	data := encodeTestPNG(t, img)
	analyzer := NewGoCVAnalyzer(DefaultSegmentParams())

	first, err := analyzer.AnalyzeCard(context.Background(), data, 6, 4)
	require.NoError(t, err)
	second, err := analyzer.AnalyzeCard(context.Background(), data, 6, 4)
	require.NoError(t, err)

	require.Equal(t, first.Region, second.Region)
	require.Equal(t, first.Samples, second.Samples)
}

func TestAnalyzeCard_PicksLargestBlob(t *testing.T) {
	img := blackCanvas(200, 200)
	red := color.RGBA{R: 230, G: 30, B: 30, A: 255}
	small := image.Rect(20, 20, 30, 30)     // 100 px
	large := image.Rect(100, 100, 125, 120) // 500 px
	fillRect(img, small, red)
	fillRect(img, large, red)

	result, err := NewGoCVAnalyzer(DefaultSegmentParams()).AnalyzeCard(context.Background(), encodeTestPNG(t, img), 2, 2)
	require.NoError(t, err)

	require.InDelta(t, large.Min.X, result.Region.X, 3)
	require.InDelta(t, large.Min.Y, result.Region.Y, 3)
	require.InDelta(t, large.Dx(), result.Region.Width, 6)
	require.InDelta(t, large.Dy(), result.Region.Height, 6)
}

func TestAnalyzeCard_NoRegion(t *testing.T) {
	img := blackCanvas(120, 80)

	_, err := NewGoCVAnalyzer(DefaultSegmentParams()).AnalyzeCard(context.Background(), encodeTestPNG(t, img), 6, 4)
	require.ErrorIs(t, err, entity.ErrNoRegionFound)
}

func TestAnalyzeCard_InvalidInput(t *testing.T) {
	analyzer := NewGoCVAnalyzer(DefaultSegmentParams())
	ctx := context.Background()

	_, err := analyzer.AnalyzeCard(ctx, []byte("garbage"), 6, 4)
	require.ErrorIs(t, err, entity.ErrInvalidImage)

	img, _, _ := syntheticCard()
	_, err = analyzer.AnalyzeCard(ctx, encodeTestPNG(t, img), 0, 4)
	require.ErrorIs(t, err, entity.ErrInvalidGridConfig)
}

func TestAnalyzeCard_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoCVAnalyzer(DefaultSegmentParams()).AnalyzeCard(ctx, nil, 6, 4)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEncodeMat_KeepsChannelOrder(t *testing.T) {
	p := entity.NewPixels(3, 2)
	want := entity.Color{R: 220, G: 40, B: 10}
	p.Set(1, 1, want)

	m, err := gocv.NewMatFromBytes(2, 3, gocv.MatTypeCV8UC3, bgrBytes(p))
	require.NoError(t, err)
	defer m.Close()

	data, err := encodeMat(m, 0)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, g, b, _ := img.At(1, 1).RGBA()
	require.Equal(t, want, entity.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
}
