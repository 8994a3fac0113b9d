package telegram

import (
	"errors"
	"math"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"calibration-bot/internal/domain/entity"
)

func TestFormatColorResult(t *testing.T) {
	result := entity.ColorBalanceResult{
		CardName:  "CameraTrax 24 ColorCard",
		Threshold: 40,
		Checks: []entity.ColorCheck{
			{Name: "White", Sample: entity.Color{R: 243, G: 238, B: 243}, Pass: true},
			{Name: "Red", Sample: entity.Color{R: 10}, Distance: 180.5},
		},
	}

	text := formatColorResult(result)
	require.Contains(t, text, "CameraTrax 24 ColorCard")
	require.Contains(t, text, "#F3EEF3")
	require.Contains(t, text, "Δ=180.5")
	require.Contains(t, text, "Не приняты: Red")

	result.Err = entity.ErrNoRegionFound
	require.Contains(t, formatColorResult(result), "no color card region found")
}

func TestFormatMetric(t *testing.T) {
	text := formatMetric("Резкость", entity.MetricResult{Value: 163250.456, Threshold: "150000", Pass: true})
	require.Equal(t, "✅ Резкость: 163250.46 (порог 150000)", text)

	text = formatMetric("Ошибка репроекции", entity.MetricResult{Value: math.Inf(1), Threshold: "1"})
	require.Contains(t, text, "∞")

	text = formatMetric("Освещённость", entity.MetricResult{Value: -1, Err: errors.New("boom")})
	require.Contains(t, text, "boom")
}

func TestFormatSummary(t *testing.T) {
	report := &entity.CalibrationReport{
		Title: "Camera Detection Test",
		Focus: entity.MetricResult{Pass: true},
	}
	text := formatSummary(report)
	require.Contains(t, text, "✅ Резкость")
	require.Contains(t, text, "❌ Цветопередача")
	require.Contains(t, text, "Итог: ❌")
}

func TestFormatLens(t *testing.T) {
	lens := &entity.LensCalibration{
		CameraMatrix: [3][3]float64{{1000, 0, 320}, {0, 1001, 240}, {0, 0, 1}},
		FramesUsed:   9,
		FramesTotal:  10,
	}
	text := formatLens(entity.MetricResult{Value: 0.25, Threshold: "1", Pass: true}, lens)
	require.Contains(t, text, "9 из 10")
	require.Contains(t, text, "fx=1000.0")
	require.Contains(t, text, "cy=240.0")
}

func TestImageFileID(t *testing.T) {
	msg := &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}}
	id, ok := imageFileID(msg)
	require.True(t, ok)
	require.Equal(t, "large", id)

	msg = &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "tif", MimeType: "image/tiff"}}
	id, ok = imageFileID(msg)
	require.True(t, ok)
	require.Equal(t, "tif", id)

	msg = &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "pdf", MimeType: "application/pdf"}}
	_, ok = imageFileID(msg)
	require.False(t, ok)
}

func TestFormatCardRegion(t *testing.T) {
	analysis := &entity.CardAnalysis{
		ImageWidth:  1920,
		ImageHeight: 1080,
		Region:      entity.BoundingRegion{X: 100, Y: 50, Width: 400, Height: 600},
		Grid:        entity.Grid{Rows: 6, Cols: 4},
	}

	require.Equal(t, "📐 Карта найдена: 400×600 px из 1920×1080, центр (300, 350), сетка 6×4", formatCardRegion(analysis))
}
