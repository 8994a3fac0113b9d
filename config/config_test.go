package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var keys = []string{
	"TELEGRAM_TOKEN", "REPORT_TITLE", "FOCUS_METHOD",
	"CARD_ROWS", "CARD_COLS", "CHESSBOARD_ROWS", "CHESSBOARD_COLS",
	"COLOR_DISTANCE_THRESHOLD", "FOCUS_THRESHOLD", "REPROJECTION_THRESHOLD",
	"LIGHT_MIN", "LIGHT_MAX", "SEGMENT_SATURATION_CUTOFF", "SEGMENT_VALUE_CUTOFF",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Camera Detection Test", cfg.ReportTitle)
	require.Equal(t, 6, cfg.CardRows)
	require.Equal(t, 4, cfg.CardCols)
	require.Equal(t, 9, cfg.ChessboardCols)
	require.Equal(t, 6, cfg.ChessboardRows)
	require.Equal(t, 40.0, cfg.ColorDistanceThreshold)
	require.Zero(t, cfg.FocusThreshold, "threshold follows the focus method")
	require.Equal(t, 1.0, cfg.ReprojectionThreshold)
	require.Equal(t, 120.0, cfg.LightMin)
	require.Equal(t, 180.0, cfg.LightMax)
	require.Equal(t, 60.0, cfg.SegmentSaturationCutoff)
	require.Equal(t, 60.0, cfg.SegmentValueCutoff)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("CARD_ROWS", "4")
	t.Setenv("CARD_COLS", "6")
	t.Setenv("LIGHT_MIN", "100.5")
	t.Setenv("FOCUS_METHOD", "laplacian")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.TelegramToken)
	require.Equal(t, 4, cfg.CardRows)
	require.Equal(t, 6, cfg.CardCols)
	require.Equal(t, 100.5, cfg.LightMin)
	require.Equal(t, "laplacian", cfg.FocusMethod)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"not a number", "CARD_ROWS", "six"},
		{"zero cols", "CARD_COLS", "0"},
		{"bad float", "FOCUS_THRESHOLD", "high"},
		{"inverted light range", "LIGHT_MIN", "200"},
		{"negative chessboard", "CHESSBOARD_ROWS", "-1"},
		{"negative focus threshold", "FOCUS_THRESHOLD", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_FocusThresholdOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("FOCUS_METHOD", "tenengrad")
	t.Setenv("FOCUS_THRESHOLD", "80")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "tenengrad", cfg.FocusMethod)
	require.Equal(t, 80.0, cfg.FocusThreshold)
}
