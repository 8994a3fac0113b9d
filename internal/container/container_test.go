package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"calibration-bot/config"
	"calibration-bot/internal/domain/entity"
)

func testConfig() *config.Config {
	return &config.Config{
		ReportTitle:             "QC",
		CardRows:                6,
		CardCols:                4,
		ColorDistanceThreshold:  35,
		FocusThreshold:          1000,
		ReprojectionThreshold:   0.5,
		LightMin:                100,
		LightMax:                200,
		ChessboardRows:          6,
		ChessboardCols:          9,
		SegmentSaturationCutoff: 60,
		SegmentValueCutoff:      60,
	}
}

func TestFromConfig(t *testing.T) {
	c, err := FromConfig(testConfig())
	require.NoError(t, err)
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.CalibrationService)

	settings := c.CalibrationService.Settings()
	require.Equal(t, "QC", settings.Title)
	require.Equal(t, 35.0, settings.ColorDistanceThreshold)
	require.Equal(t, entity.Small24.Name, settings.Card.Name)

	pdf, err := c.CalibrationService.RenderDocument(context.Background(), &entity.CalibrationReport{Title: "QC"})
	require.NoError(t, err)
	require.NotEmpty(t, pdf)

	user, err := c.UserService.BeginColorCard(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingCardPhoto, user.State)
}

func TestFromConfig_InvalidFocusMethod(t *testing.T) {
	cfg := testConfig()
	cfg.FocusMethod = "squint"

	_, err := FromConfig(cfg)
	require.Error(t, err)
}

func TestSettingsFromConfig_CustomLayout(t *testing.T) {
	cfg := testConfig()
	cfg.CardRows, cfg.CardCols = 4, 6

	settings := SettingsFromConfig(cfg)
	require.Equal(t, 4, settings.Rows)
	require.Equal(t, 6, settings.Cols)
	require.Equal(t, 4, settings.Card.Rows)
	require.Len(t, settings.Card.Colors, 24)
	// Встроенная карта не изменилась.
	require.Equal(t, 6, entity.Small24.Rows)
}

func TestSettingsFromConfig_FocusThresholdFollowsMethod(t *testing.T) {
	tests := []struct {
		method string
		want   float64
	}{
		{"", 150000},
		{"sobel_variance", 150000},
		{"laplacian", 10000},
		{"tenengrad", 100},
		{"local_variance", 200},
		{"brenner", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			cfg := testConfig()
			cfg.FocusMethod = tt.method
			cfg.FocusThreshold = 0

			require.Equal(t, tt.want, SettingsFromConfig(cfg).FocusThreshold)
		})
	}
}

func TestSettingsFromConfig_ExplicitFocusThreshold(t *testing.T) {
	cfg := testConfig()
	cfg.FocusMethod = "tenengrad"
	cfg.FocusThreshold = 80

	require.Equal(t, 80.0, SettingsFromConfig(cfg).FocusThreshold)
}

func TestFromConfig_LoadedFocusMethod(t *testing.T) {
	t.Setenv("FOCUS_METHOD", "tenengrad")
	t.Setenv("FOCUS_THRESHOLD", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	c, err := FromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, 100.0, c.CalibrationService.Settings().FocusThreshold)
}
