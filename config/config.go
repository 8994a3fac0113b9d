package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	ReportTitle   string

	CardRows int
	CardCols int

	ColorDistanceThreshold float64
	FocusThreshold         float64 // 0: порог по умолчанию для FocusMethod
	FocusMethod            string
	ReprojectionThreshold  float64
	LightMin               float64
	LightMax               float64

	ChessboardRows int
	ChessboardCols int

	SegmentSaturationCutoff float64
	SegmentValueCutoff      float64
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		ReportTitle:   getString("REPORT_TITLE", "Camera Detection Test"),
		FocusMethod:   os.Getenv("FOCUS_METHOD"),
	}

	var err error
	if cfg.CardRows, err = getInt("CARD_ROWS", 6); err != nil {
		return nil, err
	}
	if cfg.CardCols, err = getInt("CARD_COLS", 4); err != nil {
		return nil, err
	}
	if cfg.ChessboardRows, err = getInt("CHESSBOARD_ROWS", 6); err != nil {
		return nil, err
	}
	if cfg.ChessboardCols, err = getInt("CHESSBOARD_COLS", 9); err != nil {
		return nil, err
	}
	if cfg.ColorDistanceThreshold, err = getFloat("COLOR_DISTANCE_THRESHOLD", 40); err != nil {
		return nil, err
	}
	if cfg.FocusThreshold, err = getFloat("FOCUS_THRESHOLD", 0); err != nil {
		return nil, err
	}
	if cfg.ReprojectionThreshold, err = getFloat("REPROJECTION_THRESHOLD", 1.0); err != nil {
		return nil, err
	}
	if cfg.LightMin, err = getFloat("LIGHT_MIN", 120); err != nil {
		return nil, err
	}
	if cfg.LightMax, err = getFloat("LIGHT_MAX", 180); err != nil {
		return nil, err
	}
	if cfg.SegmentSaturationCutoff, err = getFloat("SEGMENT_SATURATION_CUTOFF", 60); err != nil {
		return nil, err
	}
	if cfg.SegmentValueCutoff, err = getFloat("SEGMENT_VALUE_CUTOFF", 60); err != nil {
		return nil, err
	}

	if cfg.CardRows <= 0 || cfg.CardCols <= 0 {
		return nil, fmt.Errorf("card grid must be positive, got %dx%d", cfg.CardRows, cfg.CardCols)
	}
	if cfg.ChessboardRows <= 0 || cfg.ChessboardCols <= 0 {
		return nil, fmt.Errorf("chessboard pattern must be positive, got %dx%d", cfg.ChessboardCols, cfg.ChessboardRows)
	}
	if cfg.FocusThreshold < 0 {
		return nil, fmt.Errorf("FOCUS_THRESHOLD must not be negative, got %g", cfg.FocusThreshold)
	}
	if cfg.LightMin > cfg.LightMax {
		return nil, fmt.Errorf("LIGHT_MIN (%g) is greater than LIGHT_MAX (%g)", cfg.LightMin, cfg.LightMax)
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
