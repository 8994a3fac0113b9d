package container

import (
	"fmt"

	"calibration-bot/config"
	app "calibration-bot/internal/application"
	"calibration-bot/internal/domain/entity"
	"calibration-bot/internal/domain/port"
	"calibration-bot/internal/infrastructure/report"
	"calibration-bot/internal/infrastructure/storage"
	"calibration-bot/internal/infrastructure/vision"
)

type Container struct {
	UserService        *app.UserService
	CalibrationService *app.CalibrationService
}

// Deps реализации портов, из которых собираются сервисы.
type Deps struct {
	Users    port.UserRepository
	Sessions port.SessionRepository
	Analyzer port.CardAnalyzer
	Focus    port.FocusMeter
	Light    port.LightMeter
	Lens     port.LensCalibrator
	Renderer port.ReportRenderer
	Document port.DocumentRenderer
}

func New(deps Deps, settings app.Settings) *Container {
	userService := app.NewUserService(deps.Users)
	calibrationService := app.NewCalibrationService(
		userService,
		deps.Sessions,
		deps.Analyzer,
		deps.Focus,
		deps.Light,
		deps.Lens,
		deps.Renderer,
		deps.Document,
		settings,
	)

	return &Container{
		UserService:        userService,
		CalibrationService: calibrationService,
	}
}

// FromConfig собирает контейнер с OpenCV-реализациями и in-memory хранилищами.
func FromConfig(cfg *config.Config) (*Container, error) {
	focusMethod, err := vision.ParseFocusMethod(cfg.FocusMethod)
	if err != nil {
		return nil, fmt.Errorf("invalid FOCUS_METHOD: %w", err)
	}

	segment := vision.DefaultSegmentParams()
	segment.SaturationCutoff = cfg.SegmentSaturationCutoff
	segment.ValueCutoff = cfg.SegmentValueCutoff

	deps := Deps{
		Users:    storage.NewMemoryUserRepository(),
		Sessions: storage.NewMemorySessionRepository(),
		Analyzer: vision.NewGoCVAnalyzer(segment),
		Focus:    vision.NewGoCVFocusMeter(focusMethod),
		Light:    vision.NewGoCVLightMeter(),
		Lens:     vision.NewGoCVLensCalibrator(cfg.ChessboardCols, cfg.ChessboardRows),
		Renderer: report.NewTextRenderer(),
		Document: report.NewPDFRenderer(),
	}

	return New(deps, SettingsFromConfig(cfg)), nil
}

// SettingsFromConfig переносит пороги из конфигурации в настройки сервиса.
// Без FOCUS_THRESHOLD порог резкости берётся по выбранной мере.
func SettingsFromConfig(cfg *config.Config) app.Settings {
	focusThreshold := cfg.FocusThreshold
	if focusThreshold == 0 {
		// Некорректное название меры отвергает FromConfig, здесь остаётся мера по умолчанию.
		method, err := vision.ParseFocusMethod(cfg.FocusMethod)
		if err != nil {
			method = vision.FocusSobelVariance
		}
		focusThreshold = vision.DefaultFocusThreshold(method)
	}

	card := entity.Small24
	if cfg.CardRows != card.Rows || cfg.CardCols != card.Cols {
		// Раскладка отличается от встроенной карты: сравниваем по порядку, сколько полей есть.
		card.Rows, card.Cols = cfg.CardRows, cfg.CardCols
	}

	return app.Settings{
		Title:                  cfg.ReportTitle,
		Card:                   card,
		Rows:                   cfg.CardRows,
		Cols:                   cfg.CardCols,
		ColorDistanceThreshold: cfg.ColorDistanceThreshold,
		FocusThreshold:         focusThreshold,
		ReprojectionThreshold:  cfg.ReprojectionThreshold,
		LightMin:               cfg.LightMin,
		LightMax:               cfg.LightMax,
	}
}
