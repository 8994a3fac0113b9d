package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"calibration-bot/internal/domain/entity"
	"calibration-bot/internal/domain/port"
)

// ErrNotMeasured метрика не снималась в текущей сессии.
var ErrNotMeasured = errors.New("not measured")

// Settings карта, раскладка и пороги приёмки.
type Settings struct {
	Title                  string
	Card                   entity.ColorCard
	Rows                   int
	Cols                   int
	ColorDistanceThreshold float64
	FocusThreshold         float64
	ReprojectionThreshold  float64
	LightMin               float64
	LightMax               float64
}

// DefaultSettings возвращает пороги по умолчанию для карты CameraTrax 24.
func DefaultSettings() Settings {
	return Settings{
		Title:                  "Camera Detection Test",
		Card:                   entity.Small24,
		Rows:                   entity.DefaultRows,
		Cols:                   entity.DefaultCols,
		ColorDistanceThreshold: 40,
		FocusThreshold:         150000,
		ReprojectionThreshold:  1.0,
		LightMin:               120,
		LightMax:               180,
	}
}

type CalibrationService struct {
	users    *UserService
	sessions port.SessionRepository
	analyzer port.CardAnalyzer
	focus    port.FocusMeter
	light    port.LightMeter
	lens     port.LensCalibrator
	renderer port.ReportRenderer
	document port.DocumentRenderer
	settings Settings
	now      func() time.Time
}

// ColorCardOutput содержит результат сравнения цветов и разбор снимка (nil при ошибке).
type ColorCardOutput struct {
	Result   entity.ColorBalanceResult
	Analysis *entity.CardAnalysis
}

// Inputs снимки для пакетной проверки без сессии.
type Inputs struct {
	Card        []byte
	Focus       []byte
	Light       []byte
	Chessboards [][]byte
}

// NewCalibrationService создаёт сервис, который ведёт проверку камеры.
func NewCalibrationService(
	users *UserService,
	sessions port.SessionRepository,
	analyzer port.CardAnalyzer,
	focus port.FocusMeter,
	light port.LightMeter,
	lens port.LensCalibrator,
	renderer port.ReportRenderer,
	document port.DocumentRenderer,
	settings Settings,
) *CalibrationService {
	return &CalibrationService{
		users:    users,
		sessions: sessions,
		analyzer: analyzer,
		focus:    focus,
		light:    light,
		lens:     lens,
		renderer: renderer,
		document: document,
		settings: settings,
		now:      time.Now,
	}
}

// Settings возвращает текущие пороги.
func (s *CalibrationService) Settings() Settings {
	return s.settings
}

// RecordColorCard разбирает снимок карты, сохраняет результат в сессию и возвращает пользователя в меню.
func (s *CalibrationService) RecordColorCard(ctx context.Context, userID, chatID int64, photo []byte) (*ColorCardOutput, error) {
	out := s.measureColors(ctx, photo)

	err := s.updateSession(ctx, userID, func(session *entity.Session) {
		session.Colors = &out.Result
		session.Diagnostics = nil
		if out.Analysis != nil {
			session.Diagnostics = &out.Analysis.Diagnostics
		}
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.users.Cancel(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return out, nil
}

// RecordFocus оценивает резкость снимка и сохраняет метрику в сессию.
func (s *CalibrationService) RecordFocus(ctx context.Context, userID, chatID int64, photo []byte) (*entity.MetricResult, error) {
	metric := s.measureFocus(ctx, photo)
	if err := s.updateSession(ctx, userID, func(session *entity.Session) { session.Focus = &metric }); err != nil {
		return nil, err
	}
	if _, err := s.users.Cancel(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return &metric, nil
}

// RecordLight оценивает освещённость снимка и сохраняет метрику в сессию.
func (s *CalibrationService) RecordLight(ctx context.Context, userID, chatID int64, photo []byte) (*entity.MetricResult, error) {
	metric := s.measureLight(ctx, photo)
	if err := s.updateSession(ctx, userID, func(session *entity.Session) { session.Light = &metric }); err != nil {
		return nil, err
	}
	if _, err := s.users.Cancel(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return &metric, nil
}

// AddChessboardFrame добавляет кадр шахматной доски и возвращает число собранных кадров.
func (s *CalibrationService) AddChessboardFrame(ctx context.Context, userID int64, photo []byte) (int, error) {
	if len(photo) == 0 {
		return 0, fmt.Errorf("%w: empty frame", entity.ErrInvalidImage)
	}

	var count int
	err := s.updateSession(ctx, userID, func(session *entity.Session) {
		session.Chessboards = append(session.Chessboards, photo)
		count = len(session.Chessboards)
	})
	return count, err
}

// CalibrateLens калибрует объектив по собранным кадрам и возвращает метрику ошибки репроекции.
// Кадры после калибровки освобождаются.
func (s *CalibrationService) CalibrateLens(ctx context.Context, userID, chatID int64) (*entity.MetricResult, *entity.LensCalibration, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	lens, lensErr := s.calibrate(ctx, session.Chessboards)
	err = s.updateSession(ctx, userID, func(stored *entity.Session) {
		stored.Lens = lens
		stored.LensErr = lensErr
		stored.Chessboards = nil
	})
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.users.Cancel(ctx, userID, chatID); err != nil {
		return nil, nil, err
	}

	metric := s.reprojectionMetric(lens, lensErr)
	return &metric, lens, nil
}

// BuildReport собирает отчёт из измерений сессии. Отсутствующие измерения дают заглушки и провал метрики.
func (s *CalibrationService) BuildReport(ctx context.Context, userID int64) (*entity.CalibrationReport, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	focus := s.focusMetric(-1, ErrNotMeasured)
	if session.Focus != nil {
		focus = *session.Focus
	}
	light := s.lightMetric(-1, ErrNotMeasured)
	if session.Light != nil {
		light = *session.Light
	}
	colors := s.colorPlaceholder(ErrNotMeasured)
	if session.Colors != nil {
		colors = *session.Colors
	}

	lens, lensErr := session.Lens, session.LensErr
	if lens == nil && lensErr == nil {
		lensErr = ErrNotMeasured
	}

	report := s.assemble(focus, lens, lensErr, light, colors)
	report.Diagnostics = session.Diagnostics
	return report, nil
}

// RenderReport собирает и рендерит отчёт сессии.
func (s *CalibrationService) RenderReport(ctx context.Context, userID int64) (string, *entity.CalibrationReport, error) {
	report, err := s.BuildReport(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	text, err := s.Render(ctx, report)
	if err != nil {
		return "", nil, err
	}
	return text, report, nil
}

// Render рендерит готовый отчёт.
func (s *CalibrationService) Render(ctx context.Context, report *entity.CalibrationReport) (string, error) {
	if s.renderer == nil {
		return "", errors.New("report renderer is not configured")
	}
	return s.renderer.Render(ctx, report)
}

// RenderDocument собирает отчёт в PDF.
func (s *CalibrationService) RenderDocument(ctx context.Context, report *entity.CalibrationReport) ([]byte, error) {
	if s.document == nil {
		return nil, errors.New("document renderer is not configured")
	}
	return s.document.RenderDocument(ctx, report)
}

// Evaluate выполняет полную проверку по набору снимков без сессии.
// Пустые входы дают заглушки, как и ошибки измерения.
func (s *CalibrationService) Evaluate(ctx context.Context, in Inputs) (*entity.CalibrationReport, *entity.CardAnalysis) {
	colors := s.colorPlaceholder(ErrNotMeasured)
	var analysis *entity.CardAnalysis
	if len(in.Card) > 0 {
		out := s.measureColors(ctx, in.Card)
		colors = out.Result
		analysis = out.Analysis
	}

	focus := s.focusMetric(-1, ErrNotMeasured)
	if len(in.Focus) > 0 {
		focus = s.measureFocus(ctx, in.Focus)
	}

	light := s.lightMetric(-1, ErrNotMeasured)
	if len(in.Light) > 0 {
		light = s.measureLight(ctx, in.Light)
	}

	var lens *entity.LensCalibration
	lensErr := ErrNotMeasured
	if len(in.Chessboards) > 0 {
		lens, lensErr = s.calibrate(ctx, in.Chessboards)
	}

	report := s.assemble(focus, lens, lensErr, light, colors)
	if analysis != nil {
		report.Diagnostics = &analysis.Diagnostics
	}
	return report, analysis
}

// Reset очищает сессию и возвращает пользователя в меню.
func (s *CalibrationService) Reset(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return nil, err
	}
	return s.users.Cancel(ctx, userID, chatID)
}

func (s *CalibrationService) updateSession(ctx context.Context, userID int64, update func(*entity.Session)) error {
	return s.sessions.Update(ctx, userID, update)
}

func (s *CalibrationService) measureColors(ctx context.Context, photo []byte) *ColorCardOutput {
	if s.analyzer == nil {
		return &ColorCardOutput{Result: s.colorPlaceholder(errors.New("card analyzer is not configured"))}
	}

	analysis, err := s.analyzer.AnalyzeCard(ctx, photo, s.settings.Rows, s.settings.Cols)
	if err != nil {
		log.Printf("Error during color balance analysis: %v", err)
		return &ColorCardOutput{Result: s.colorPlaceholder(err)}
	}

	result := CompareColors(s.settings.Card, analysis.MedianColors(), s.settings.ColorDistanceThreshold)
	return &ColorCardOutput{Result: result, Analysis: analysis}
}

func (s *CalibrationService) measureFocus(ctx context.Context, photo []byte) entity.MetricResult {
	if s.focus == nil {
		return s.focusMetric(-1, errors.New("focus meter is not configured"))
	}

	value, err := s.focus.MeasureFocus(ctx, photo)
	if err != nil {
		log.Printf("Error computing focus value: %v", err)
		return s.focusMetric(-1, err)
	}
	return s.focusMetric(value, nil)
}

func (s *CalibrationService) measureLight(ctx context.Context, photo []byte) entity.MetricResult {
	if s.light == nil {
		return s.lightMetric(-1, errors.New("light meter is not configured"))
	}

	value, err := s.light.MeasureLight(ctx, photo)
	if err != nil {
		log.Printf("Error computing light intensity: %v", err)
		return s.lightMetric(-1, err)
	}
	return s.lightMetric(value, nil)
}

func (s *CalibrationService) calibrate(ctx context.Context, frames [][]byte) (*entity.LensCalibration, error) {
	if s.lens == nil {
		return nil, errors.New("lens calibrator is not configured")
	}

	lens, err := s.lens.Calibrate(ctx, frames)
	if err != nil {
		log.Printf("Error during resolution calibration: %v", err)
		return nil, err
	}
	return lens, nil
}

func (s *CalibrationService) assemble(
	focus entity.MetricResult,
	lens *entity.LensCalibration,
	lensErr error,
	light entity.MetricResult,
	colors entity.ColorBalanceResult,
) *entity.CalibrationReport {
	report := &entity.CalibrationReport{
		Title:        s.settings.Title,
		CardName:     s.settings.Card.Name,
		GeneratedAt:  s.now(),
		Focus:        focus,
		Reprojection: s.reprojectionMetric(lens, lensErr),
		Light:        light,
		LightRange:   [2]float64{s.settings.LightMin, s.settings.LightMax},
		Colors:       colors,
	}
	if lens != nil {
		report.Lens = *lens
	} else {
		report.Lens = entity.LensCalibration{DistCoefficients: make([]float64, 5)}
	}
	return report
}

func (s *CalibrationService) focusMetric(value float64, err error) entity.MetricResult {
	return entity.MetricResult{
		Name:      "Focus Value",
		Value:     value,
		Threshold: fmt.Sprintf("%g", s.settings.FocusThreshold),
		Pass:      err == nil && value >= s.settings.FocusThreshold,
		Err:       err,
	}
}

func (s *CalibrationService) lightMetric(value float64, err error) entity.MetricResult {
	return entity.MetricResult{
		Name:      "Light Intensity",
		Value:     value,
		Threshold: fmt.Sprintf("(%g, %g)", s.settings.LightMin, s.settings.LightMax),
		Pass:      err == nil && value >= s.settings.LightMin && value <= s.settings.LightMax,
		Err:       err,
	}
}

func (s *CalibrationService) reprojectionMetric(lens *entity.LensCalibration, err error) entity.MetricResult {
	value := math.Inf(1)
	if err == nil && lens != nil {
		value = lens.ReprojectionError
	}
	return entity.MetricResult{
		Name:      "Reprojection Error",
		Value:     value,
		Threshold: fmt.Sprintf("%g", s.settings.ReprojectionThreshold),
		Pass:      value < s.settings.ReprojectionThreshold,
		Err:       err,
	}
}

func (s *CalibrationService) colorPlaceholder(err error) entity.ColorBalanceResult {
	result := CompareColors(s.settings.Card, nil, s.settings.ColorDistanceThreshold)
	result.Pass = false
	result.Err = err
	return result
}
