package port

import (
	"context"

	"calibration-bot/internal/domain/entity"
)

// ReportRenderer интерфейс генератора отчёта
type ReportRenderer interface {
	// Render превращает отчёт в текст для отправки пользователю или вывода в консоль
	Render(ctx context.Context, report *entity.CalibrationReport) (string, error)
}

// DocumentRenderer собирает отчёт в файл с таблицами и картинками разбора карты
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, report *entity.CalibrationReport) ([]byte, error)
}
