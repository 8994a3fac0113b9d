package port

import (
	"context"

	"calibration-bot/internal/domain/entity"
)

// CardAnalyzer интерфейс анализатора цветовой карты
type CardAnalyzer interface {
	// AnalyzeCard находит карту на снимке, делит её на rows×cols ячеек
	// и возвращает цвета ячеек вместе с диагностическими изображениями
	AnalyzeCard(ctx context.Context, imageData []byte, rows, cols int) (*entity.CardAnalysis, error)
}
