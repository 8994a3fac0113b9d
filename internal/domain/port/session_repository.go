package port

import (
	"context"

	"calibration-bot/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий проверки
type SessionRepository interface {
	// Get возвращает копию сессии пользователя; если сессии нет, пустую.
	// Изменения копии не видны хранилищу до Save.
	Get(ctx context.Context, userID int64) (*entity.Session, error)

	// Update меняет сессию на месте под блокировкой хранилища, создавая её при необходимости
	Update(ctx context.Context, userID int64, update func(*entity.Session)) error

	// Save сохраняет сессию целиком
	Save(ctx context.Context, session *entity.Session) error

	// Delete удаляет сессию пользователя
	Delete(ctx context.Context, userID int64) error
}
