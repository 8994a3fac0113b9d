package port

import (
	"context"

	"calibration-bot/internal/domain/entity"
)

// UserRepository хранит пользователей бота и их шаг в диалоге
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден.
	// chatID обновляется, если пользователь пишет из другого чата.
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	Save(ctx context.Context, user *entity.User) error

	// UpdateState меняет состояние существующего пользователя,
	// для неизвестного возвращает entity.ErrUserNotFound
	UpdateState(ctx context.Context, userID int64, state entity.UserState) error
}
