package storage

import (
	"context"
	"errors"
	"sync"

	"calibration-bot/internal/domain/entity"
	"calibration-bot/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище пользователей бота
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*entity.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*entity.User),
	}
}

// Get возвращает пользователя по ID, создаёт нового если не найден.
// Если пользователь написал из другого чата, ответы уходят в новый чат.
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.RLock()
	user, exists := r.users[userID]
	sameChat := exists && user.ChatID == chatID
	r.mu.RUnlock()

	if sameChat {
		return user, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists = r.users[userID]
	if !exists {
		user = entity.NewUser(userID, chatID)
		r.users[userID] = user
		return user, nil
	}
	user.ChatID = chatID

	return user, nil
}

func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errors.New("save user: nil user")
	}

	r.mu.Lock()
	r.users[user.ID] = user
	r.mu.Unlock()

	return nil
}

// UpdateState меняет состояние под блокировкой хранилища, без Get+Save
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID int64, state entity.UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[userID]
	if !exists {
		return entity.ErrUserNotFound
	}
	user.SetState(state)

	return nil
}

var _ port.UserRepository = (*MemoryUserRepository)(nil)
