package storage

import (
	"context"
	"errors"
	"sync"

	"calibration-bot/internal/domain/entity"
	"calibration-bot/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище сессий проверки.
// Наружу отдаются только копии, сессии в карте меняются под мьютексом.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]*entity.Session
}

// NewMemorySessionRepository создаёт новое in-memory хранилище сессий
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[int64]*entity.Session),
	}
}

func (r *MemorySessionRepository) Get(ctx context.Context, userID int64) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if session, exists := r.sessions[userID]; exists {
		return session.Clone(), nil
	}
	return entity.NewSession(userID), nil
}

func (r *MemorySessionRepository) Update(ctx context.Context, userID int64, update func(*entity.Session)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[userID]
	if !exists {
		session = entity.NewSession(userID)
		r.sessions[userID] = session
	}
	update(session)

	return nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return errors.New("save session: nil session")
	}

	r.mu.Lock()
	r.sessions[session.UserID] = session.Clone()
	r.mu.Unlock()

	return nil
}

// Delete удаляет сессию пользователя
func (r *MemorySessionRepository) Delete(ctx context.Context, userID int64) error {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()

	return nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
