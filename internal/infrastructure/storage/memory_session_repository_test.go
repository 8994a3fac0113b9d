package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"calibration-bot/internal/domain/entity"
)

func TestMemorySessionRepository_GetSaveDelete(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	session, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), session.UserID)
	require.Nil(t, session.Focus)

	session.Focus = &entity.MetricResult{Name: "Focus", Value: 42}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 42.0, got.Focus.Value)

	require.NoError(t, repo.Delete(ctx, 7))
	fresh, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.Nil(t, fresh.Focus)

	require.Error(t, repo.Save(ctx, nil))
}

func TestMemorySessionRepository_GetReturnsCopy(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Update(ctx, 1, func(s *entity.Session) {
		s.Chessboards = append(s.Chessboards, []byte("a"))
	}))

	session, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	session.Chessboards = nil
	session.Light = &entity.MetricResult{Value: 150}

	stored, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stored.Chessboards, 1)
	require.Nil(t, stored.Light)

	// Сохранённая копия тоже отвязана от вызывающего
	require.NoError(t, repo.Save(ctx, session))
	session.Focus = &entity.MetricResult{Value: 1}
	stored, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, stored.Focus)
	require.NotNil(t, stored.Light)
}

func TestMemorySessionRepository_ConcurrentUpdate(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Update(ctx, 1, func(s *entity.Session) {
				s.Chessboards = append(s.Chessboards, []byte("frame"))
			})
			require.NoError(t, err)

			_, err = repo.Get(ctx, 1)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	session, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, session.Chessboards, 32)
}
