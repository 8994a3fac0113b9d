package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"calibration-bot/internal/domain/entity"
	"calibration-bot/internal/infrastructure/storage"
)

func TestUserService_BeginAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	steps := []struct {
		begin func(context.Context, int64, int64) (*entity.User, error)
		want  entity.UserState
	}{
		{svc.BeginColorCard, entity.StateAwaitingCardPhoto},
		{svc.BeginFocus, entity.StateAwaitingFocusPhoto},
		{svc.BeginLight, entity.StateAwaitingLightPhoto},
		{svc.BeginLens, entity.StateCollectingBoards},
		{svc.MarkProcessing, entity.StateProcessing},
	}

	for _, step := range steps {
		user, err := step.begin(ctx, 1, 10)
		require.NoError(t, err)
		require.Equal(t, step.want, user.State)

		user, err = svc.Cancel(ctx, 1, 10)
		require.NoError(t, err)
		require.Equal(t, entity.StateMainMenu, user.State)
	}
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateAwaitingLightPhoto)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingLightPhoto, user.State)
}
