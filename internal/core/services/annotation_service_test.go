package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

func seedHabit(t *testing.T, repo domain.HabitRepository, userID string) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(userID, domain.HabitAttributes{Name: "Focus"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), h))
	return h
}

func TestNoteService(t *testing.T) {
	ctx := context.Background()
	habits := repository.NewInMemoryHabitRepository()
	h := seedHabit(t, habits, "u1")
	svc := services.NewNoteService(repository.NewInMemoryNoteRepository(), habits)

	n, err := svc.Create(ctx, "u1", h.ID, "  good session ")
	require.NoError(t, err)
	assert.Equal(t, "good session", n.Content)

	_, err = svc.Create(ctx, "u1", h.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrNoteContentEmpty)

	_, err = svc.Create(ctx, "u2", h.ID, "sneaky")
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)

	updated, err := svc.Update(ctx, n.ID, "u1", "great session")
	require.NoError(t, err)
	assert.Equal(t, "great session", updated.Content)

	_, err = svc.Update(ctx, n.ID, "u2", "mine now")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	list, err := svc.List(ctx, h.ID, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "great session", list[0].Content)

	assert.ErrorIs(t, svc.Delete(ctx, n.ID, "u2"), domain.ErrUnauthorized)
	require.NoError(t, svc.Delete(ctx, n.ID, "u1"))
	assert.ErrorIs(t, svc.Delete(ctx, n.ID, "u1"), domain.ErrNoteNotFound)
}

func TestDistractionService(t *testing.T) {
	ctx := context.Background()
	habits := repository.NewInMemoryHabitRepository()
	h := seedHabit(t, habits, "u1")
	svc := services.NewDistractionService(repository.NewInMemoryNoteRepository(), habits)

	d, err := svc.Create(ctx, "u1", h.ID, "phone")
	require.NoError(t, err)

	list, err := svc.List(ctx, h.ID, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, d.ID, "u1"))
}

func TestPomodoroService(t *testing.T) {
	ctx := context.Background()
	habits := repository.NewInMemoryHabitRepository()
	h := seedHabit(t, habits, "u1")
	svc := services.NewPomodoroService(repository.NewInMemoryPomodoroRepository(), habits)

	_, err := svc.Start(ctx, services.StartPomodoroInput{UserID: "u1", HabitID: h.ID, Duration: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	s, err := svc.Start(ctx, services.StartPomodoroInput{UserID: "u1", HabitID: h.ID, Duration: 25})
	require.NoError(t, err)
	assert.Nil(t, s.EndedAt)

	_, err = svc.End(ctx, s.ID, "u2", nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	ended, err := svc.End(ctx, s.ID, "u1", ptr(3))
	require.NoError(t, err)
	assert.NotNil(t, ended.EndedAt)
	assert.Equal(t, 3, ended.CompletedPomodoros)

	_, err = svc.End(ctx, s.ID, "u1", nil)
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyEnded)

	list, err := svc.List(ctx, h.ID, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
