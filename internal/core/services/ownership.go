package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// ownedHabit loads a habit and hides it from anyone but its owner.
func ownedHabit(ctx context.Context, repo domain.HabitRepository, habitID, userID string) (*domain.Habit, error) {
	habit, err := repo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}
