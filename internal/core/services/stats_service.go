package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// StatsService derives statistics from check-ins on every call; nothing is stored.
type StatsService struct {
	habitRepo   domain.HabitRepository
	checkInRepo domain.CheckInRepository
}

func NewStatsService(habitRepo domain.HabitRepository, checkInRepo domain.CheckInRepository) *StatsService {
	return &StatsService{
		habitRepo:   habitRepo,
		checkInRepo: checkInRepo,
	}
}

func (s *StatsService) HabitStats(ctx context.Context, habitID, userID string) (domain.HabitStats, error) {
	if _, err := ownedHabit(ctx, s.habitRepo, habitID, userID); err != nil {
		return domain.HabitStats{}, err
	}

	checkIns, err := s.checkInRepo.ListByHabitID(ctx, habitID)
	if err != nil {
		return domain.HabitStats{}, err
	}
	return domain.ComputeStats(habitID, checkIns), nil
}

// UserStats returns one entry per habit of the user, in habit list order.
func (s *StatsService) UserStats(ctx context.Context, userID string) ([]domain.HabitStats, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.HabitStats, 0, len(habits))
	for _, h := range habits {
		checkIns, err := s.checkInRepo.ListByHabitID(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ComputeStats(h.ID, checkIns))
	}
	return out, nil
}
