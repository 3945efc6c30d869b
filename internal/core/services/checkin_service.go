package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/platform/metrics"
)

type CheckInService struct {
	repo      domain.CheckInRepository
	habitRepo domain.HabitRepository
}

func NewCheckInService(repo domain.CheckInRepository, habitRepo domain.HabitRepository) *CheckInService {
	return &CheckInService{
		repo:      repo,
		habitRepo: habitRepo,
	}
}

type UpsertCheckInInput struct {
	UserID    string
	HabitID   string
	Date      string
	Completed bool
	TimeSpent *int
	Notes     *string
}

// Upsert records the state of a habit for one day. An existing record for the
// same (habit, date) is updated in place; otherwise a new one is inserted.
// When a concurrent writer inserts first, the unique key rejects our insert
// and the winner's record is updated instead.
func (s *CheckInService) Upsert(ctx context.Context, input UpsertCheckInInput) (*domain.CheckIn, error) {
	if err := domain.ValidateDate(input.Date); err != nil {
		return nil, err
	}
	if input.TimeSpent != nil && *input.TimeSpent < 0 {
		return nil, domain.ErrInvalidTimeSpent
	}

	if _, err := ownedHabit(ctx, s.habitRepo, input.HabitID, input.UserID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByDate(ctx, input.HabitID, input.Date)
	switch {
	case err == nil:
		return s.update(ctx, existing, input, "updated")
	case !errors.Is(err, domain.ErrCheckInNotFound):
		return nil, fmt.Errorf("lookup check-in: %w", err)
	}

	checkIn := domain.NewCheckIn(input.UserID, input.HabitID, input.Date, input.Completed)
	checkIn.TimeSpent = input.TimeSpent
	checkIn.Notes = input.Notes
	if err := checkIn.Validate(); err != nil {
		return nil, err
	}

	err = s.repo.Create(ctx, checkIn)
	if err == nil {
		metrics.CheckInUpsertsTotal.WithLabelValues("inserted").Inc()
		return checkIn, nil
	}
	if !errors.Is(err, domain.ErrCheckInConflict) {
		return nil, err
	}

	winner, err := s.repo.FindByDate(ctx, input.HabitID, input.Date)
	if err != nil {
		return nil, fmt.Errorf("lookup check-in after conflict: %w", err)
	}
	return s.update(ctx, winner, input, "conflict_resolved")
}

func (s *CheckInService) update(ctx context.Context, c *domain.CheckIn, input UpsertCheckInInput, outcome string) (*domain.CheckIn, error) {
	c.Mark(input.Completed, input.TimeSpent, input.Notes)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	metrics.CheckInUpsertsTotal.WithLabelValues(outcome).Inc()
	return c, nil
}

// ListByHabit returns every record of an owned habit, in no particular order.
func (s *CheckInService) ListByHabit(ctx context.Context, habitID, userID string) ([]*domain.CheckIn, error) {
	if _, err := ownedHabit(ctx, s.habitRepo, habitID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByHabitID(ctx, habitID)
}

// ListInRange returns the records with start <= date <= end, oldest first.
func (s *CheckInService) ListInRange(ctx context.Context, habitID, userID, start, end string) ([]*domain.CheckIn, error) {
	if err := domain.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	if _, err := ownedHabit(ctx, s.habitRepo, habitID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListInRange(ctx, habitID, start, end)
}

// LookupByDate returns (nil, nil) when the day has no record.
func (s *CheckInService) LookupByDate(ctx context.Context, habitID, userID, date string) (*domain.CheckIn, error) {
	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}
	if _, err := ownedHabit(ctx, s.habitRepo, habitID, userID); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByDate(ctx, habitID, date)
	if errors.Is(err, domain.ErrCheckInNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CheckInService) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}
