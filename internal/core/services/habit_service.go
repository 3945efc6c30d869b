package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// ReminderScheduler arms a single reminder; see reminders.Scheduler.
type ReminderScheduler interface {
	ScheduleReminder(userID, habitName, habitID string, scheduledTime time.Time, minutesBefore int) bool
}

type HabitService struct {
	repo      domain.HabitRepository
	scheduler ReminderScheduler
}

func NewHabitService(repo domain.HabitRepository, scheduler ReminderScheduler) *HabitService {
	return &HabitService{
		repo:      repo,
		scheduler: scheduler,
	}
}

type CreateHabitInput struct {
	UserID                    string
	Name                      string
	Description               string
	Category                  string
	Color                     string
	RepeatDays                []int
	ScheduleTimes             []string
	NotificationMinutesBefore *int
}

// UpdateHabitInput is a partial update: empty strings and nil fields keep the
// stored value.
type UpdateHabitInput struct {
	ID                        string
	UserID                    string
	Name                      string
	Description               string
	Category                  string
	Color                     string
	IsActive                  *bool
	RepeatDays                []int
	ScheduleTimes             []string
	NotificationMinutesBefore *int
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, domain.HabitAttributes{
		Name:                      input.Name,
		Description:               input.Description,
		Category:                  input.Category,
		Color:                     input.Color,
		RepeatDays:                input.RepeatDays,
		ScheduleTimes:             input.ScheduleTimes,
		NotificationMinutesBefore: input.NotificationMinutesBefore,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return ownedHabit(ctx, s.repo, id, userID)
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) ListByCategory(ctx context.Context, userID, category string) ([]*domain.Habit, error) {
	return s.repo.ListByCategory(ctx, userID, category)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := ownedHabit(ctx, s.repo, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	attrs := habit.Attributes()
	attrs.Name = mergeString(input.Name, attrs.Name)
	attrs.Description = mergeString(input.Description, attrs.Description)
	attrs.Category = mergeString(input.Category, attrs.Category)
	attrs.Color = mergeString(input.Color, attrs.Color)
	if input.RepeatDays != nil {
		attrs.RepeatDays = input.RepeatDays
	}
	if input.ScheduleTimes != nil {
		attrs.ScheduleTimes = input.ScheduleTimes
	}
	if input.NotificationMinutesBefore != nil {
		attrs.NotificationMinutesBefore = input.NotificationMinutesBefore
	}

	if err := habit.Update(attrs); err != nil {
		return nil, err
	}
	if input.IsActive != nil {
		habit.SetActive(*input.IsActive)
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Delete removes the habit only. Its check-ins and annotations stay behind.
func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := ownedHabit(ctx, s.repo, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// ScheduleReminders arms a reminder for every schedule time of the habit on
// the calendar day of `day`, and returns how many were armed. Inactive habits
// and days outside the repeat pattern arm nothing.
func (s *HabitService) ScheduleReminders(ctx context.Context, habitID, userID string, day time.Time) (int, error) {
	habit, err := ownedHabit(ctx, s.repo, habitID, userID)
	if err != nil {
		return 0, err
	}

	if !habit.IsActive || !habit.RecursOn(day.Weekday()) {
		return 0, nil
	}

	armed := 0
	for _, at := range habit.ScheduledAt(day) {
		if s.scheduler.ScheduleReminder(userID, habit.Name, habit.ID, at, habit.ReminderOffset()) {
			armed++
		}
	}
	return armed, nil
}
