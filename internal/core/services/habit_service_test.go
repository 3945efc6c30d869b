package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

func ptr[T any](v T) *T {
	return &v
}

type armedReminder struct {
	habitID       string
	at            time.Time
	minutesBefore int
}

type fakeScheduler struct {
	armed  []armedReminder
	refuse bool
}

func (f *fakeScheduler) ScheduleReminder(userID, habitName, habitID string, at time.Time, minutesBefore int) bool {
	if f.refuse {
		return false
	}
	f.armed = append(f.armed, armedReminder{habitID: habitID, at: at, minutesBefore: minutesBefore})
	return true
}

func newHabitService() (*services.HabitService, *repository.InMemoryHabitRepository, *fakeScheduler) {
	repo := repository.NewInMemoryHabitRepository()
	sched := &fakeScheduler{}
	return services.NewHabitService(repo, sched), repo, sched
}

func TestHabitService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   services.CreateHabitInput
		wantErr error
	}{
		{"valid", services.CreateHabitInput{UserID: "u1", Name: "Read", RepeatDays: []int{3, 1}}, nil},
		{"missing name", services.CreateHabitInput{UserID: "u1"}, domain.ErrHabitNameEmpty},
		{"missing user", services.CreateHabitInput{Name: "Read"}, domain.ErrHabitInvalidUserID},
		{"bad weekday", services.CreateHabitInput{UserID: "u1", Name: "Read", RepeatDays: []int{7}}, domain.ErrInvalidRepeatDays},
		{"bad time", services.CreateHabitInput{UserID: "u1", Name: "Read", ScheduleTimes: []string{"25:00"}}, domain.ErrInvalidScheduleTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newHabitService()

			h, err := svc.Create(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, h.IsActive)
			assert.Equal(t, h.CreatedAt, h.UpdatedAt)

			stored, err := repo.GetByID(ctx, h.ID)
			require.NoError(t, err)
			assert.Equal(t, []int{1, 3}, stored.RepeatDays)
		})
	}
}

func TestHabitService_UpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newHabitService()

	h, err := svc.Create(ctx, services.CreateHabitInput{
		UserID:        "u1",
		Name:          "Read",
		Description:   "20 pages",
		Color:         "#ABCDEF",
		ScheduleTimes: []string{"08:00"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, services.UpdateHabitInput{
		ID:       h.ID,
		UserID:   "u1",
		Name:     "Read books",
		IsActive: ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Read books", updated.Name)
	assert.Equal(t, "20 pages", updated.Description)
	assert.Equal(t, "#ABCDEF", updated.Color)
	assert.Equal(t, []string{"08:00"}, updated.ScheduleTimes)
	assert.False(t, updated.IsActive)
	assert.Equal(t, h.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestHabitService_Ownership(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newHabitService()

	h, err := svc.Create(ctx, services.CreateHabitInput{UserID: "owner", Name: "Run"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, h.ID, "intruder")
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)

	_, err = svc.Update(ctx, services.UpdateHabitInput{ID: h.ID, UserID: "intruder", Name: "Hacked"})
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, h.ID, "intruder"), domain.ErrHabitNotFound)

	require.NoError(t, svc.Delete(ctx, h.ID, "owner"))
	_, err = svc.GetByID(ctx, h.ID, "owner")
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}

func TestHabitService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newHabitService()

	for _, in := range []services.CreateHabitInput{
		{UserID: "u1", Name: "Run", Category: "health"},
		{UserID: "u1", Name: "Read", Category: "mind"},
		{UserID: "u2", Name: "Swim", Category: "health"},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	list, err := svc.ListByCategory(ctx, "u1", "health")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Run", list[0].Name)
}

func TestHabitService_ScheduleReminders(t *testing.T) {
	ctx := context.Background()
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	svc, _, sched := newHabitService()
	h, err := svc.Create(ctx, services.CreateHabitInput{
		UserID:                    "u1",
		Name:                      "Meditate",
		RepeatDays:                []int{int(time.Monday)},
		ScheduleTimes:             []string{"07:30", "21:00"},
		NotificationMinutesBefore: ptr(10),
	})
	require.NoError(t, err)

	t.Run("Arms every schedule time on a repeat day", func(t *testing.T) {
		n, err := svc.ScheduleReminders(ctx, h.ID, "u1", monday)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.Len(t, sched.armed, 2)
		assert.Equal(t, time.Date(2024, 3, 4, 7, 30, 0, 0, time.UTC), sched.armed[0].at)
		assert.Equal(t, 10, sched.armed[0].minutesBefore)
	})

	t.Run("Nothing outside the repeat pattern", func(t *testing.T) {
		n, err := svc.ScheduleReminders(ctx, h.ID, "u1", tuesday)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Nothing for inactive habits", func(t *testing.T) {
		_, err := svc.Update(ctx, services.UpdateHabitInput{ID: h.ID, UserID: "u1", IsActive: ptr(false)})
		require.NoError(t, err)

		n, err := svc.ScheduleReminders(ctx, h.ID, "u1", monday)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Refused reminders are not counted", func(t *testing.T) {
		_, err := svc.Update(ctx, services.UpdateHabitInput{ID: h.ID, UserID: "u1", IsActive: ptr(true)})
		require.NoError(t, err)
		sched.refuse = true

		n, err := svc.ScheduleReminders(ctx, h.ID, "u1", monday)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("Foreign habit", func(t *testing.T) {
		_, err := svc.ScheduleReminders(ctx, h.ID, "u2", monday)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCategoryService(repository.NewInMemoryCategoryRepository())

	c, err := svc.Create(ctx, "u1", services.CategoryInput{Name: "Health", Icon: "heart", Color: "#00FF00"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u1", services.CategoryInput{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrCategoryNameEmpty)

	updated, err := svc.Update(ctx, c.ID, "u1", services.CategoryInput{Icon: "run", Color: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "Health", updated.Name)
	assert.Equal(t, "run", updated.Icon)

	_, err = svc.Update(ctx, c.ID, "u2", services.CategoryInput{Name: "Mine"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, c.ID, "u1"))
	assert.ErrorIs(t, svc.Delete(ctx, c.ID, "u1"), domain.ErrCategoryNotFound)
}
