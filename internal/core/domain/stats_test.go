package domain_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ci(date string, completed bool) *domain.CheckIn {
	return &domain.CheckIn{HabitID: "h1", UserID: "u1", Date: date, Completed: completed}
}

func TestComputeStats_Scenarios(t *testing.T) {
	t.Run("Most recent record incomplete", func(t *testing.T) {
		stats := domain.ComputeStats("h1", []*domain.CheckIn{
			ci("2024-01-01", true),
			ci("2024-01-02", true),
			ci("2024-01-03", false),
		})

		assert.Equal(t, "h1", stats.HabitID)
		assert.Equal(t, 2, stats.TotalDaysCompleted)
		assert.Equal(t, 1, stats.TotalDaysIncomplete)
		assert.Equal(t, 0, stats.StreakDays)
		assert.Equal(t, 67, stats.CompletionRate)
		require.NotNil(t, stats.LastCompletedDate)
		assert.Equal(t, "2024-01-02", *stats.LastCompletedDate)
	})

	t.Run("Unsorted input is ordered before counting the streak", func(t *testing.T) {
		stats := domain.ComputeStats("h1", []*domain.CheckIn{
			ci("2024-01-03", true),
			ci("2024-01-02", true),
			ci("2024-01-01", false),
		})

		assert.Equal(t, 2, stats.StreakDays)
		assert.Equal(t, "2024-01-03", *stats.LastCompletedDate)
	})

	t.Run("Empty history", func(t *testing.T) {
		stats := domain.ComputeStats("h1", nil)

		assert.Equal(t, domain.HabitStats{HabitID: "h1"}, stats)
		assert.Nil(t, stats.LastCompletedDate)
	})

	t.Run("Calendar gaps do not break the streak", func(t *testing.T) {
		stats := domain.ComputeStats("h1", []*domain.CheckIn{
			ci("2024-01-01", true),
			ci("2024-01-03", true),
		})

		assert.Equal(t, 2, stats.StreakDays)
		assert.Equal(t, 100, stats.CompletionRate)
	})

	t.Run("Only incomplete records", func(t *testing.T) {
		stats := domain.ComputeStats("h1", []*domain.CheckIn{
			ci("2024-02-01", false),
			ci("2024-02-02", false),
		})

		assert.Equal(t, 0, stats.StreakDays)
		assert.Equal(t, 0, stats.CompletionRate)
		assert.Nil(t, stats.LastCompletedDate)
	})

	t.Run("Half rounds away from zero", func(t *testing.T) {
		// 1 of 8 is 12.5%
		list := []*domain.CheckIn{ci("2024-03-01", true)}
		for i := 2; i <= 8; i++ {
			list = append(list, ci(fmt.Sprintf("2024-03-%02d", i), false))
		}
		assert.Equal(t, 13, domain.ComputeStats("h1", list).CompletionRate)
	})
}

func TestComputeStats_DoesNotMutateInput(t *testing.T) {
	input := []*domain.CheckIn{
		ci("2024-01-01", true),
		ci("2024-01-03", false),
		ci("2024-01-02", true),
	}
	order := []string{input[0].Date, input[1].Date, input[2].Date}

	first := domain.ComputeStats("h1", input)
	second := domain.ComputeStats("h1", input)

	assert.Equal(t, first, second)
	assert.Equal(t, order, []string{input[0].Date, input[1].Date, input[2].Date})
}

func TestComputeStats_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rng.Intn(30)
		list := make([]*domain.CheckIn, 0, n)
		for i := 0; i < n; i++ {
			list = append(list, ci(fmt.Sprintf("2024-%02d-%02d", 1+i/28, 1+i%28), rng.Intn(2) == 0))
		}
		rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })

		stats := domain.ComputeStats("h1", list)

		assert.Equal(t, len(list), stats.TotalDaysCompleted+stats.TotalDaysIncomplete)
		assert.GreaterOrEqual(t, stats.CompletionRate, 0)
		assert.LessOrEqual(t, stats.CompletionRate, 100)
		assert.LessOrEqual(t, stats.StreakDays, stats.TotalDaysCompleted)
		assert.LessOrEqual(t, stats.StreakDays, len(list))

		if n == 0 {
			assert.Equal(t, 0, stats.CompletionRate)
			assert.Equal(t, 0, stats.StreakDays)
			continue
		}

		latest := list[0]
		for _, c := range list {
			if c.Date > latest.Date {
				latest = c
			}
		}
		if !latest.Completed {
			assert.Equal(t, 0, stats.StreakDays)
		}
	}
}
