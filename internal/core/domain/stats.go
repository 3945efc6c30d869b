package domain

import (
	"math"
	"sort"
)

type HabitStats struct {
	HabitID             string  `json:"habit_id"`
	TotalDaysCompleted  int     `json:"total_days_completed"`
	TotalDaysIncomplete int     `json:"total_days_incomplete"`
	StreakDays          int     `json:"streak_days"`
	CompletionRate      int     `json:"completion_rate"`
	LastCompletedDate   *string `json:"last_completed_date,omitempty"`
}

// ComputeStats derives completion metrics from the full check-in history of a habit.
//
// The streak counts consecutive completed records starting from the most recent
// date, so days without any record do not break it. The input is not modified.
func ComputeStats(habitID string, checkIns []*CheckIn) HabitStats {
	stats := HabitStats{HabitID: habitID}

	sorted := make([]*CheckIn, 0, len(checkIns))
	for _, ci := range checkIns {
		if ci == nil {
			continue
		}
		if ci.Completed {
			stats.TotalDaysCompleted++
		} else {
			stats.TotalDaysIncomplete++
		}
		sorted = append(sorted, ci)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	for _, ci := range sorted {
		if !ci.Completed {
			break
		}
		stats.StreakDays++
	}

	total := stats.TotalDaysCompleted + stats.TotalDaysIncomplete
	if total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.TotalDaysCompleted) / float64(total) * 100))
	}

	for _, ci := range sorted {
		if ci.Completed {
			date := ci.Date
			stats.LastCompletedDate = &date
			break
		}
	}

	return stats
}
