package domain

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty      = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong    = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong    = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID  = errors.New("invalid user id")
	ErrInvalidColor        = errors.New("invalid color format (must be #RRGGBB)")
	ErrInvalidRepeatDays   = errors.New("invalid repeat days (must be 0-6)")
	ErrInvalidScheduleTime = errors.New("invalid schedule time (must be HH:MM 24h)")
	ErrInvalidNotifyOffset = errors.New("notification minutes before cannot be negative")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
var scheduleTimeRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	MaxNameLen = 100
	MaxDescLen = 500
)

type Habit struct {
	ID                        string    `json:"id" db:"id"`
	UserID                    string    `json:"user_id" db:"user_id"`
	Name                      string    `json:"name" db:"name"`
	Description               string    `json:"description" db:"description"`
	Category                  string    `json:"category" db:"category"`
	IsActive                  bool      `json:"is_active" db:"is_active"`
	Color                     string    `json:"color" db:"color"`
	RepeatDays                []int     `json:"repeat_days" db:"-"`
	ScheduleTimes             []string  `json:"schedule_times" db:"-"`
	NotificationMinutesBefore *int      `json:"notification_minutes_before,omitempty" db:"notification_minutes_before"`
	CreatedAt                 time.Time `json:"created_at" db:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at" db:"updated_at"`
}

// HabitAttributes carries the user-editable fields of a habit.
type HabitAttributes struct {
	Name                      string
	Description               string
	Category                  string
	Color                     string
	RepeatDays                []int
	ScheduleTimes             []string
	NotificationMinutesBefore *int
}

func normalizeRepeatDays(days []int) []int {
	if len(days) == 0 {
		return []int{}
	}

	uniqueMap := make(map[int]bool)
	uniqueDays := make([]int, 0, len(days))
	for _, d := range days {
		if !uniqueMap[d] {
			uniqueMap[d] = true
			uniqueDays = append(uniqueDays, d)
		}
	}

	sort.Ints(uniqueDays)
	return uniqueDays
}

// normalizeScheduleTimes keeps the caller's order and drops repeats.
func normalizeScheduleTimes(times []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(times))
	for _, t := range times {
		t = strings.TrimSpace(t)
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (a HabitAttributes) validate() error {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return ErrHabitNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrHabitNameTooLong
	}
	if len(strings.TrimSpace(a.Description)) > MaxDescLen {
		return ErrHabitDescTooLong
	}
	if a.Color != "" && !colorRegex.MatchString(a.Color) {
		return ErrInvalidColor
	}
	for _, day := range a.RepeatDays {
		if day < 0 || day > 6 {
			return ErrInvalidRepeatDays
		}
	}
	for _, t := range a.ScheduleTimes {
		if !scheduleTimeRegex.MatchString(strings.TrimSpace(t)) {
			return ErrInvalidScheduleTime
		}
	}
	if a.NotificationMinutesBefore != nil && *a.NotificationMinutesBefore < 0 {
		return ErrInvalidNotifyOffset
	}
	return nil
}

func NewHabit(userID string, attrs HabitAttributes) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}
	if err := attrs.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	h := &Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	h.apply(attrs)
	return h, nil
}

// Update replaces the editable fields and bumps UpdatedAt. CreatedAt is never touched.
func (h *Habit) Update(attrs HabitAttributes) error {
	if err := attrs.validate(); err != nil {
		return err
	}
	h.apply(attrs)
	h.touch()
	return nil
}

func (h *Habit) SetActive(active bool) {
	if h.IsActive == active {
		return
	}
	h.IsActive = active
	h.touch()
}

func (h *Habit) apply(attrs HabitAttributes) {
	h.Name = strings.TrimSpace(attrs.Name)
	h.Description = strings.TrimSpace(attrs.Description)
	h.Category = strings.TrimSpace(attrs.Category)
	h.Color = attrs.Color
	h.RepeatDays = normalizeRepeatDays(attrs.RepeatDays)
	h.ScheduleTimes = normalizeScheduleTimes(attrs.ScheduleTimes)
	h.NotificationMinutesBefore = attrs.NotificationMinutesBefore
}

func (h *Habit) touch() {
	now := time.Now().UTC()
	if now.Before(h.CreatedAt) {
		now = h.CreatedAt
	}
	h.UpdatedAt = now
}

// Attributes returns the editable fields, used to merge partial updates.
func (h *Habit) Attributes() HabitAttributes {
	return HabitAttributes{
		Name:                      h.Name,
		Description:               h.Description,
		Category:                  h.Category,
		Color:                     h.Color,
		RepeatDays:                h.RepeatDays,
		ScheduleTimes:             h.ScheduleTimes,
		NotificationMinutesBefore: h.NotificationMinutesBefore,
	}
}

// RecursOn reports whether the habit is scheduled on the given weekday.
// A habit without repeat days recurs every day.
func (h *Habit) RecursOn(day time.Weekday) bool {
	if len(h.RepeatDays) == 0 {
		return true
	}
	for _, d := range h.RepeatDays {
		if d == int(day) {
			return true
		}
	}
	return false
}

// ReminderOffset returns NotificationMinutesBefore, or 0 when unset.
func (h *Habit) ReminderOffset() int {
	if h.NotificationMinutesBefore == nil {
		return 0
	}
	return *h.NotificationMinutesBefore
}

// ScheduledAt resolves each schedule time against the calendar day of `day`.
func (h *Habit) ScheduledAt(day time.Time) []time.Time {
	out := make([]time.Time, 0, len(h.ScheduleTimes))
	for _, st := range h.ScheduleTimes {
		parsed, err := time.Parse("15:04", st)
		if err != nil {
			continue
		}
		out = append(out, time.Date(day.Year(), day.Month(), day.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, day.Location()))
	}
	return out
}
