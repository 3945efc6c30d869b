package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used for check-in dates.
// Zero-padded, so lexicographic order equals chronological order.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("invalid date (must be YYYY-MM-DD)")
	ErrInvalidDateRange = errors.New("start date cannot be after end date")
	ErrInvalidTimeSpent = errors.New("time spent cannot be negative")
)

type CheckIn struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Date      string    `json:"date" db:"date"`
	Completed bool      `json:"completed" db:"completed"`
	TimeSpent *int      `json:"time_spent,omitempty" db:"time_spent"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

func NewCheckIn(userID, habitID, date string, completed bool) *CheckIn {
	return &CheckIn{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		UserID:    userID,
		Date:      date,
		Completed: completed,
		Timestamp: time.Now().UTC(),
	}
}

func (c *CheckIn) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}
	if err := ValidateDate(c.Date); err != nil {
		return err
	}
	if c.TimeSpent != nil && *c.TimeSpent < 0 {
		return ErrInvalidTimeSpent
	}
	return nil
}

// Mark applies the mutable fields of an upsert. Nil optionals keep their value.
func (c *CheckIn) Mark(completed bool, timeSpent *int, notes *string) {
	c.Completed = completed
	if timeSpent != nil {
		c.TimeSpent = timeSpent
	}
	if notes != nil {
		c.Notes = notes
	}
	c.Timestamp = time.Now().UTC()
}

func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func ValidateDateRange(start, end string) error {
	if err := ValidateDate(start); err != nil {
		return err
	}
	if err := ValidateDate(end); err != nil {
		return err
	}
	if start > end {
		return ErrInvalidDateRange
	}
	return nil
}
