package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCheckIn(t *testing.T) {
	c := NewCheckIn("u1", "h1", "2024-05-01", true)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "h1", c.HabitID)
	assert.Equal(t, "u1", c.UserID)
	assert.True(t, c.Completed)
	assert.Nil(t, c.TimeSpent)
	assert.Nil(t, c.Notes)
	assert.WithinDuration(t, time.Now().UTC(), c.Timestamp, 2*time.Second)
}

func TestCheckIn_Validate(t *testing.T) {
	negative := -5

	tests := []struct {
		name     string
		checkIn  *CheckIn
		errorMsg string
	}{
		{"Valid", &CheckIn{HabitID: "h", UserID: "u", Date: "2024-01-31"}, ""},
		{"Missing HabitID", &CheckIn{HabitID: " ", UserID: "u", Date: "2024-01-31"}, "habit_id is required"},
		{"Missing UserID", &CheckIn{HabitID: "h", UserID: "", Date: "2024-01-31"}, "user_id is required"},
		{"Not a date", &CheckIn{HabitID: "h", UserID: "u", Date: "yesterday"}, ErrInvalidDate.Error()},
		{"Impossible date", &CheckIn{HabitID: "h", UserID: "u", Date: "2024-02-30"}, ErrInvalidDate.Error()},
		{"Unpadded date", &CheckIn{HabitID: "h", UserID: "u", Date: "2024-1-5"}, ErrInvalidDate.Error()},
		{"Negative time spent", &CheckIn{HabitID: "h", UserID: "u", Date: "2024-01-31", TimeSpent: &negative}, ErrInvalidTimeSpent.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.checkIn.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestCheckIn_Mark(t *testing.T) {
	spent := 25
	note := "felt good"
	c := NewCheckIn("u1", "h1", "2024-05-01", false)
	c.TimeSpent = &spent
	c.Notes = &note
	before := c.Timestamp

	time.Sleep(time.Millisecond)
	c.Mark(true, nil, nil)

	assert.True(t, c.Completed)
	assert.Equal(t, 25, *c.TimeSpent, "nil optionals keep the stored value")
	assert.Equal(t, "felt good", *c.Notes)
	assert.True(t, c.Timestamp.After(before))
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, ValidateDateRange("2024-01-01", "2024-01-01"))
	assert.NoError(t, ValidateDateRange("2023-12-31", "2024-01-01"))
	assert.ErrorIs(t, ValidateDateRange("2024-01-02", "2024-01-01"), ErrInvalidDateRange)
	assert.ErrorIs(t, ValidateDateRange("2024-13-01", "2024-12-01"), ErrInvalidDate)
}
