package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCheckInNotFound  = errors.New("check-in not found")
	ErrCheckInConflict  = errors.New("check-in already exists for this habit and date")
	ErrNoteNotFound     = errors.New("note not found")
	ErrSessionNotFound  = errors.New("pomodoro session not found")
	ErrUnauthorized     = errors.New("unauthorized access")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits owned by a user, oldest first.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// ListByCategory retrieves the habits of a user in one category, newest first.
	ListByCategory(ctx context.Context, userID, category string) ([]*Habit, error)

	// Update modifies the state of an existing habit.
	Update(ctx context.Context, habit *Habit) error

	// Delete removes a habit. Check-ins, notes and sessions are left in place.
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	// ListByUserID returns the categories of a user ordered by creation, oldest first.
	ListByUserID(ctx context.Context, userID string) ([]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}

type CheckInRepository interface {
	// Create inserts a new record. Implementations must reject a second record
	// for the same (habit, date) with ErrCheckInConflict.
	Create(ctx context.Context, checkIn *CheckIn) error

	// Update overwrites the mutable fields of an existing record.
	Update(ctx context.Context, checkIn *CheckIn) error

	GetByID(ctx context.Context, id string) (*CheckIn, error)

	// FindByDate returns the record of a habit for one day, or ErrCheckInNotFound.
	FindByDate(ctx context.Context, habitID, date string) (*CheckIn, error)

	// ListByHabitID returns every record of a habit. Order is unspecified.
	ListByHabitID(ctx context.Context, habitID string) ([]*CheckIn, error)

	// ListInRange returns the records with start <= date <= end, ascending by date.
	ListInRange(ctx context.Context, habitID, start, end string) ([]*CheckIn, error)

	// Delete removes a record owned by userID.
	Delete(ctx context.Context, id string, userID string) error
}

type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	GetByID(ctx context.Context, id string) (*Note, error)
	// ListByHabitID returns notes newest first.
	ListByHabitID(ctx context.Context, habitID string) ([]*Note, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id string) error
}

type PomodoroRepository interface {
	Create(ctx context.Context, session *PomodoroSession) error
	GetByID(ctx context.Context, id string) (*PomodoroSession, error)
	// ListByHabitID returns sessions ordered by start, newest first.
	ListByHabitID(ctx context.Context, habitID string) ([]*PomodoroSession, error)
	Update(ctx context.Context, session *PomodoroSession) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
