package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoteContentEmpty    = errors.New("note content cannot be empty")
	ErrInvalidDuration     = errors.New("session duration must be positive")
	ErrInvalidPomodoros    = errors.New("completed pomodoros cannot be negative")
	ErrSessionAlreadyEnded = errors.New("pomodoro session already ended")
)

// Note is a free-form annotation attached to a habit. The same shape backs
// habit notes and distraction notes; they live in separate collections.
type Note struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type NoteKind string

const (
	NoteKindHabit       NoteKind = "habit"
	NoteKindDistraction NoteKind = "distraction"
)

func NewNote(userID, habitID, content string) (*Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrNoteContentEmpty
	}
	return &Note{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (n *Note) SetContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrNoteContentEmpty
	}
	n.Content = content
	return nil
}

type PomodoroSession struct {
	ID                 string     `json:"id" db:"id"`
	HabitID            string     `json:"habit_id" db:"habit_id"`
	UserID             string     `json:"user_id" db:"user_id"`
	Duration           int        `json:"duration" db:"duration"`
	CompletedPomodoros int        `json:"completed_pomodoros" db:"completed_pomodoros"`
	StartedAt          time.Time  `json:"started_at" db:"started_at"`
	EndedAt            *time.Time `json:"ended_at,omitempty" db:"ended_at"`
}

func NewPomodoroSession(userID, habitID string, duration, completed int) (*PomodoroSession, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if completed < 0 {
		return nil, ErrInvalidPomodoros
	}
	return &PomodoroSession{
		ID:                 uuid.NewString(),
		HabitID:            habitID,
		UserID:             userID,
		Duration:           duration,
		CompletedPomodoros: completed,
		StartedAt:          time.Now().UTC(),
	}, nil
}

func (s *PomodoroSession) End() error {
	if s.EndedAt != nil {
		return ErrSessionAlreadyEnded
	}
	now := time.Now().UTC()
	s.EndedAt = &now
	return nil
}
