package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// noteService holds the operations shared by habit notes and distractions.
type noteService struct {
	repo      domain.NoteRepository
	habitRepo domain.HabitRepository
}

func (s *noteService) Create(ctx context.Context, userID, habitID, content string) (*domain.Note, error) {
	if _, err := ownedHabit(ctx, s.habitRepo, habitID, userID); err != nil {
		return nil, err
	}

	note, err := domain.NewNote(userID, habitID, content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// List returns the notes of an owned habit, newest first.
func (s *noteService) List(ctx context.Context, habitID, userID string) ([]*domain.Note, error) {
	if _, err := ownedHabit(ctx, s.habitRepo, habitID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByHabitID(ctx, habitID)
}

func (s *noteService) owned(ctx context.Context, id, userID string) (*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

type NoteService struct {
	noteService
}

func NewNoteService(repo domain.NoteRepository, habitRepo domain.HabitRepository) *NoteService {
	return &NoteService{noteService{repo: repo, habitRepo: habitRepo}}
}

func (s *NoteService) Update(ctx context.Context, id, userID, content string) (*domain.Note, error) {
	note, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := note.SetContent(content); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DistractionService records what pulled the user away from a habit.
// Distractions cannot be edited.
type DistractionService struct {
	noteService
}

func NewDistractionService(repo domain.NoteRepository, habitRepo domain.HabitRepository) *DistractionService {
	return &DistractionService{noteService{repo: repo, habitRepo: habitRepo}}
}

type PomodoroService struct {
	repo      domain.PomodoroRepository
	habitRepo domain.HabitRepository
}

func NewPomodoroService(repo domain.PomodoroRepository, habitRepo domain.HabitRepository) *PomodoroService {
	return &PomodoroService{repo: repo, habitRepo: habitRepo}
}

type StartPomodoroInput struct {
	UserID             string
	HabitID            string
	Duration           int
	CompletedPomodoros int
}

func (s *PomodoroService) Start(ctx context.Context, input StartPomodoroInput) (*domain.PomodoroSession, error) {
	if _, err := ownedHabit(ctx, s.habitRepo, input.HabitID, input.UserID); err != nil {
		return nil, err
	}

	session, err := domain.NewPomodoroSession(input.UserID, input.HabitID, input.Duration, input.CompletedPomodoros)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *PomodoroService) List(ctx context.Context, habitID, userID string) ([]*domain.PomodoroSession, error) {
	if _, err := ownedHabit(ctx, s.habitRepo, habitID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByHabitID(ctx, habitID)
}

// End closes a session. A non-nil completed overrides the pomodoro count.
func (s *PomodoroService) End(ctx context.Context, id, userID string, completed *int) (*domain.PomodoroSession, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	if completed != nil {
		if *completed < 0 {
			return nil, domain.ErrInvalidPomodoros
		}
		session.CompletedPomodoros = *completed
	}
	if err := session.End(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
