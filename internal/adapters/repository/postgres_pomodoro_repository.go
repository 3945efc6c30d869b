package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.PomodoroRepository = (*PostgresPomodoroRepository)(nil)

type PostgresPomodoroRepository struct {
	db *sqlx.DB
}

func NewPostgresPomodoroRepository(db *sqlx.DB) *PostgresPomodoroRepository {
	return &PostgresPomodoroRepository{db: db}
}

func (r *PostgresPomodoroRepository) Create(ctx context.Context, s *domain.PomodoroSession) error {
	query := `
		INSERT INTO pomodoro_sessions (id, habit_id, user_id, duration, completed_pomodoros, started_at, ended_at)
		VALUES (:id, :habit_id, :user_id, :duration, :completed_pomodoros, :started_at, :ended_at)`
	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("failed to insert pomodoro session: %w", err)
	}
	return nil
}

func (r *PostgresPomodoroRepository) GetByID(ctx context.Context, id string) (*domain.PomodoroSession, error) {
	var s domain.PomodoroSession
	if err := r.db.GetContext(ctx, &s, `SELECT * FROM pomodoro_sessions WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresPomodoroRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.PomodoroSession, error) {
	list := []*domain.PomodoroSession{}
	query := `SELECT * FROM pomodoro_sessions WHERE habit_id = $1 ORDER BY started_at DESC`
	if err := r.db.SelectContext(ctx, &list, query, habitID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresPomodoroRepository) Update(ctx context.Context, s *domain.PomodoroSession) error {
	query := `
		UPDATE pomodoro_sessions
		SET completed_pomodoros = :completed_pomodoros, ended_at = :ended_at
		WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		return err
	}
	return expectOne(res, domain.ErrSessionNotFound)
}
