package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

const habitColumns = `
	id, user_id, name, description, category, is_active, color,
	repeat_days, schedule_times, notification_minutes_before,
	created_at, updated_at`

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresHabitRepository) scanRow(row scannable) (*domain.Habit, error) {
	var h domain.Habit
	var repeatJSON, timesJSON []byte
	var notify sql.NullInt64

	err := row.Scan(
		&h.ID, &h.UserID, &h.Name, &h.Description, &h.Category, &h.IsActive, &h.Color,
		&repeatJSON, &timesJSON, &notify,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.RepeatDays = []int{}
	if len(repeatJSON) > 0 {
		if err := json.Unmarshal(repeatJSON, &h.RepeatDays); err != nil {
			return nil, fmt.Errorf("failed to unmarshal repeat_days: %w", err)
		}
	}
	h.ScheduleTimes = []string{}
	if len(timesJSON) > 0 {
		if err := json.Unmarshal(timesJSON, &h.ScheduleTimes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal schedule_times: %w", err)
		}
	}
	if notify.Valid {
		v := int(notify.Int64)
		h.NotificationMinutesBefore = &v
	}

	return &h, nil
}

func marshalSchedule(h *domain.Habit) ([]byte, []byte, error) {
	repeat := h.RepeatDays
	if repeat == nil {
		repeat = []int{}
	}
	times := h.ScheduleTimes
	if times == nil {
		times = []string{}
	}

	repeatJSON, err := json.Marshal(repeat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal repeat_days: %w", err)
	}
	timesJSON, err := json.Marshal(times)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal schedule_times: %w", err)
	}
	return repeatJSON, timesJSON, nil
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	repeatJSON, timesJSON, err := marshalSchedule(h)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO habits (` + habitColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
        RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		h.ID, h.UserID, h.Name, h.Description, h.Category, h.IsActive, h.Color,
		repeatJSON, timesJSON, h.NotificationMinutesBefore,
	).Scan(&h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", mapPgError(err))
	}

	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	h, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1
        ORDER BY created_at ASC, id ASC`

	return r.list(ctx, query, userID)
}

func (r *PostgresHabitRepository) ListByCategory(ctx context.Context, userID, category string) ([]*domain.Habit, error) {
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1 AND category = $2
        ORDER BY created_at DESC, id ASC`

	return r.list(ctx, query, userID, category)
}

func (r *PostgresHabitRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Habit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	habits := []*domain.Habit{}
	for rows.Next() {
		h, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// Update stamps updated_at with the database clock, never earlier than created_at.
func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	repeatJSON, timesJSON, err := marshalSchedule(h)
	if err != nil {
		return err
	}

	query := `
        UPDATE habits SET
            name=$1, description=$2, category=$3, is_active=$4, color=$5,
            repeat_days=$6, schedule_times=$7, notification_minutes_before=$8,
            updated_at=GREATEST(NOW(), created_at)
        WHERE id=$9
        RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query,
		h.Name, h.Description, h.Category, h.IsActive, h.Color,
		repeatJSON, timesJSON, h.NotificationMinutesBefore,
		h.ID,
	).Scan(&h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}
