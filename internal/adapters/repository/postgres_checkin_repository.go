package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.CheckInRepository = (*PostgresCheckInRepository)(nil)

type PostgresCheckInRepository struct {
	db *sqlx.DB
}

func NewPostgresCheckInRepository(db *sqlx.DB) *PostgresCheckInRepository {
	return &PostgresCheckInRepository{db: db}
}

const checkInColumns = `id, habit_id, user_id, date, completed, time_spent, notes, timestamp`

func (r *PostgresCheckInRepository) Create(ctx context.Context, c *domain.CheckIn) error {
	query := `
		INSERT INTO check_ins (
			id, habit_id, user_id, date, completed, time_spent, notes, timestamp
		) VALUES (
			:id, :habit_id, :user_id, :date, :completed, :time_spent, :notes, NOW()
		)
		RETURNING timestamp`

	rows, err := r.db.NamedQueryContext(ctx, query, c)
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return domain.ErrCheckInConflict
		}
		return fmt.Errorf("failed to insert check-in: %w", mapPgError(err))
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&c.Timestamp); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *PostgresCheckInRepository) Update(ctx context.Context, c *domain.CheckIn) error {
	query := `
		UPDATE check_ins
		SET completed = $1,
		    time_spent = $2,
		    notes = $3,
		    timestamp = NOW()
		WHERE id = $4
		RETURNING timestamp`

	err := r.db.QueryRowxContext(ctx, query, c.Completed, c.TimeSpent, c.Notes, c.ID).Scan(&c.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCheckInNotFound
		}
		return fmt.Errorf("update check-in failed: %w", err)
	}
	return nil
}

func (r *PostgresCheckInRepository) GetByID(ctx context.Context, id string) (*domain.CheckIn, error) {
	var c domain.CheckIn
	err := r.db.GetContext(ctx, &c, `SELECT `+checkInColumns+` FROM check_ins WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCheckInRepository) FindByDate(ctx context.Context, habitID, date string) (*domain.CheckIn, error) {
	var c domain.CheckIn
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE habit_id = $1 AND date = $2`
	err := r.db.GetContext(ctx, &c, query, habitID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCheckInRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.CheckIn, error) {
	list := []*domain.CheckIn{}
	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE habit_id = $1`
	if err := r.db.SelectContext(ctx, &list, query, habitID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresCheckInRepository) ListInRange(ctx context.Context, habitID, start, end string) ([]*domain.CheckIn, error) {
	list := []*domain.CheckIn{}
	query := `
		SELECT ` + checkInColumns + ` FROM check_ins
		WHERE habit_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC`
	if err := r.db.SelectContext(ctx, &list, query, habitID, start, end); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresCheckInRepository) Delete(ctx context.Context, id string, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM check_ins WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCheckInNotFound
	}
	return nil
}
