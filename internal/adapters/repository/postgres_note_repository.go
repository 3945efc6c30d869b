package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.NoteRepository = (*PostgresNoteRepository)(nil)

// PostgresNoteRepository stores one kind of note; habit notes and distractions
// use the same shape in different tables.
type PostgresNoteRepository struct {
	db    *sqlx.DB
	table string
}

func NewPostgresNoteRepository(db *sqlx.DB, kind domain.NoteKind) *PostgresNoteRepository {
	table := "habit_notes"
	if kind == domain.NoteKindDistraction {
		table = "distractions"
	}
	return &PostgresNoteRepository{db: db, table: table}
}

func (r *PostgresNoteRepository) Create(ctx context.Context, n *domain.Note) error {
	query := `INSERT INTO ` + r.table + ` (id, habit_id, user_id, content, created_at)
		VALUES (:id, :habit_id, :user_id, :content, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	return nil
}

func (r *PostgresNoteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var n domain.Note
	if err := r.db.GetContext(ctx, &n, `SELECT * FROM `+r.table+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *PostgresNoteRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Note, error) {
	list := []*domain.Note{}
	query := `SELECT * FROM ` + r.table + ` WHERE habit_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &list, query, habitID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresNoteRepository) Update(ctx context.Context, n *domain.Note) error {
	res, err := r.db.ExecContext(ctx, `UPDATE `+r.table+` SET content = $1 WHERE id = $2`, n.Content, n.ID)
	if err != nil {
		return err
	}
	return expectOne(res, domain.ErrNoteNotFound)
}

func (r *PostgresNoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, domain.ErrNoteNotFound)
}
