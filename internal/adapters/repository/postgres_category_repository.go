package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.CategoryRepository = (*PostgresCategoryRepository)(nil)

type PostgresCategoryRepository struct {
	db *sqlx.DB
}

func NewPostgresCategoryRepository(db *sqlx.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, icon, color, created_at)
		VALUES (:id, :user_id, :name, :icon, :color, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("failed to insert category: %w", mapPgError(err))
	}
	return nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.GetContext(ctx, &c, `SELECT * FROM categories WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCategoryRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Category, error) {
	list := []*domain.Category{}
	query := `SELECT * FROM categories WHERE user_id = $1 ORDER BY created_at ASC, id ASC`
	if err := r.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE categories SET name = :name, icon = :icon, color = :color WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return err
	}
	return expectOne(res, domain.ErrCategoryNotFound)
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, domain.ErrCategoryNotFound)
}

func expectOne(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
