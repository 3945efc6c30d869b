package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

type CategoryInput struct {
	Name  string
	Icon  string
	Color string
}

func (s *CategoryService) Create(ctx context.Context, userID string, input CategoryInput) (*domain.Category, error) {
	c, err := domain.NewCategory(userID, input.Name, input.Icon, input.Color)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *CategoryService) owned(ctx context.Context, id, userID string) (*domain.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id, userID string, input CategoryInput) (*domain.Category, error) {
	c, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	name := mergeString(input.Name, c.Name)
	if err := c.Update(name, input.Icon, input.Color); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete leaves habits that point at the category untouched.
func (s *CategoryService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
