package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCategoryNameEmpty   = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong = errors.New("category name is too long (max 50 chars)")
)

const MaxCategoryNameLen = 50

type Category struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Icon      string    `json:"icon" db:"icon"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func validateCategory(name, color string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrCategoryNameEmpty
	}
	if len(name) > MaxCategoryNameLen {
		return "", ErrCategoryNameTooLong
	}
	if color != "" && !colorRegex.MatchString(color) {
		return "", ErrInvalidColor
	}
	return name, nil
}

func NewCategory(userID, name, icon, color string) (*Category, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}
	cleanName, err := validateCategory(name, color)
	if err != nil {
		return nil, err
	}
	return &Category{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      cleanName,
		Icon:      strings.TrimSpace(icon),
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (c *Category) Update(name, icon, color string) error {
	cleanName, err := validateCategory(name, color)
	if err != nil {
		return err
	}
	c.Name = cleanName
	c.Icon = strings.TrimSpace(icon)
	c.Color = color
	return nil
}
