package models

import (
	"strings"
	"time"
)

// Category groups tasks. Names are unique ignoring case.
type Category struct {
	ID          int       `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Order       int       `json:"order" yaml:"order"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// NewCategory builds an unsaved category. The storage layer assigns the ID.
func NewCategory(name, description string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &Category{
		Name:        name,
		Description: description,
		CreatedAt:   Now(),
	}, nil
}

// GetID returns the category ID (used by the CLI quiet output)
func (c *Category) GetID() int {
	return c.ID
}

// UpdateName renames the category, rejecting blank values
func (c *Category) UpdateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

func (c *Category) SetOrder(order int) {
	c.Order = order
}

// SameName reports whether name matches the category name ignoring case
func (c *Category) SameName(name string) bool {
	return strings.ToLower(c.Name) == strings.ToLower(name)
}
