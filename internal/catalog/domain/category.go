package domain

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tablebistro/tablebistro/internal/shared"
)

const (
	maxCategoryNameLength        = 100
	maxCategoryDescriptionLength = 500
)

type CategoryID uuid.UUID

func NewCategoryID() CategoryID { return CategoryID(uuid.New()) }

func ParseCategoryID(s string) (CategoryID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return CategoryID{}, shared.Validationf("invalid category id %q", s)
	}
	return CategoryID(u), nil
}

func (id CategoryID) String() string { return uuid.UUID(id).String() }

// Category groups menu products.
type Category struct {
	id          CategoryID
	name        string
	description string
}

func NewCategory(name, description string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if len(description) > maxCategoryDescriptionLength {
		return nil, shared.Validationf("category description cannot exceed %d characters", maxCategoryDescriptionLength)
	}
	return &Category{id: NewCategoryID(), name: name, description: description}, nil
}

// RestoreCategory rebuilds a category from persisted state.
func RestoreCategory(id CategoryID, name, description string) *Category {
	return &Category{id: id, name: name, description: description}
}

func (c *Category) ID() CategoryID { return c.id }

func (c *Category) Name() string { return c.name }

func (c *Category) Description() string { return c.description }

func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.name = name
	return nil
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.Validationf("category name is required")
	}
	if len(name) > maxCategoryNameLength {
		return shared.Validationf("category name cannot exceed %d characters, got %d", maxCategoryNameLength, len(name))
	}
	return nil
}
