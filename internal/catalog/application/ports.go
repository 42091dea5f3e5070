package application

import (
	"context"

	"github.com/tablebistro/tablebistro/internal/catalog/domain"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Save(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id domain.CategoryID) error
}

type ProductRepository interface {
	GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByCategory(ctx context.Context, categoryID domain.CategoryID) ([]*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id domain.ProductID) error
}
