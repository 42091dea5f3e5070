package application

import (
	"context"
	"errors"

	"github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
)

// Service exposes the menu to the customer-facing UI.
type Service struct {
	categories CategoryRepository
	products   ProductRepository
}

func NewService(categories CategoryRepository, products ProductRepository) *Service {
	return &Service{categories: categories, products: products}
}

func (s *Service) Categories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryDTO(c))
	}
	return out, nil
}

// ProductsByCategory lists only available products; items taken off the menu
// stay persisted but are hidden from customers.
func (s *Service) ProductsByCategory(ctx context.Context, categoryID string) ([]ProductDTO, error) {
	id, err := domain.ParseCategoryID(categoryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFoundf("category %s not found", categoryID)
		}
		return nil, err
	}
	products, err := s.products.GetByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		if !p.IsAvailable() {
			continue
		}
		out = append(out, toProductDTO(p))
	}
	return out, nil
}
