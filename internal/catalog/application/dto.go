package application

import (
	"github.com/shopspring/decimal"

	"github.com/tablebistro/tablebistro/internal/catalog/domain"
)

type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ProductDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	CategoryID  string          `json:"categoryId"`
	Allergens   []string        `json:"allergens"`
	Available   bool            `json:"available"`
}

func toCategoryDTO(c *domain.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID().String(), Name: c.Name(), Description: c.Description()}
}

func toProductDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID().String(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price().Amount(),
		Currency:    p.Price().Currency(),
		CategoryID:  p.CategoryID().String(),
		Allergens:   p.Allergens().List(),
		Available:   p.IsAvailable(),
	}
}
