package domain

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tablebistro/tablebistro/internal/shared"
)

const maxProductNameLength = 200

type ProductID uuid.UUID

func NewProductID() ProductID { return ProductID(uuid.New()) }

func ParseProductID(s string) (ProductID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ProductID{}, shared.Validationf("invalid product id %q", s)
	}
	return ProductID(u), nil
}

func (id ProductID) String() string { return uuid.UUID(id).String() }

// Product is a menu item. Orders snapshot its name and price at add-time, so
// later catalog edits never rewrite order history.
type Product struct {
	id          ProductID
	name        string
	description string
	price       shared.Price
	categoryID  CategoryID
	allergens   shared.Allergens
	available   bool
}

func NewProduct(name, description string, price shared.Price, categoryID CategoryID, allergens shared.Allergens) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	return &Product{
		id:          NewProductID(),
		name:        name,
		description: description,
		price:       price,
		categoryID:  categoryID,
		allergens:   allergens,
		available:   true,
	}, nil
}

// RestoreProduct rebuilds a product from persisted state.
func RestoreProduct(id ProductID, name, description string, price shared.Price, categoryID CategoryID, allergens shared.Allergens, available bool) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		categoryID:  categoryID,
		allergens:   allergens,
		available:   available,
	}
}

func (p *Product) ID() ProductID { return p.id }

func (p *Product) Name() string { return p.name }

func (p *Product) Description() string { return p.description }

func (p *Product) Price() shared.Price { return p.price }

func (p *Product) CategoryID() CategoryID { return p.categoryID }

func (p *Product) Allergens() shared.Allergens { return p.allergens }

func (p *Product) IsAvailable() bool { return p.available }

func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

func (p *Product) ChangePrice(price shared.Price) {
	p.price = price
}

func (p *Product) MarkAvailable()   { p.available = true }
func (p *Product) MarkUnavailable() { p.available = false }

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.Validationf("product name is required")
	}
	if len(name) > maxProductNameLength {
		return shared.Validationf("product name cannot exceed %d characters, got %d", maxProductNameLength, len(name))
	}
	return nil
}
