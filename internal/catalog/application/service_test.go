package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebistro/tablebistro/internal/catalog/application"
	"github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/catalog/infrastructure/memory"
	"github.com/tablebistro/tablebistro/internal/shared"
)

type fixture struct {
	svc        *application.Service
	categories *memory.CategoryRepository
	products   *memory.ProductRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		categories: memory.NewCategoryRepository(),
		products:   memory.NewProductRepository(),
	}
	f.svc = application.NewService(f.categories, f.products)
	return f
}

func (f *fixture) addCategory(t *testing.T, name, description string) *domain.Category {
	t.Helper()
	category, err := domain.NewCategory(name, description)
	require.NoError(t, err)
	require.NoError(t, f.categories.Save(context.Background(), category))
	return category
}

func (f *fixture) addProduct(t *testing.T, name, price string, categoryID domain.CategoryID, allergens ...string) *domain.Product {
	t.Helper()
	p, err := shared.NewPriceFromString(price, "EUR")
	require.NoError(t, err)
	product, err := domain.NewProduct(name, "", p, categoryID, shared.NewAllergens(allergens))
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), product))
	return product
}

func TestCategoriesPreservesInsertionOrder(t *testing.T) {
	f := newFixture(t)
	f.addCategory(t, "Bebidas", "Vinos de la casa y bebidas")
	f.addCategory(t, "Entrantes", "Para abrir boca")
	f.addCategory(t, "Postres", "Postres caseros")

	categories, err := f.svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Bebidas", categories[0].Name)
	assert.Equal(t, "Entrantes", categories[1].Name)
	assert.Equal(t, "Postres", categories[2].Name)
}

func TestProductsByCategoryHidesUnavailable(t *testing.T) {
	f := newFixture(t)
	category := f.addCategory(t, "Pescados", "Pescado fresco del día")
	f.addProduct(t, "Cherne a la Plancha", "13.00", category.ID(), "pescado")
	hidden := f.addProduct(t, "Vieja Saneada", "12.00", category.ID(), "pescado")
	hidden.MarkUnavailable()
	require.NoError(t, f.products.Save(context.Background(), hidden))

	products, err := f.svc.ProductsByCategory(context.Background(), category.ID().String())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Cherne a la Plancha", products[0].Name)
	assert.Equal(t, []string{"Pescado"}, products[0].Allergens)
	assert.Equal(t, "EUR", products[0].Currency)
}

func TestProductsByCategoryUnknownCategory(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ProductsByCategory(context.Background(), domain.NewCategoryID().String())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductsByCategoryRejectsBadID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ProductsByCategory(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
}
