package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
)

type categoryRecord struct {
	id          domain.CategoryID
	name        string
	description string
}

type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[domain.CategoryID]categoryRecord
	order      []domain.CategoryID // insertion order, menus are curated
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[domain.CategoryID]categoryRecord)}
}

func (r *CategoryRepository) GetByID(_ context.Context, id domain.CategoryID) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.categories[id]
	if !ok {
		return nil, shared.NotFoundf("category %s not found", id)
	}
	return domain.RestoreCategory(rec.id, rec.name, rec.description), nil
}

func (r *CategoryRepository) GetAll(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Category, 0, len(r.order))
	for _, id := range r.order {
		rec := r.categories[id]
		out = append(out, domain.RestoreCategory(rec.id, rec.name, rec.description))
	}
	return out, nil
}

func (r *CategoryRepository) Save(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID()]; !ok {
		r.order = append(r.order, category.ID())
	}
	r.categories[category.ID()] = categoryRecord{
		id:          category.ID(),
		name:        category.Name(),
		description: category.Description(),
	}
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id domain.CategoryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return shared.NotFoundf("category %s not found", id)
	}
	delete(r.categories, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type productRecord struct {
	id          domain.ProductID
	name        string
	description string
	price       shared.Price
	categoryID  domain.CategoryID
	allergens   shared.Allergens
	available   bool
}

type ProductRepository struct {
	mu       sync.RWMutex
	products map[domain.ProductID]productRecord
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[domain.ProductID]productRecord)}
}

func (r *ProductRepository) GetByID(_ context.Context, id domain.ProductID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.products[id]
	if !ok {
		return nil, shared.NotFoundf("product %s not found", id)
	}
	return restoreProduct(rec), nil
}

func (r *ProductRepository) GetAll(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Product, 0, len(r.products))
	for _, rec := range r.products {
		out = append(out, restoreProduct(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (r *ProductRepository) GetByCategory(_ context.Context, categoryID domain.CategoryID) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Product
	for _, rec := range r.products {
		if rec.categoryID == categoryID {
			out = append(out, restoreProduct(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (r *ProductRepository) Save(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID()] = productRecord{
		id:          product.ID(),
		name:        product.Name(),
		description: product.Description(),
		price:       product.Price(),
		categoryID:  product.CategoryID(),
		allergens:   product.Allergens(),
		available:   product.IsAvailable(),
	}
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id domain.ProductID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return shared.NotFoundf("product %s not found", id)
	}
	delete(r.products, id)
	return nil
}

func restoreProduct(rec productRecord) *domain.Product {
	return domain.RestoreProduct(rec.id, rec.name, rec.description, rec.price, rec.categoryID, rec.allergens, rec.available)
}
