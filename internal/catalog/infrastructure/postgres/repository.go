package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
)

type CategoryRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewCategoryRepository(log *slog.Logger, pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{log: log, pool: pool}
}

func (r *CategoryRepository) GetByID(ctx context.Context, id domain.CategoryID) (*domain.Category, error) {
	var (
		name        string
		description string
	)
	err := r.pool.QueryRow(ctx, `SELECT name, description FROM categories WHERE id=$1`, uuid.UUID(id)).
		Scan(&name, &description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFoundf("category %s not found", id)
		}
		return nil, err
	}
	return domain.RestoreCategory(id, name, description), nil
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Category
	for rows.Next() {
		var (
			id          uuid.UUID
			name        string
			description string
		)
		if err := rows.Scan(&id, &name, &description); err != nil {
			return nil, err
		}
		out = append(out, domain.RestoreCategory(domain.CategoryID(id), name, description))
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Save(ctx context.Context, category *domain.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, description)
		VALUES ($1,$2,$3)
		ON CONFLICT (id) DO UPDATE SET name=$2, description=$3`,
		uuid.UUID(category.ID()), category.Name(), category.Description())
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id domain.CategoryID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, uuid.UUID(id))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return shared.NotFoundf("category %s not found", id)
	}
	return nil
}

type ProductRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewProductRepository(log *slog.Logger, pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{log: log, pool: pool}
}

const productColumns = `id, name, description, price_amount, price_currency, category_id, allergens, available`

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, uuid.UUID(id))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFoundf("product %s not found", id)
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name`)
}

func (r *ProductRepository) GetByCategory(ctx context.Context, categoryID domain.CategoryID) ([]*domain.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE category_id=$1 ORDER BY name`, uuid.UUID(categoryID))
}

func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, description, price_amount, price_currency, category_id, allergens, available)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			name=$2, description=$3, price_amount=$4, price_currency=$5, category_id=$6, allergens=$7, available=$8`,
		uuid.UUID(product.ID()), product.Name(), product.Description(),
		product.Price().Amount(), product.Price().Currency(),
		uuid.UUID(product.CategoryID()), product.Allergens().List(), product.IsAvailable())
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ProductID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, uuid.UUID(id))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return shared.NotFoundf("product %s not found", id)
	}
	return nil
}

func (r *ProductRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		id          uuid.UUID
		name        string
		description string
		amount      decimal.Decimal
		currency    string
		categoryID  uuid.UUID
		allergens   []string
		available   bool
	)
	if err := row.Scan(&id, &name, &description, &amount, &currency, &categoryID, &allergens, &available); err != nil {
		return nil, err
	}
	price, err := shared.NewPrice(amount, currency)
	if err != nil {
		return nil, err
	}
	return domain.RestoreProduct(
		domain.ProductID(id), name, description, price,
		domain.CategoryID(categoryID), shared.NewAllergens(allergens), available), nil
}
