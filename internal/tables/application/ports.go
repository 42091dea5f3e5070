package application

import (
	"context"

	"github.com/tablebistro/tablebistro/internal/tables/domain"
)

// TableRepository loads and stores tables together with their active session.
// Implementations return an error matching shared.ErrNotFound for unknown ids.
type TableRepository interface {
	GetByID(ctx context.Context, id domain.TableID) (*domain.Table, error)
	GetAll(ctx context.Context) ([]*domain.Table, error)
	Save(ctx context.Context, table *domain.Table) error
}
