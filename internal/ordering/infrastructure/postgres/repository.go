package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	catalog "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
	tables "github.com/tablebistro/tablebistro/internal/tables/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

type orderRow struct {
	id          uuid.UUID
	tableNumber int
	sessionID   uuid.UUID
	status      string
	createdAt   time.Time
	confirmedAt *time.Time
}

func (r *Repository) GetByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, table_number, session_id, status, created_at, confirmed_at
		FROM orders WHERE id=$1`, uuid.UUID(id))
	var or orderRow
	if err := row.Scan(&or.id, &or.tableNumber, &or.sessionID, &or.status, &or.createdAt, &or.confirmedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFoundf("order %s not found", id)
		}
		return nil, err
	}
	return r.restore(ctx, or)
}

func (r *Repository) GetActiveOrderByTable(ctx context.Context, tableID tables.TableID) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, table_number, session_id, status, created_at, confirmed_at
		FROM orders
		WHERE table_number=$1 AND status IN ($2,$3)
		ORDER BY created_at DESC LIMIT 1`,
		tableID.Value(), string(domain.StatusDraft), string(domain.StatusConfirmed))
	var or orderRow
	if err := row.Scan(&or.id, &or.tableNumber, &or.sessionID, &or.status, &or.createdAt, &or.confirmedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFoundf("no open order for table %d", tableID.Value())
		}
		return nil, err
	}
	return r.restore(ctx, or)
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, table_number, session_id, status, created_at, confirmed_at
		FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orderRows []orderRow
	for rows.Next() {
		var or orderRow
		if err := rows.Scan(&or.id, &or.tableNumber, &or.sessionID, &or.status, &or.createdAt, &or.confirmedAt); err != nil {
			return nil, err
		}
		orderRows = append(orderRows, or)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*domain.Order, 0, len(orderRows))
	for _, or := range orderRows {
		o, err := r.restore(ctx, or)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Save writes the aggregate as a whole: the order row is upserted and the
// line set is replaced inside one transaction.
func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, table_number, session_id, status, total_amount, total_currency, created_at, confirmed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET status=$4, total_amount=$5, total_currency=$6, confirmed_at=$8`,
		uuid.UUID(order.ID()), order.TableID().Value(), uuid.UUID(order.SessionID()),
		string(order.Status()), order.Total().Amount(), order.Total().Currency(),
		order.CreatedAt(), order.ConfirmedAt())
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM order_lines WHERE order_id=$1`, uuid.UUID(order.ID())); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, line := range order.Lines() {
		batch.Queue(`
			INSERT INTO order_lines (id, order_id, position, product_id, product_name, unit_price_amount, unit_price_currency, quantity)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			uuid.UUID(line.ID()), uuid.UUID(order.ID()), i,
			uuid.UUID(line.ProductID()), line.ProductName(),
			line.UnitPrice().Amount(), line.UnitPrice().Currency(), line.Quantity().Value())
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) Delete(ctx context.Context, id domain.OrderID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, uuid.UUID(id))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return shared.NotFoundf("order %s not found", id)
	}
	return nil
}

func (r *Repository) restore(ctx context.Context, or orderRow) (*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, product_name, unit_price_amount, unit_price_currency, quantity
		FROM order_lines WHERE order_id=$1 ORDER BY position`, or.id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.OrderLine
	for rows.Next() {
		var (
			lineID    uuid.UUID
			productID uuid.UUID
			name      string
			amount    decimal.Decimal
			currency  string
			quantity  int
		)
		if err := rows.Scan(&lineID, &productID, &name, &amount, &currency, &quantity); err != nil {
			return nil, err
		}
		price, err := shared.NewPrice(amount, currency)
		if err != nil {
			return nil, err
		}
		qty, err := shared.NewQuantity(quantity)
		if err != nil {
			return nil, err
		}
		line, err := domain.RestoreOrderLine(domain.OrderLineID(lineID), catalog.ProductID(productID), name, price, qty)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(or.status)
	if err != nil {
		return nil, err
	}
	return domain.RestoreOrder(
		domain.OrderID(or.id), tables.TableID(or.tableNumber), tables.SessionID(or.sessionID),
		lines, status, or.createdAt, or.confirmedAt)
}
