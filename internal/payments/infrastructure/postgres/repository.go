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

	ordering "github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/payments/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
)

const paymentColumns = "id, order_id, amount, currency, status, transaction_id, failure_reason, created_at, processed_at"

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) GetByID(ctx context.Context, id domain.PaymentID) (*domain.Payment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id=$1`, uuid.UUID(id))
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFoundf("payment %s not found", id)
		}
		return nil, err
	}
	return payment, nil
}

// GetByOrderID returns the most recently created payment for the order.
func (r *Repository) GetByOrderID(ctx context.Context, orderID ordering.OrderID) (*domain.Payment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id=$1 ORDER BY created_at DESC LIMIT 1`,
		uuid.UUID(orderID))
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFoundf("no payment found for order %s", orderID)
		}
		return nil, err
	}
	return payment, nil
}

func (r *Repository) Save(ctx context.Context, payment *domain.Payment) error {
	var transactionID, failureReason *string
	if payment.TransactionID() != "" {
		v := payment.TransactionID()
		transactionID = &v
	}
	if payment.FailureReason() != "" {
		v := payment.FailureReason()
		failureReason = &v
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payments (id, order_id, amount, currency, status, transaction_id, failure_reason, created_at, processed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET status=$5, transaction_id=$6, failure_reason=$7, processed_at=$9`,
		uuid.UUID(payment.ID()), uuid.UUID(payment.OrderID()),
		payment.Amount().Amount(), payment.Amount().Currency(),
		string(payment.Status()), transactionID, failureReason,
		payment.CreatedAt(), payment.ProcessedAt())
	return err
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		id            uuid.UUID
		orderID       uuid.UUID
		amount        decimal.Decimal
		currency      string
		rawStatus     string
		transactionID *string
		failureReason *string
		createdAt     time.Time
		processedAt   *time.Time
	)
	if err := row.Scan(&id, &orderID, &amount, &currency, &rawStatus, &transactionID, &failureReason, &createdAt, &processedAt); err != nil {
		return nil, err
	}
	price, err := shared.NewPrice(amount, currency)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	var txn, reason string
	if transactionID != nil {
		txn = *transactionID
	}
	if failureReason != nil {
		reason = *failureReason
	}
	return domain.RestorePayment(domain.PaymentID(id), ordering.OrderID(orderID), price, status,
		txn, reason, createdAt, processedAt), nil
}
