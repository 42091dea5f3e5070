package application

import (
	"context"
	"time"

	ordering "github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/payments/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
)

type PaymentRepository interface {
	GetByID(ctx context.Context, id domain.PaymentID) (*domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID ordering.OrderID) (*domain.Payment, error)
	Save(ctx context.Context, payment *domain.Payment) error
}

// OrderReader exposes the slice of the ordering context payments needs.
type OrderReader interface {
	GetByID(ctx context.Context, id ordering.OrderID) (*ordering.Order, error)
}

type PaymentRequest struct {
	PaymentID domain.PaymentID
	Amount    shared.Price
	Method    string
	Metadata  map[string]string
}

type PaymentResult struct {
	Success       bool
	TransactionID string
	ErrorCode     string
	ErrorMessage  string
}

type PaymentStatusResult struct {
	Status        domain.Status
	TransactionID string
	ProcessedAt   *time.Time
}

type PaymentGateway interface {
	ProcessPayment(ctx context.Context, request PaymentRequest) (PaymentResult, error)
	CheckStatus(ctx context.Context, id domain.PaymentID) (PaymentStatusResult, error)
}
