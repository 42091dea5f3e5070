package memory

import (
	"context"
	"sync"
	"time"

	ordering "github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/payments/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
)

type paymentRecord struct {
	id            domain.PaymentID
	orderID       ordering.OrderID
	amount        shared.Price
	status        domain.Status
	transactionID string
	failureReason string
	createdAt     time.Time
	processedAt   *time.Time
}

// PaymentRepository keeps payment snapshots in a mutex-guarded map.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[domain.PaymentID]paymentRecord
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[domain.PaymentID]paymentRecord)}
}

func (r *PaymentRepository) GetByID(_ context.Context, id domain.PaymentID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.payments[id]
	if !ok {
		return nil, shared.NotFoundf("payment %s not found", id)
	}
	return restore(rec), nil
}

// GetByOrderID returns the most recently created payment for the order.
func (r *PaymentRepository) GetByOrderID(_ context.Context, orderID ordering.OrderID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *paymentRecord
	for _, rec := range r.payments {
		if rec.orderID != orderID {
			continue
		}
		if latest == nil || rec.createdAt.After(latest.createdAt) {
			rec := rec
			latest = &rec
		}
	}
	if latest == nil {
		return nil, shared.NotFoundf("no payment found for order %s", orderID)
	}
	return restore(*latest), nil
}

func (r *PaymentRepository) Save(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.ID()] = paymentRecord{
		id:            payment.ID(),
		orderID:       payment.OrderID(),
		amount:        payment.Amount(),
		status:        payment.Status(),
		transactionID: payment.TransactionID(),
		failureReason: payment.FailureReason(),
		createdAt:     payment.CreatedAt(),
		processedAt:   payment.ProcessedAt(),
	}
	return nil
}

func restore(rec paymentRecord) *domain.Payment {
	return domain.RestorePayment(rec.id, rec.orderID, rec.amount, rec.status,
		rec.transactionID, rec.failureReason, rec.createdAt, rec.processedAt)
}
