package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	ordering "github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
)

type PaymentID uuid.UUID

func NewPaymentID() PaymentID {
	return PaymentID(uuid.New())
}

func ParsePaymentID(s string) (PaymentID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PaymentID{}, shared.Validationf("invalid payment id %q", s)
	}
	return PaymentID(id), nil
}

func (id PaymentID) String() string { return uuid.UUID(id).String() }

type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
	StatusCancelled  Status = "Cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled:
		return Status(s), nil
	}
	return "", shared.Validationf("unknown payment status %q", s)
}

// Payment tracks one attempt to settle an order's total through a gateway.
type Payment struct {
	id            PaymentID
	orderID       ordering.OrderID
	amount        shared.Price
	status        Status
	transactionID string
	failureReason string
	createdAt     time.Time
	processedAt   *time.Time
}

func NewPayment(orderID ordering.OrderID, amount shared.Price) *Payment {
	return &Payment{
		id:        NewPaymentID(),
		orderID:   orderID,
		amount:    amount,
		status:    StatusPending,
		createdAt: time.Now().UTC(),
	}
}

// RestorePayment rebuilds a payment from persisted state.
func RestorePayment(id PaymentID, orderID ordering.OrderID, amount shared.Price, status Status,
	transactionID, failureReason string, createdAt time.Time, processedAt *time.Time) *Payment {
	return &Payment{
		id:            id,
		orderID:       orderID,
		amount:        amount,
		status:        status,
		transactionID: transactionID,
		failureReason: failureReason,
		createdAt:     createdAt,
		processedAt:   processedAt,
	}
}

func (p *Payment) ID() PaymentID { return p.id }

func (p *Payment) OrderID() ordering.OrderID { return p.orderID }

func (p *Payment) Amount() shared.Price { return p.amount }

func (p *Payment) Status() Status { return p.status }

func (p *Payment) TransactionID() string { return p.transactionID }

func (p *Payment) FailureReason() string { return p.failureReason }

func (p *Payment) CreatedAt() time.Time { return p.createdAt }

func (p *Payment) ProcessedAt() *time.Time { return p.processedAt }

func (p *Payment) MarkAsProcessing() error {
	if p.status != StatusPending {
		return shared.InvalidStatef("payment can only be marked as processing when in Pending status")
	}
	p.status = StatusProcessing
	return nil
}

func (p *Payment) MarkAsCompleted(transactionID string) error {
	if strings.TrimSpace(transactionID) == "" {
		return shared.Validationf("transaction id is required when completing a payment")
	}
	if p.status == StatusCompleted {
		return shared.InvalidStatef("payment has already been completed")
	}
	now := time.Now().UTC()
	p.status = StatusCompleted
	p.transactionID = transactionID
	p.processedAt = &now
	return nil
}

func (p *Payment) MarkAsFailed(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.Validationf("failure reason is required when marking payment as failed")
	}
	now := time.Now().UTC()
	p.status = StatusFailed
	p.failureReason = reason
	p.processedAt = &now
	return nil
}

func (p *Payment) Cancel() error {
	if p.status == StatusCompleted {
		return shared.InvalidStatef("cannot cancel a completed payment")
	}
	p.status = StatusCancelled
	return nil
}

func (p *Payment) IsSuccessful() bool { return p.status == StatusCompleted }
