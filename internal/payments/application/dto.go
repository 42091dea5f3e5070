package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tablebistro/tablebistro/internal/payments/domain"
)

type PaymentDTO struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transactionId,omitempty"`
	FailureReason string          `json:"failureReason,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
}

func ToPaymentDTO(p *domain.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID().String(),
		OrderID:       p.OrderID().String(),
		Amount:        p.Amount().Amount(),
		Currency:      p.Amount().Currency(),
		Status:        string(p.Status()),
		TransactionID: p.TransactionID(),
		FailureReason: p.FailureReason(),
		CreatedAt:     p.CreatedAt(),
		ProcessedAt:   p.ProcessedAt(),
	}
}
