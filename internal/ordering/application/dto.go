package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tablebistro/tablebistro/internal/ordering/domain"
)

type OrderLineDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderDTO struct {
	ID          string          `json:"id"`
	TableNumber int             `json:"tableNumber"`
	SessionID   string          `json:"sessionId"`
	Lines       []OrderLineDTO  `json:"lines"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	CreatedAt   time.Time       `json:"createdAt"`
	ConfirmedAt *time.Time      `json:"confirmedAt,omitempty"`
}

// ToOrderDTO flattens an order for callers outside the domain.
func ToOrderDTO(o *domain.Order) OrderDTO {
	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:          l.ID().String(),
			ProductID:   l.ProductID().String(),
			ProductName: l.ProductName(),
			UnitPrice:   l.UnitPrice().Amount(),
			Quantity:    l.Quantity().Value(),
			Subtotal:    l.Subtotal().Amount(),
		})
	}
	return OrderDTO{
		ID:          o.ID().String(),
		TableNumber: o.TableID().Value(),
		SessionID:   o.SessionID().String(),
		Lines:       lines,
		Status:      string(o.Status()),
		Total:       o.Total().Amount(),
		Currency:    o.Total().Currency(),
		CreatedAt:   o.CreatedAt(),
		ConfirmedAt: o.ConfirmedAt(),
	}
}
