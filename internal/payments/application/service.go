package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	ordering "github.com/tablebistro/tablebistro/internal/ordering/domain"
	"github.com/tablebistro/tablebistro/internal/payments/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
)

// Service runs the payment workflow against an external gateway. Each phase
// is persisted before the next starts so a crash never loses the attempt.
type Service struct {
	log      *slog.Logger
	payments PaymentRepository
	orders   OrderReader
	gateway  PaymentGateway
}

func NewService(log *slog.Logger, payments PaymentRepository, orders OrderReader, gateway PaymentGateway) *Service {
	return &Service{log: log, payments: payments, orders: orders, gateway: gateway}
}

// Process settles the order's current total. At most one payment per order
// ever completes: a successful earlier payment blocks new attempts, while
// failed or cancelled attempts may be retried.
func (s *Service) Process(ctx context.Context, orderID, method string) (PaymentDTO, error) {
	oid, err := ordering.ParseOrderID(orderID)
	if err != nil {
		return PaymentDTO{}, err
	}
	order, err := s.orders.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return PaymentDTO{}, shared.NotFoundf("order %s not found", orderID)
		}
		return PaymentDTO{}, err
	}

	if order.Status() == ordering.StatusDraft || order.Status() == ordering.StatusCancelled {
		return PaymentDTO{}, shared.InvalidStatef("order must be confirmed before payment, current status: %s", order.Status())
	}

	existing, err := s.payments.GetByOrderID(ctx, oid)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return PaymentDTO{}, err
	}
	if existing != nil && existing.IsSuccessful() {
		return PaymentDTO{}, shared.InvalidStatef("payment has already been completed for this order")
	}

	payment := domain.NewPayment(oid, order.Total())
	if err := s.payments.Save(ctx, payment); err != nil {
		return PaymentDTO{}, err
	}

	if err := payment.MarkAsProcessing(); err != nil {
		return PaymentDTO{}, err
	}
	if err := s.payments.Save(ctx, payment); err != nil {
		return PaymentDTO{}, err
	}

	result, err := s.gateway.ProcessPayment(ctx, PaymentRequest{
		PaymentID: payment.ID(),
		Amount:    order.Total(),
		Method:    method,
		Metadata: map[string]string{
			"orderId":     orderID,
			"tableNumber": fmt.Sprintf("%d", order.TableID().Value()),
		},
	})
	if err != nil {
		return PaymentDTO{}, err
	}

	if result.Success {
		if err := payment.MarkAsCompleted(result.TransactionID); err != nil {
			return PaymentDTO{}, err
		}
		if err := s.payments.Save(ctx, payment); err != nil {
			return PaymentDTO{}, err
		}
		s.log.Info("payment completed", "payment_id", payment.ID(), "order_id", orderID, "transaction_id", result.TransactionID)
		return ToPaymentDTO(payment), nil
	}

	reason := fmt.Sprintf("%s: %s", result.ErrorCode, result.ErrorMessage)
	if err := payment.MarkAsFailed(reason); err != nil {
		return PaymentDTO{}, err
	}
	if err := s.payments.Save(ctx, payment); err != nil {
		return PaymentDTO{}, err
	}
	s.log.Warn("payment failed", "payment_id", payment.ID(), "order_id", orderID, "reason", reason)
	return PaymentDTO{}, shared.Gatewayf("payment failed: %s", result.ErrorMessage)
}

// StatusByOrder returns the latest payment recorded for the order.
func (s *Service) StatusByOrder(ctx context.Context, orderID string) (PaymentDTO, error) {
	oid, err := ordering.ParseOrderID(orderID)
	if err != nil {
		return PaymentDTO{}, err
	}
	payment, err := s.payments.GetByOrderID(ctx, oid)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return PaymentDTO{}, shared.NotFoundf("no payment found for order %s", orderID)
		}
		return PaymentDTO{}, err
	}
	return ToPaymentDTO(payment), nil
}
