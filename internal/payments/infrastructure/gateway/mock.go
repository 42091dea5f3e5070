package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tablebistro/tablebistro/internal/payments/application"
	"github.com/tablebistro/tablebistro/internal/payments/domain"
)

var errorCodes = []string{
	"insufficient_funds",
	"card_declined",
	"expired_card",
	"invalid_card",
	"processing_error",
	"network_timeout",
}

var errorMessages = map[string]string{
	"insufficient_funds": "Insufficient funds in the account",
	"card_declined":      "Card was declined by the issuer",
	"expired_card":       "Card has expired",
	"invalid_card":       "Invalid card number",
	"processing_error":   "Error processing the payment",
	"network_timeout":    "Network timeout while processing payment",
}

type statusEntry struct {
	status        domain.Status
	transactionID string
	processedAt   time.Time
}

// MockGateway simulates a card processor without moving money. The success
// rate is configurable so failure paths can be exercised in tests.
type MockGateway struct {
	log         *slog.Logger
	successRate float64

	mu       sync.Mutex
	rng      *rand.Rand
	statuses map[domain.PaymentID]statusEntry
}

func NewMockGateway(log *slog.Logger, successRate float64) *MockGateway {
	if successRate < 0 {
		successRate = 0
	}
	if successRate > 1 {
		successRate = 1
	}
	return &MockGateway{
		log:         log,
		successRate: successRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		statuses:    make(map[domain.PaymentID]statusEntry),
	}
}

func (g *MockGateway) ProcessPayment(ctx context.Context, request application.PaymentRequest) (application.PaymentResult, error) {
	g.log.Info("processing mock payment",
		"payment_id", request.PaymentID, "amount", request.Amount, "method", request.Method)

	// Simulated network latency, abandoned on cancellation.
	select {
	case <-time.After(g.delay(100, 500)):
	case <-ctx.Done():
		return application.PaymentResult{}, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.rng.Float64() <= g.successRate {
		transactionID := fmt.Sprintf("txn_mock_%s", uuid.NewString()[:8])
		g.statuses[request.PaymentID] = statusEntry{
			status:        domain.StatusCompleted,
			transactionID: transactionID,
			processedAt:   time.Now().UTC(),
		}
		g.log.Info("mock payment successful", "payment_id", request.PaymentID, "transaction_id", transactionID)
		return application.PaymentResult{Success: true, TransactionID: transactionID}, nil
	}

	code := errorCodes[g.rng.Intn(len(errorCodes))]
	g.statuses[request.PaymentID] = statusEntry{
		status:      domain.StatusFailed,
		processedAt: time.Now().UTC(),
	}
	g.log.Warn("mock payment failed", "payment_id", request.PaymentID, "error_code", code)
	return application.PaymentResult{
		Success:      false,
		ErrorCode:    code,
		ErrorMessage: errorMessages[code],
	}, nil
}

func (g *MockGateway) CheckStatus(ctx context.Context, id domain.PaymentID) (application.PaymentStatusResult, error) {
	select {
	case <-time.After(g.delay(50, 200)):
	case <-ctx.Done():
		return application.PaymentStatusResult{}, ctx.Err()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.statuses[id]
	if !ok {
		// Unknown to the gateway, assume still pending.
		return application.PaymentStatusResult{Status: domain.StatusPending}, nil
	}
	processedAt := entry.processedAt
	return application.PaymentStatusResult{
		Status:        entry.status,
		TransactionID: entry.transactionID,
		ProcessedAt:   &processedAt,
	}, nil
}

func (g *MockGateway) delay(minMillis, maxMillis int) time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return time.Duration(minMillis+g.rng.Intn(maxMillis-minMillis)) * time.Millisecond
}
