package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"motorent/internal/domain"
)

// ChargeRequest is the request contract for a payment gateway.
type ChargeRequest struct {
	BookingID string
	Amount    float64
	Method    domain.PaymentMethod
}

// ChargeResult is the response contract from a payment gateway.
type ChargeResult struct {
	TransactionID    string
	GatewayReference string
	Approved         bool
	Message          string
	ProcessedAt      time.Time
}

// PaymentGateway is the port for an external payment provider.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// MockGateway simulates a payment provider. Every charge is approved after an
// artificial round-trip latency. The wait respects the caller's context so a
// pending charge never blocks other requests or survives cancellation.
type MockGateway struct {
	latency time.Duration
}

// NewMockGateway creates a gateway mock with the given simulated latency.
func NewMockGateway(latency time.Duration) *MockGateway {
	return &MockGateway{latency: latency}
}

// Charge simulates a successful charge.
func (g *MockGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	now := time.Now()
	return &ChargeResult{
		TransactionID:    fmt.Sprintf("txn_%d", now.UnixMilli()),
		GatewayReference: fmt.Sprintf("gw_%s", uuid.New().String()),
		Approved:         true,
		Message:          "Payment processed successfully",
		ProcessedAt:      now,
	}, nil
}

// Ensure MockGateway implements PaymentGateway.
var _ PaymentGateway = (*MockGateway)(nil)
