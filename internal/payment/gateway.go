package payment

import (
	"context"
	"crypto/rand"
	"fmt"
	mathrand "math/rand"
	"time"
)

// Gateway settles a charge with an external payment provider.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

type ChargeRequest struct {
	TransactionID string
	Amount        int64
	Method        Method
}

type ChargeResult struct {
	Succeeded bool
	Message   string
}

// SimulatedGateway stands in for a real provider. It waits for a
// configurable processing delay and approves a fixed fraction of charges.
type SimulatedGateway struct {
	delay       time.Duration
	successRate float64
	randFloat   func() float64
}

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{
		delay:       delay,
		successRate: 0.9,
		randFloat:   mathrand.Float64,
	}
}

// WithRand overrides the random source; used by tests to force outcomes.
func (g *SimulatedGateway) WithRand(fn func() float64) *SimulatedGateway {
	g.randFloat = fn
	return g
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	if g.randFloat() < g.successRate {
		return &ChargeResult{Succeeded: true, Message: "payment processed successfully"}, nil
	}
	return &ChargeResult{Succeeded: false, Message: "payment declined by gateway"}, nil
}

const (
	transactionPrefix   = "TXN"
	transactionAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	transactionLength   = 12
)

// NewTransactionID returns a gateway transaction id of the form "TXN"
// followed by twelve uppercase alphanumeric characters.
func NewTransactionID() (string, error) {
	buf := make([]byte, transactionLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = transactionAlphabet[int(b)%len(transactionAlphabet)]
	}
	return transactionPrefix + string(buf), nil
}
