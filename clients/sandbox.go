package clients

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const sandboxDelay = 800 * time.Millisecond

// SandboxGateway simulates a payment provider: a fixed settlement delay,
// then success with a freshly generated transaction id. No card validation,
// no ledger, no idempotency key.
type SandboxGateway struct {
	delay time.Duration
}

func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{delay: sandboxDelay}
}

func (g *SandboxGateway) Charge(ctx context.Context, req ChargeRequest) (string, error) {
	select {
	case <-time.After(g.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate transaction id: %w", err)
	}
	return "pay_" + hex.EncodeToString(buf), nil
}
