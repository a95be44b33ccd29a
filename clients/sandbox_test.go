package clients

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandboxChargeSucceeds(t *testing.T) {
	g := NewSandboxGateway()

	id, err := g.Charge(context.Background(), ChargeRequest{Amount: 200, Method: "card"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "pay_"))

	other, err := g.Charge(context.Background(), ChargeRequest{Amount: 200, Method: "card"})
	require.NoError(t, err)
	assert.NotEqual(t, id, other, "transaction ids must be unique")
}

func TestSandboxChargeRespectsContext(t *testing.T) {
	g := NewSandboxGateway()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Charge(ctx, ChargeRequest{Amount: 50, Method: "card"})
	assert.ErrorIs(t, err, context.Canceled)
}
