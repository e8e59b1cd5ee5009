package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThrottled_DisabledReturnsInner(t *testing.T) {
	ch := newTestChannel(t)
	assert.Same(t, Channel(ch), NewThrottled(ch, 0, 1))
}

func TestThrottled_Delegates(t *testing.T) {
	inner := newTestChannel(t)
	ch := NewThrottled(inner, 1000, 10)
	ctx := context.Background()

	assert.Equal(t, inner.Address(), ch.Address())

	_, err := ch.ProcessPayment(ctx, "USDC", 10, "experience", "")
	require.NoError(t, err)

	bal, err := ch.GetWalletBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "90", bal["USDC"])

	history, err := ch.PaymentHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestThrottled_WaitHonorsCancellation(t *testing.T) {
	ch := NewThrottled(newTestChannel(t), 0.001, 1)
	ctx := context.Background()

	// First call consumes the only token.
	_, err := ch.GetLoyaltyPoints(ctx)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ch.GetWalletBalance(cancelled)
	assert.Error(t, err)
}
