package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChannel(t *testing.T) *Simulated {
	t.Helper()
	reg, err := NewTokenRegistry(BaseSepolia)
	require.NoError(t, err)
	return NewSimulated("0xabc0000000000000000000000000000000000001", reg, nil)
}

func TestSimulated_ProcessPayment(t *testing.T) {
	ch := newTestChannel(t)
	ctx := context.Background()

	tx, err := ch.ProcessPayment(ctx, "usdc", 25, "hotel", NewServiceRegistry().RecipientFor("hotel"))
	require.NoError(t, err)
	assert.Regexp(t, `^0x[0-9a-f]{64}$`, tx)

	bal, err := ch.GetWalletBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "75", bal["USDC"])
	assert.Equal(t, "0.1", bal["ETH"])

	points, err := ch.GetLoyaltyPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, points)

	history, err := ch.PaymentHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "USDC", history[0].Token)
	assert.Equal(t, "hotel", history[0].ServiceType)
	assert.Equal(t, tx, history[0].TxHash)
}

func TestSimulated_ProcessPaymentErrors(t *testing.T) {
	ch := newTestChannel(t)
	ctx := context.Background()

	_, err := ch.ProcessPayment(ctx, "USDC", 500, "flight", "")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = ch.ProcessPayment(ctx, "DOGE", 1, "flight", "")
	assert.ErrorIs(t, err, ErrUnsupportedToken)

	_, err = ch.ProcessPayment(ctx, "USDC", -3, "flight", "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	bal, err := ch.GetWalletBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "100", bal["USDC"], "failed payments leave balances alone")
}

func TestSimulated_SwapTokens(t *testing.T) {
	ch := newTestChannel(t)
	ctx := context.Background()

	res, err := ch.SwapTokens(ctx, "ETH", "USDC", 0.05)
	require.NoError(t, err)
	assert.Equal(t, "ETH", res.From)
	assert.InDelta(t, 90, res.Received, 1e-9)

	bal, err := ch.GetWalletBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.05", bal["ETH"])
	assert.Equal(t, "190", bal["USDC"])

	res, err = ch.SwapTokens(ctx, "USDC", "ETH", 18)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, res.Received, 1e-12)

	res, err = ch.SwapTokens(ctx, "USDT", "DAI", 10)
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.Received)
}

func TestSimulated_TransferTokens(t *testing.T) {
	ch := newTestChannel(t)
	ctx := context.Background()

	_, err := ch.TransferTokens(ctx, "not-an-address", "USDC", 1)
	assert.Error(t, err)

	tx, err := ch.TransferTokens(ctx, "0x2345678901234567890123456789012345678901", "USDC", 20)
	require.NoError(t, err)
	assert.NotEmpty(t, tx)

	bal, _ := ch.GetWalletBalance(ctx)
	assert.Equal(t, "80", bal["USDC"])
}

func TestSimulated_RedeemLoyaltyPoints(t *testing.T) {
	ch := newTestChannel(t)
	ctx := context.Background()

	_, err := ch.ProcessPayment(ctx, "USDC", 60, "flight", "")
	require.NoError(t, err)
	_, err = ch.ProcessPayment(ctx, "DAI", 50, "hotel", "")
	require.NoError(t, err)

	_, err = ch.RedeemLoyaltyPoints(ctx, 500, "USDC")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = ch.RedeemLoyaltyPoints(ctx, 100, "USDC")
	require.NoError(t, err)

	points, _ := ch.GetLoyaltyPoints(ctx)
	assert.Equal(t, 10, points)
	bal, _ := ch.GetWalletBalance(ctx)
	assert.Equal(t, "41", bal["USDC"])
}

func TestSimulated_CancelledContext(t *testing.T) {
	ch := newTestChannel(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ch.GetWalletBalance(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = ch.ProcessPayment(ctx, "USDC", 1, "hotel", "")
	assert.ErrorIs(t, err, context.Canceled)
}
