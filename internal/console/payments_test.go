package console

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/travel-manager/internal/payment"
)

const walletAddress = "0x9999999999999999999999999999999999999999"

func newPaymentsMenu(t *testing.T, input string) (*PaymentsMenu, *payment.Simulated, *strings.Builder) {
	t.Helper()
	tokens, err := payment.NewTokenRegistry(payment.BaseSepolia)
	require.NoError(t, err)
	ch := payment.NewSimulated(walletAddress, tokens, nil)
	var out strings.Builder
	p := NewPrompter(strings.NewReader(input), &out)
	return NewPaymentsMenu(p, ch, tokens, payment.NewServiceRegistry()), ch, &out
}

func TestPaymentsMenu_PayAndReview(t *testing.T) {
	input := strings.Join([]string{
		"2", "2", "1", "30", "", "y", // pay 30 USDC for a flight to the default provider
		"3",      // history
		"4",      // loyalty
		"6",      // balances
		"7",
	}, "\n") + "\n"
	m, ch, out := newPaymentsMenu(t, input)

	require.NoError(t, m.Run(context.Background()))

	history, err := ch.PaymentHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "USDC", history[0].Token)
	assert.Equal(t, "flight", history[0].ServiceType)
	assert.Equal(t, "0x1234567890123456789012345678901234567890", history[0].Recipient)

	text := out.String()
	assert.Contains(t, text, "Payment successful!")
	assert.Contains(t, text, "Amount: 30 USDC")
	assert.Contains(t, text, "Current Points: 30")
	assert.Contains(t, text, "Equivalent ULT Tokens: 0.3")
	assert.Contains(t, text, "USDC: 70")
	assert.Contains(t, text, "Thank you for using Travel Manager blockchain payments!")
}

func TestPaymentsMenu_InvalidInputIsNotFatal(t *testing.T) {
	input := strings.Join([]string{
		"9",                     // invalid choice
		"2", "7",                // invalid token
		"2", "2", "4",           // invalid service
		"2", "2", "1", "thirty", // invalid amount
		"2", "2", "1", "500", "", "y", // insufficient funds
		"5", // no points yet
		"7",
	}, "\n") + "\n"
	m, _, out := newPaymentsMenu(t, input)

	require.NoError(t, m.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Invalid choice. Please try again.")
	assert.Contains(t, text, "Invalid token selection.")
	assert.Contains(t, text, "Invalid service type.")
	assert.Contains(t, text, "Invalid amount.")
	assert.Contains(t, text, "Payment failed:")
	assert.Contains(t, text, "You don't have any loyalty points to redeem.")
}

func TestPaymentsMenu_Redeem(t *testing.T) {
	input := strings.Join([]string{
		"2", "2", "2", "50", "", "y", // earns 50 points
		"5", "50", "3", "y", // redeem into USDT
		"7",
	}, "\n") + "\n"
	m, ch, out := newPaymentsMenu(t, input)

	require.NoError(t, m.Run(context.Background()))

	assert.Contains(t, out.String(), "Redemption successful!")
	points, err := ch.GetLoyaltyPoints(context.Background())
	require.NoError(t, err)
	assert.Zero(t, points)
	balances, err := ch.GetWalletBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100.5", balances["USDT"])
}

func TestPaymentsMenu_EOFExits(t *testing.T) {
	m, _, _ := newPaymentsMenu(t, "1\n")
	assert.NoError(t, m.Run(context.Background()))
}

func TestPaymentsMenu_Cancelled(t *testing.T) {
	m, _, _ := newPaymentsMenu(t, "1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Run(ctx), context.Canceled)
}
