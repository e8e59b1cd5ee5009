package payment

import (
	"context"
	"strconv"
	"time"
)

// Channel is the blockchain payment collaborator. Every call blocks until
// the underlying transaction is submitted or fails; there are no retries.
type Channel interface {
	// Address is the wallet address payments are made from.
	Address() string
	ProcessPayment(ctx context.Context, token string, amount float64, serviceType, recipient string) (string, error)
	GetWalletBalance(ctx context.Context) (map[string]string, error)
	SwapTokens(ctx context.Context, from, to string, amount float64) (SwapResult, error)
	TransferTokens(ctx context.Context, to, token string, amount float64) (string, error)
	GetLoyaltyPoints(ctx context.Context) (int, error)
	RedeemLoyaltyPoints(ctx context.Context, points int, token string) (string, error)
	PaymentHistory(ctx context.Context) ([]Payment, error)
}

// SwapResult describes a completed swap.
type SwapResult struct {
	From     string
	To       string
	Amount   float64
	Received float64
	TxHash   string
}

// Payment is one entry of the wallet's payment history.
type Payment struct {
	ID          string
	TxHash      string
	Token       string
	Amount      float64
	ServiceType string
	Recipient   string
	Timestamp   time.Time
	Refunded    bool
}

// PointsPerULT is the number of loyalty points worth one loyalty token.
const PointsPerULT = 100

// FormatAmount renders a token amount the way balances are reported.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseBalance reads one token's balance out of a snapshot. Missing or
// malformed entries read as zero.
func ParseBalance(tokens map[string]string, symbol string) float64 {
	v, err := strconv.ParseFloat(tokens[symbol], 64)
	if err != nil {
		return 0
	}
	return v
}
