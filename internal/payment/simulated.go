package payment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ethUSD is the fixed conversion rate the simulator swaps at. Stablecoins
// trade 1:1 with each other.
const ethUSD = 1800.0

// Simulated is an in-memory Channel that behaves like a funded testnet
// wallet. It never touches the network.
type Simulated struct {
	mu       sync.Mutex
	address  string
	tokens   *TokenRegistry
	balances map[string]float64
	points   int
	history  []Payment
	now      func() time.Time
}

// DefaultTestnetBalances are the funds a fresh simulated wallet starts with.
func DefaultTestnetBalances() map[string]float64 {
	return map[string]float64{"ETH": 0.1, "USDC": 100, "USDT": 100, "DAI": 100}
}

// NewSimulated builds a simulated channel for address. A nil balances map
// starts the wallet with DefaultTestnetBalances.
func NewSimulated(address string, tokens *TokenRegistry, balances map[string]float64) *Simulated {
	if balances == nil {
		balances = DefaultTestnetBalances()
	}
	b := make(map[string]float64, len(balances))
	for k, v := range balances {
		b[strings.ToUpper(k)] = v
	}
	return &Simulated{
		address:  address,
		tokens:   tokens,
		balances: b,
		now:      time.Now,
	}
}

func (s *Simulated) Address() string { return s.address }

func (s *Simulated) ProcessPayment(ctx context.Context, token string, amount float64, serviceType, recipient string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	symbol, err := s.debit(token, amount)
	if err != nil {
		return "", err
	}
	tx := newTxHash()
	s.history = append(s.history, Payment{
		ID:          uuid.NewString(),
		TxHash:      tx,
		Token:       symbol,
		Amount:      amount,
		ServiceType: serviceType,
		Recipient:   recipient,
		Timestamp:   s.now(),
	})
	s.points += int(math.Floor(amount))
	return tx, nil
}

func (s *Simulated) GetWalletBalance(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func (s *Simulated) SwapTokens(ctx context.Context, from, to string, amount float64) (SwapResult, error) {
	if err := ctx.Err(); err != nil {
		return SwapResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dst := strings.ToUpper(to)
	if !s.tokens.Supported(dst) {
		return SwapResult{}, fmt.Errorf("%w: %s", ErrUnsupportedToken, to)
	}
	src, err := s.debit(from, amount)
	if err != nil {
		return SwapResult{}, err
	}
	received := convert(src, dst, amount)
	s.balances[dst] += received
	return SwapResult{From: src, To: dst, Amount: amount, Received: received, TxHash: newTxHash()}, nil
}

func (s *Simulated) TransferTokens(ctx context.Context, to, token string, amount float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !strings.HasPrefix(to, "0x") || len(to) != 42 {
		return "", fmt.Errorf("invalid recipient address %q", to)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.debit(token, amount); err != nil {
		return "", err
	}
	return newTxHash(), nil
}

func (s *Simulated) GetLoyaltyPoints(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points, nil
}

// RedeemLoyaltyPoints converts points into token at PointsPerULT points per unit.
func (s *Simulated) RedeemLoyaltyPoints(ctx context.Context, points int, token string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	symbol := strings.ToUpper(token)
	if !s.tokens.Supported(symbol) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedToken, token)
	}
	if points <= 0 {
		return "", ErrInvalidAmount
	}
	if points > s.points {
		return "", fmt.Errorf("%w: %d points requested, %d available", ErrInsufficientFunds, points, s.points)
	}
	s.points -= points
	s.balances[symbol] += float64(points) / PointsPerULT
	return newTxHash(), nil
}

func (s *Simulated) PaymentHistory(ctx context.Context) ([]Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Payment(nil), s.history...), nil
}

// debit validates and subtracts amount of token. Callers hold s.mu.
func (s *Simulated) debit(token string, amount float64) (string, error) {
	symbol := strings.ToUpper(token)
	if !s.tokens.Supported(symbol) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedToken, token)
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", ErrInvalidAmount
	}
	if s.balances[symbol] < amount {
		return "", fmt.Errorf("%w: %s balance %s, need %s", ErrInsufficientFunds,
			symbol, FormatAmount(s.balances[symbol]), FormatAmount(amount))
	}
	s.balances[symbol] -= amount
	return symbol, nil
}

func (s *Simulated) snapshot() map[string]string {
	out := make(map[string]string, len(tokenOrder))
	for _, sym := range tokenOrder {
		out[sym] = FormatAmount(round(s.balances[sym]))
	}
	return out
}

func convert(from, to string, amount float64) float64 {
	switch {
	case from == to:
		return amount
	case from == "ETH":
		return amount * ethUSD
	case to == "ETH":
		return amount / ethUSD
	default:
		return amount
	}
}

// round trims float noise from repeated debits.
func round(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

func newTxHash() string {
	return "0x" + strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
