package payment

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttled spaces out calls to an underlying Channel so a shared RPC
// endpoint is not flooded. Waiting honors ctx cancellation.
type Throttled struct {
	next    Channel
	limiter *rate.Limiter
}

// NewThrottled wraps next with a limiter allowing rps calls per second.
// A non-positive rps returns next unchanged.
func NewThrottled(next Channel, rps float64, burst int) Channel {
	if rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttled{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (t *Throttled) Address() string { return t.next.Address() }

func (t *Throttled) ProcessPayment(ctx context.Context, token string, amount float64, serviceType, recipient string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return t.next.ProcessPayment(ctx, token, amount, serviceType, recipient)
}

func (t *Throttled) GetWalletBalance(ctx context.Context) (map[string]string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.next.GetWalletBalance(ctx)
}

func (t *Throttled) SwapTokens(ctx context.Context, from, to string, amount float64) (SwapResult, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return SwapResult{}, err
	}
	return t.next.SwapTokens(ctx, from, to, amount)
}

func (t *Throttled) TransferTokens(ctx context.Context, to, token string, amount float64) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return t.next.TransferTokens(ctx, to, token, amount)
}

func (t *Throttled) GetLoyaltyPoints(ctx context.Context) (int, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	return t.next.GetLoyaltyPoints(ctx)
}

func (t *Throttled) RedeemLoyaltyPoints(ctx context.Context, points int, token string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return t.next.RedeemLoyaltyPoints(ctx, points, token)
}

func (t *Throttled) PaymentHistory(ctx context.Context) ([]Payment, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.next.PaymentHistory(ctx)
}
