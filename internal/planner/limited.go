package planner

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

// Limited spaces out calls to a decision source.
type Limited struct {
	next    DecisionSource
	limiter *rate.Limiter
}

// NewLimited wraps next so it is asked at most rps times per second.
// A non-positive rps returns next unchanged.
func NewLimited(next DecisionSource, rps float64) DecisionSource {
	if rps <= 0 {
		return next
	}
	return &Limited{next: next, limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

func (l *Limited) Decide(ctx context.Context, s *ledger.TripState, eligible []ledger.Choice) (Proposal, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return Proposal{}, err
	}
	return l.next.Decide(ctx, s, eligible)
}

// Observe forwards to the wrapped source when it observes outcomes.
func (l *Limited) Observe(p Proposal, o ledger.Outcome) {
	if obs, ok := l.next.(Observer); ok {
		obs.Observe(p, o)
	}
}
