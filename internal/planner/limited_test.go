package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

type countingSource struct {
	calls    int
	observed []ledger.Outcome
}

func (c *countingSource) Decide(context.Context, *ledger.TripState, []ledger.Choice) (Proposal, error) {
	c.calls++
	return Proposal{Worker: ledger.LocationCurator, Action: ledger.ResearchLocation}, nil
}

func (c *countingSource) Observe(_ Proposal, o ledger.Outcome) {
	c.observed = append(c.observed, o)
}

func TestNewLimited_NonPositiveRateIsPassthrough(t *testing.T) {
	src := &countingSource{}
	assert.Same(t, src, NewLimited(src, 0))
}

func TestLimited_Delegates(t *testing.T) {
	src := &countingSource{}
	l := NewLimited(src, 1000)

	p, err := l.Decide(context.Background(), ledger.NewTripState(ledger.ModeAutomatic, 1000), nil)
	require.NoError(t, err)
	assert.Equal(t, ledger.ResearchLocation, p.Action)
	assert.Equal(t, 1, src.calls)

	l.(Observer).Observe(p, ledger.Done("ok", ledger.Effect{}))
	assert.Len(t, src.observed, 1)
}

func TestLimited_CancelledContext(t *testing.T) {
	src := &countingSource{}
	l := NewLimited(src, 0.001)
	ctx := context.Background()

	// The first call consumes the only token.
	_, err := l.Decide(ctx, ledger.NewTripState(ledger.ModeAutomatic, 1000), nil)
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = l.Decide(cancelled, ledger.NewTripState(ledger.ModeAutomatic, 1000), nil)
	assert.Error(t, err)
	assert.Equal(t, 1, src.calls)
}
