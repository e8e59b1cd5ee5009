// Package planner holds the decision sources that pick the next
// (worker, action, parameters) for the session driver: a deterministic
// rule-based planner, an Anthropic-backed planner and a rate limiter that
// can wrap either.
package planner

import (
	"context"
	"errors"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

var (
	// ErrNoAction means the source had nothing to propose this cycle.
	// The driver retries on the next cycle.
	ErrNoAction = errors.New("no action proposed")

	// ErrQuit means the operator asked to end the session.
	ErrQuit = errors.New("quit requested")
)

// Proposal is a candidate action for the driver to validate and run.
type Proposal struct {
	Worker ledger.WorkerID
	Action ledger.ActionID
	Params map[string]string
}

// Choice returns the (worker, action) pair of the proposal.
func (p Proposal) Choice() ledger.Choice {
	return ledger.Choice{Worker: p.Worker, Action: p.Action}
}

// DecisionSource picks the next action. snapshot is a copy the source may
// read freely; eligible is the current output of ledger.Eligible.
type DecisionSource interface {
	Decide(ctx context.Context, snapshot *ledger.TripState, eligible []ledger.Choice) (Proposal, error)
}

// Observer is implemented by sources that want to see the outcome of the
// proposal they made.
type Observer interface {
	Observe(p Proposal, o ledger.Outcome)
}

func contains(eligible []ledger.Choice, c ledger.Choice) bool {
	for _, e := range eligible {
		if e == c {
			return true
		}
	}
	return false
}
