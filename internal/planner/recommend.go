package planner

import (
	"context"
	"fmt"

	"github.com/CodexForgeBR/travel-manager/internal/catalog"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
	"github.com/CodexForgeBR/travel-manager/internal/logging"
)

// Describe renders a proposal for a person, e.g.
// "Flight Consultant: Book a flight (flight_consultant.book_flight)".
func Describe(p Proposal) string {
	desc := string(p.Action)
	if a, ok := catalog.Lookup(p.Action); ok {
		desc = a.Description
	}
	return fmt.Sprintf("%s: %s (%s.%s)", title(p.Worker), desc, p.Worker, p.Action)
}

// Advise returns a recommendation function for the interactive menu that
// asks src what it would do next. If src fails or proposes something
// ineligible, fallback's plan is shown instead.
func Advise(ctx context.Context, src DecisionSource, fallback *Rules) func(*ledger.TripState) string {
	return func(s *ledger.TripState) string {
		eligible := ledger.Eligible(s)
		p, err := src.Decide(ctx, s.Clone(), eligible)
		if err == nil && contains(eligible, p.Choice()) {
			return Describe(p)
		}
		if err != nil {
			logging.Debug(fmt.Sprintf("Recommendation fell back to rules: %v", err))
		}
		return fallback.Recommend(s)
	}
}

func title(id ledger.WorkerID) string {
	if w, ok := catalog.LookupWorker(id); ok {
		return w.Title
	}
	return string(id)
}
