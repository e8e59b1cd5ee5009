package planner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodexForgeBR/travel-manager/internal/brief"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
	"github.com/CodexForgeBR/travel-manager/internal/planner"
)

type fixedSource struct {
	p   planner.Proposal
	err error
}

func (f fixedSource) Decide(context.Context, *ledger.TripState, []ledger.Choice) (planner.Proposal, error) {
	return f.p, f.err
}

func TestDescribe(t *testing.T) {
	got := planner.Describe(planner.Proposal{Worker: ledger.FlightConsultant, Action: ledger.BookFlight})
	assert.Contains(t, got, "(flight_consultant.book_flight)")
	assert.NotContains(t, got, "flight_consultant:", "the worker title is used, not its id")
}

func TestAdvise(t *testing.T) {
	rules := planner.NewRules(brief.Default())
	s := ledger.NewTripState(ledger.ModeInteractive, ledger.DefaultBudget)

	tests := []struct {
		name string
		src  planner.DecisionSource
		want string
	}{
		{
			name: "source proposal",
			src:  fixedSource{p: planner.Proposal{Worker: ledger.HotelReservationist, Action: ledger.BookHotel}},
			want: "hotel_reservationist.book_hotel",
		},
		{
			name: "source error falls back",
			src:  fixedSource{err: errors.New("rate limited")},
			want: "travel_consultant.gather_preferences",
		},
		{
			name: "ineligible proposal falls back",
			src:  fixedSource{p: planner.Proposal{Worker: ledger.HotelReservationist, Action: ledger.BookFlight}},
			want: "travel_consultant.gather_preferences",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advise := planner.Advise(context.Background(), tt.src, rules)
			assert.Contains(t, advise(s), tt.want)
		})
	}
}
