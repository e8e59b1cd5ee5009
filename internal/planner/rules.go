package planner

import (
	"context"
	"strconv"

	"github.com/CodexForgeBR/travel-manager/internal/brief"
	"github.com/CodexForgeBR/travel-manager/internal/catalog"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

// Rules plans a trip deterministically from a brief, in the order a travel
// manager would: connect the wallet (blockchain modes), gather preferences,
// research locations, book the flight, the hotel, then experiences, and in
// blockchain modes pay for each booked service.
//
// Progress is read from the ledger snapshot, so a resumed session picks up
// where it left off.
type Rules struct {
	Brief brief.Brief
}

// NewRules returns a rule-based planner for b.
func NewRules(b brief.Brief) *Rules {
	return &Rules{Brief: b}
}

// Decide returns the next planned step whose worker is still eligible.
// Once the plan is exhausted it falls back to the first eligible choice
// that can succeed in the current mode, filling parameters from the brief.
func (r *Rules) Decide(_ context.Context, s *ledger.TripState, eligible []ledger.Choice) (Proposal, error) {
	for _, p := range r.plan(s) {
		if contains(eligible, p.Choice()) {
			return p, nil
		}
	}
	for _, c := range eligible {
		if c.Worker == ledger.PaymentProcessor && !s.BlockchainEnabled {
			continue
		}
		return Proposal{Worker: c.Worker, Action: c.Action, Params: r.params(c.Action)}, nil
	}
	return Proposal{}, ErrNoAction
}

// Recommend describes the next planned step for a human operator. It
// returns an empty string once the plan is done.
func (r *Rules) Recommend(s *ledger.TripState) string {
	eligible := ledger.Eligible(s)
	for _, p := range r.plan(s) {
		if !contains(eligible, p.Choice()) {
			continue
		}
		return Describe(p)
	}
	return ""
}

// plan lists the outstanding steps in priority order.
func (r *Rules) plan(s *ledger.TripState) []Proposal {
	var steps []Proposal
	add := func(w ledger.WorkerID, a ledger.ActionID, params map[string]string) {
		steps = append(steps, Proposal{Worker: w, Action: a, Params: params})
	}
	w := func(id ledger.WorkerID) ledger.WorkerState {
		if ws, ok := s.Worker(id); ok {
			return *ws
		}
		return ledger.WorkerState{}
	}

	pay := w(ledger.PaymentProcessor)
	if s.BlockchainEnabled && !pay.BlockchainConnected {
		add(ledger.PaymentProcessor, ledger.ConnectBlockchain, map[string]string{})
	}

	if w(ledger.TravelConsultant).ConsultationStatus != ledger.ConsultationCompleted {
		add(ledger.TravelConsultant, ledger.GatherPreferences, r.params(ledger.GatherPreferences))
	}

	targets := r.Brief.ResearchTargets()
	if n := w(ledger.LocationCurator).LocationsResearched; n < len(targets) {
		add(ledger.LocationCurator, ledger.ResearchLocation, map[string]string{"location": targets[n]})
	}

	flight := w(ledger.FlightConsultant)
	if !flight.FlightBooked {
		add(ledger.FlightConsultant, ledger.BookFlight, r.params(ledger.BookFlight))
	}
	hotel := w(ledger.HotelReservationist)
	if !hotel.HotelBooked {
		add(ledger.HotelReservationist, ledger.BookHotel, r.params(ledger.BookHotel))
	}
	booked := w(ledger.ExperienceCurator).ExperiencesBooked
	if booked < len(r.Brief.Experiences) {
		add(ledger.ExperienceCurator, ledger.BookExperience, r.experience(booked))
	}

	if s.BlockchainEnabled && pay.BlockchainConnected {
		// Connecting the wallet is itself counted as a processed payment.
		paid := max(pay.PaymentsProcessed-1, 0)
		owed := r.invoices(flight.FlightBooked, hotel.HotelBooked, booked)
		if paid < len(owed) {
			add(ledger.PaymentProcessor, ledger.ProcessCryptoPayment, owed[paid])
		}
	}
	return steps
}

// invoices lists the payments due for booked services, flight first.
func (r *Rules) invoices(flight, hotel bool, experiences int) []map[string]string {
	p := r.Brief.Payments
	invoice := func(service string, amount float64) map[string]string {
		return map[string]string{
			"amount":       strconv.FormatFloat(amount, 'f', -1, 64),
			"currency":     r.payToken(),
			"service_type": service,
		}
	}
	var out []map[string]string
	if flight && p.Flight > 0 {
		out = append(out, invoice("flight", p.Flight))
	}
	if hotel && p.Hotel > 0 {
		out = append(out, invoice("hotel", p.Hotel))
	}
	for i := 0; i < experiences && p.Experience > 0; i++ {
		out = append(out, invoice("experience", p.Experience))
	}
	return out
}

func (r *Rules) experience(i int) map[string]string {
	if i >= len(r.Brief.Experiences) {
		return r.params(ledger.BookExperience)
	}
	e := r.Brief.Experiences[i]
	return map[string]string{"experience_name": e.Name, "date": r.Brief.ExperienceDate(e)}
}

func (r *Rules) payToken() string {
	if r.Brief.Payments.Token != "" {
		return r.Brief.Payments.Token
	}
	return "USDC"
}

// params fills the arguments of action from the brief, falling back to the
// catalog examples for anything the brief does not cover.
func (r *Rules) params(action ledger.ActionID) map[string]string {
	b := r.Brief
	switch action {
	case ledger.GatherPreferences:
		pref := "accommodation"
		if len(b.Preferences) > 0 {
			pref = b.Preferences[0]
		}
		return map[string]string{"preference_type": pref}
	case ledger.BookFlight:
		return map[string]string{
			"destination":    b.Destination,
			"departure_date": b.DepartureDate,
			"return_date":    b.ReturnDate,
		}
	case ledger.BookHotel:
		name := b.Hotel
		if name == "" {
			name = "Hotel in " + b.Destination
		}
		return map[string]string{"hotel_name": name, "check_in": b.DepartureDate, "check_out": b.ReturnDate}
	case ledger.BookExperience:
		if len(b.Experiences) > 0 {
			return r.experience(0)
		}
	case ledger.ResearchLocation:
		return map[string]string{"location": b.ResearchTargets()[0]}
	case ledger.CheckTokenBalance:
		return map[string]string{"token": r.payToken()}
	}
	if a, ok := catalog.Lookup(action); ok {
		return a.ExampleParams()
	}
	return map[string]string{}
}

