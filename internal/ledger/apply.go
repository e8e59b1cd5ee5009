package ledger

import (
	"errors"
	"fmt"
	"maps"
)

// ErrUnknownWorker is returned when an outcome names a worker outside the roster.
var ErrUnknownWorker = errors.New("unknown worker")

// Change is one field transition recorded by the applier.
type Change struct {
	Field  string `json:"field"`
	Before any    `json:"before"`
	After  any    `json:"after"`
}

// Delta is the audit record of one Apply call.
type Delta struct {
	Worker  WorkerID
	Action  EffectAction
	Applied bool
	Changes []Change
}

func (d *Delta) record(field string, before, after any) {
	d.Changes = append(d.Changes, Change{Field: field, Before: before, After: after})
}

type ruleKey struct {
	worker WorkerID
	action EffectAction
}

type workerRule func(s *TripState, w *WorkerState, e Effect, d *Delta)

// workerRules maps (worker, effect action) to the worker-specific update.
// A worker reporting an effect it does not own only gets the shared keys.
var workerRules = map[ruleKey]workerRule{
	{TravelConsultant, EffectGatherPreferences}: func(_ *TripState, w *WorkerState, e Effect, d *Delta) {
		next := ConsultationInProgress
		if e.Status != nil {
			next = *e.Status
		}
		d.record("travel_consultant.consultation_status", w.ConsultationStatus, next)
		w.ConsultationStatus = next
	},
	{FlightConsultant, EffectBookFlight}: func(_ *TripState, w *WorkerState, _ Effect, d *Delta) {
		d.record("flight_consultant.flight_booked", w.FlightBooked, true)
		w.FlightBooked = true
	},
	{HotelReservationist, EffectBookHotel}: func(_ *TripState, w *WorkerState, _ Effect, d *Delta) {
		d.record("hotel_reservationist.hotel_booked", w.HotelBooked, true)
		w.HotelBooked = true
	},
	{ExperienceCurator, EffectBookExperience}: func(_ *TripState, w *WorkerState, _ Effect, d *Delta) {
		d.record("experience_curator.experiences_booked", w.ExperiencesBooked, w.ExperiencesBooked+1)
		w.ExperiencesBooked++
	},
	{LocationCurator, EffectResearchLocation}: func(_ *TripState, w *WorkerState, _ Effect, d *Delta) {
		d.record("location_curator.locations_researched", w.LocationsResearched, w.LocationsResearched+1)
		w.LocationsResearched++
	},
	{PaymentProcessor, EffectProcessPayment}: func(s *TripState, w *WorkerState, e Effect, d *Delta) {
		d.record("payment_processor.payments_processed", w.PaymentsProcessed, w.PaymentsProcessed+1)
		w.PaymentsProcessed++
		if e.BlockchainConnected != nil {
			d.record("payment_processor.blockchain_connected", w.BlockchainConnected, *e.BlockchainConnected)
			w.BlockchainConnected = *e.BlockchainConnected
			d.record("blockchain_enabled", s.BlockchainEnabled, *e.BlockchainConnected)
			s.BlockchainEnabled = *e.BlockchainConnected
		}
	},
	{PaymentProcessor, EffectSwapTokens}: func(_ *TripState, w *WorkerState, _ Effect, d *Delta) {
		d.record("payment_processor.tokens_swapped", w.TokensSwapped, w.TokensSwapped+1)
		w.TokensSwapped++
	},
	{PaymentProcessor, EffectTransferTokens}: func(_ *TripState, w *WorkerState, _ Effect, d *Delta) {
		d.record("payment_processor.transfers_made", w.TransfersMade, w.TransfersMade+1)
		w.TransfersMade++
	},
	// check_token_balance only refreshes wallet_tokens, which the shared
	// keys already handle.
	{PaymentProcessor, EffectCheckTokenBalance}: func(*TripState, *WorkerState, Effect, *Delta) {},
}

// Apply folds a worker's action outcome into s.
//
// A failed outcome leaves s untouched and returns a Delta with Applied
// false. A successful one first charges the worker's energy (floored at
// zero), then applies the shared payload keys, then the worker rule keyed
// on the payload action.
func Apply(s *TripState, worker WorkerID, o Outcome) (Delta, error) {
	d := Delta{Worker: worker, Action: o.Effect.Action}

	decl, ok := Declared(worker)
	if !ok {
		return d, fmt.Errorf("%w: %s", ErrUnknownWorker, worker)
	}
	w, ok := s.Workers[worker]
	if !ok {
		return d, fmt.Errorf("%w: %s not in session", ErrUnknownWorker, worker)
	}

	if !o.Succeeded() {
		return d, nil
	}
	d.Applied = true

	energy := max(0, w.Energy-decl.EnergyCost)
	d.record(string(worker)+".energy", w.Energy, energy)
	w.Energy = energy

	e := o.Effect
	if e.Cost != nil {
		d.record("budget_remaining", s.BudgetRemaining, s.BudgetRemaining-*e.Cost)
		s.BudgetRemaining -= *e.Cost
	}
	if e.SatisfactionPoints != nil {
		d.record("customer_satisfaction", s.CustomerSatisfaction, s.CustomerSatisfaction+*e.SatisfactionPoints)
		s.CustomerSatisfaction += *e.SatisfactionPoints
	}
	if e.CompletionPercentage != nil {
		// Not clamped at 100: the evaluator only needs >= 100.
		d.record("trip_completeness", s.TripCompleteness, s.TripCompleteness+*e.CompletionPercentage)
		s.TripCompleteness += *e.CompletionPercentage
	}
	if e.WalletBalance != nil {
		d.record("wallet_balance", s.WalletBalance, *e.WalletBalance)
		s.WalletBalance = *e.WalletBalance
	}
	if e.WalletTokens != nil {
		next := maps.Clone(e.WalletTokens)
		d.record("wallet_tokens", s.WalletTokens, next)
		s.WalletTokens = next
	}

	if rule, ok := workerRules[ruleKey{worker, e.Action}]; ok {
		rule(s, w, e, &d)
	}
	return d, nil
}
