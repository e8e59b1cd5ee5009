// Package ledger holds the trip progress ledger: the shared trip state,
// the rules that fold completed worker actions into it, the eligibility
// filter and the termination evaluator.
//
// Every function in this package is synchronous and free of I/O. The
// session driver owns the TripState and is the only caller that mutates it.
package ledger

// WorkerID identifies one of the fixed travel workers.
type WorkerID string

// Worker identifiers. The set is closed; a session always carries all six.
const (
	TravelConsultant    WorkerID = "travel_consultant"
	FlightConsultant    WorkerID = "flight_consultant"
	HotelReservationist WorkerID = "hotel_reservationist"
	ExperienceCurator   WorkerID = "experience_curator"
	LocationCurator     WorkerID = "location_curator"
	PaymentProcessor    WorkerID = "payment_processor"
)

// ActionID identifies an invocable worker action.
type ActionID string

// Invocable actions, grouped by owning worker.
const (
	GatherPreferences    ActionID = "gather_preferences"
	BookFlight           ActionID = "book_flight"
	BookHotel            ActionID = "book_hotel"
	BookExperience       ActionID = "book_experience"
	ResearchLocation     ActionID = "research_location"
	ConnectBlockchain    ActionID = "connect_blockchain"
	ProcessCryptoPayment ActionID = "process_crypto_payment"
	SwapTokens           ActionID = "swap_tokens"
	CheckTokenBalance    ActionID = "check_token_balance"
	TransferTokens       ActionID = "transfer_tokens"
)

// Defaults used when a session is created without overrides.
const (
	DefaultEnergy = 100
	DefaultBudget = 1000
)

// Declaration describes a worker, its per-action energy cost and the
// actions it may be asked to perform.
type Declaration struct {
	ID         WorkerID
	EnergyCost int
	Actions    []ActionID
}

var roster = []Declaration{
	{ID: TravelConsultant, EnergyCost: 10, Actions: []ActionID{GatherPreferences}},
	{ID: FlightConsultant, EnergyCost: 20, Actions: []ActionID{BookFlight}},
	{ID: HotelReservationist, EnergyCost: 15, Actions: []ActionID{BookHotel}},
	{ID: ExperienceCurator, EnergyCost: 10, Actions: []ActionID{BookExperience}},
	{ID: LocationCurator, EnergyCost: 15, Actions: []ActionID{ResearchLocation}},
	{ID: PaymentProcessor, EnergyCost: 15, Actions: []ActionID{
		ConnectBlockchain,
		ProcessCryptoPayment,
		SwapTokens,
		CheckTokenBalance,
		TransferTokens,
	}},
}

// Roster returns the worker declarations in their canonical order.
func Roster() []Declaration {
	out := make([]Declaration, len(roster))
	for i, w := range roster {
		out[i] = Declaration{
			ID:         w.ID,
			EnergyCost: w.EnergyCost,
			Actions:    append([]ActionID(nil), w.Actions...),
		}
	}
	return out
}

// Declared looks up the declaration of a worker.
func Declared(id WorkerID) (Declaration, bool) {
	for _, w := range roster {
		if w.ID == id {
			return w, true
		}
	}
	return Declaration{}, false
}

// Owner returns the worker that declares the given action.
func Owner(action ActionID) (WorkerID, bool) {
	for _, w := range roster {
		for _, a := range w.Actions {
			if a == action {
				return w.ID, true
			}
		}
	}
	return "", false
}

// Declares reports whether worker declares action.
func Declares(worker WorkerID, action ActionID) bool {
	owner, ok := Owner(action)
	return ok && owner == worker
}
