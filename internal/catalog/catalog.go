// Package catalog describes the travel workers and their actions for the
// people and planners that choose between them: descriptions and the
// named arguments each action takes.
package catalog

import (
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

// Arg is one named string argument of an action.
type Arg struct {
	Name        string
	Description string
	Example     string
}

// Action describes an invocable action.
type Action struct {
	ID          ledger.ActionID
	Worker      ledger.WorkerID
	Description string
	Args        []Arg
}

// Worker describes a worker and its action space.
type Worker struct {
	ID          ledger.WorkerID
	Title       string
	Description string
	EnergyCost  int
	Actions     []Action
}

var workerText = map[ledger.WorkerID][2]string{
	ledger.TravelConsultant:    {"Travel Consultant", "Collects and analyzes customer travel preferences and requirements."},
	ledger.FlightConsultant:    {"Flight Consultant", "Finds and books flights that fit the customer's preferences."},
	ledger.HotelReservationist: {"Hotel Reservationist", "Books accommodation for the trip."},
	ledger.ExperienceCurator:   {"Experience Curator", "Discovers and books experiences and activities."},
	ledger.LocationCurator:     {"Location Curator", "Researches destinations and reports on locations."},
	ledger.PaymentProcessor:    {"Payment Processor", "Pays for travel services through the blockchain wallet."},
}

var actions = map[ledger.ActionID]Action{
	ledger.GatherPreferences: {
		Description: "Gather travel preferences from the customer",
		Args: []Arg{
			{"preference_type", "Type of preferences to gather (accommodation, activities, budget, ...)", "accommodation"},
		},
	},
	ledger.BookFlight: {
		Description: "Book a flight for the trip",
		Args: []Arg{
			{"destination", "Destination city or airport", "Tokyo"},
			{"departure_date", "Date of departure", "2025-04-10"},
			{"return_date", "Date of return", "2025-04-17"},
		},
	},
	ledger.BookHotel: {
		Description: "Book a hotel for the trip",
		Args: []Arg{
			{"hotel_name", "Name of the hotel", "Park Hyatt Tokyo"},
			{"check_in", "Check-in date", "2025-04-10"},
			{"check_out", "Check-out date", "2025-04-17"},
		},
	},
	ledger.BookExperience: {
		Description: "Book an experience or activity",
		Args: []Arg{
			{"experience_name", "Name of the experience or activity", "Tsukiji food tour"},
			{"date", "Date of the experience", "2025-04-12"},
		},
	},
	ledger.ResearchLocation: {
		Description: "Research information about a location",
		Args: []Arg{
			{"location", "Location to research", "Tokyo"},
		},
	},
	ledger.ConnectBlockchain: {
		Description: "Connect to the blockchain payment system",
	},
	ledger.ProcessCryptoPayment: {
		Description: "Pay for a travel service with crypto",
		Args: []Arg{
			{"amount", "Amount to pay", "25"},
			{"currency", "Token to pay with (ETH, USDC, USDT, DAI)", "USDC"},
			{"service_type", "Service being paid for (flight, hotel, experience)", "hotel"},
		},
	},
	ledger.SwapTokens: {
		Description: "Swap one token for another",
		Args: []Arg{
			{"from_token", "Token to swap from", "ETH"},
			{"to_token", "Token to swap to", "USDC"},
			{"amount", "Amount to swap", "0.01"},
		},
	},
	ledger.CheckTokenBalance: {
		Description: "Check a token balance in the wallet",
		Args: []Arg{
			{"token", "Token to check (ETH, USDC, USDT, DAI)", "USDC"},
		},
	},
	ledger.TransferTokens: {
		Description: "Transfer tokens to another address",
		Args: []Arg{
			{"to_address", "Recipient address", "0x2345678901234567890123456789012345678901"},
			{"token", "Token to transfer", "USDC"},
			{"amount", "Amount to transfer", "10"},
		},
	},
}

// Lookup returns the description of an action.
func Lookup(id ledger.ActionID) (Action, bool) {
	a, ok := actions[id]
	if !ok {
		return Action{}, false
	}
	owner, _ := ledger.Owner(id)
	a.ID = id
	a.Worker = owner
	a.Args = append([]Arg(nil), a.Args...)
	return a, true
}

// Workers returns every worker in roster order with its actions.
func Workers() []Worker {
	var out []Worker
	for _, decl := range ledger.Roster() {
		out = append(out, describe(decl))
	}
	return out
}

// LookupWorker returns the description of a single worker.
func LookupWorker(id ledger.WorkerID) (Worker, bool) {
	decl, ok := ledger.Declared(id)
	if !ok {
		return Worker{}, false
	}
	return describe(decl), true
}

func describe(decl ledger.Declaration) Worker {
	text := workerText[decl.ID]
	w := Worker{
		ID:          decl.ID,
		Title:       text[0],
		Description: text[1],
		EnergyCost:  decl.EnergyCost,
	}
	for _, id := range decl.Actions {
		if a, ok := Lookup(id); ok {
			w.Actions = append(w.Actions, a)
		}
	}
	return w
}

// JSONSchema renders the argument list of an action as a JSON object
// schema, suitable for a model tool definition.
func (a Action) JSONSchema() map[string]any {
	props := make(map[string]any, len(a.Args))
	required := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		props[arg.Name] = map[string]any{
			"type":        "string",
			"description": arg.Description,
		}
		required = append(required, arg.Name)
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// ExampleParams returns the example value of every argument.
func (a Action) ExampleParams() map[string]string {
	out := make(map[string]string, len(a.Args))
	for _, arg := range a.Args {
		out[arg.Name] = arg.Example
	}
	return out
}
