// Package actions binds every worker action to its executable: typed
// parameters parsed from the decision source's string map and a handler
// producing a ledger.Outcome.
package actions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrInvalidParams = errors.New("invalid parameters")
)

// Params is the typed argument set of one action kind.
type Params interface {
	Action() ledger.ActionID
}

type PreferencesParams struct{ PreferenceType string }

type FlightParams struct {
	Destination   string
	DepartureDate string
	ReturnDate    string
}

type HotelParams struct {
	HotelName string
	CheckIn   string
	CheckOut  string
}

type ExperienceParams struct {
	Name string
	Date string
}

type LocationParams struct{ Location string }

type ConnectParams struct{}

type PaymentParams struct {
	Amount      float64
	Currency    string
	ServiceType string
}

type SwapParams struct {
	From   string
	To     string
	Amount float64
}

type BalanceParams struct{ Token string }

type TransferParams struct {
	To     string
	Token  string
	Amount float64
}

func (PreferencesParams) Action() ledger.ActionID { return ledger.GatherPreferences }
func (FlightParams) Action() ledger.ActionID      { return ledger.BookFlight }
func (HotelParams) Action() ledger.ActionID       { return ledger.BookHotel }
func (ExperienceParams) Action() ledger.ActionID  { return ledger.BookExperience }
func (LocationParams) Action() ledger.ActionID    { return ledger.ResearchLocation }
func (ConnectParams) Action() ledger.ActionID     { return ledger.ConnectBlockchain }
func (PaymentParams) Action() ledger.ActionID     { return ledger.ProcessCryptoPayment }
func (SwapParams) Action() ledger.ActionID        { return ledger.SwapTokens }
func (BalanceParams) Action() ledger.ActionID     { return ledger.CheckTokenBalance }
func (TransferParams) Action() ledger.ActionID    { return ledger.TransferTokens }

// Parse converts a raw parameter map into the typed parameters of action.
func Parse(action ledger.ActionID, raw map[string]string) (Params, error) {
	b, ok := bindings[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	p, err := b.parse(fields(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	return p, nil
}

type fields map[string]string

func (f fields) required(name string) (string, error) {
	v := strings.TrimSpace(f[name])
	if v == "" {
		return "", fmt.Errorf("%w: missing %s", ErrInvalidParams, name)
	}
	return v, nil
}

func (f fields) amount(name string) (float64, error) {
	v, err := f.required(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidParams, name, v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidParams, name)
	}
	return n, nil
}

func (f fields) symbol(name string) (string, error) {
	v, err := f.required(name)
	return strings.ToUpper(v), err
}

func parsePreferences(f fields) (Params, error) {
	v, err := f.required("preference_type")
	return PreferencesParams{PreferenceType: v}, err
}

func parseFlight(f fields) (Params, error) {
	var p FlightParams
	var err error
	if p.Destination, err = f.required("destination"); err != nil {
		return nil, err
	}
	if p.DepartureDate, err = f.required("departure_date"); err != nil {
		return nil, err
	}
	if p.ReturnDate, err = f.required("return_date"); err != nil {
		return nil, err
	}
	return p, nil
}

func parseHotel(f fields) (Params, error) {
	var p HotelParams
	var err error
	if p.HotelName, err = f.required("hotel_name"); err != nil {
		return nil, err
	}
	if p.CheckIn, err = f.required("check_in"); err != nil {
		return nil, err
	}
	if p.CheckOut, err = f.required("check_out"); err != nil {
		return nil, err
	}
	return p, nil
}

func parseExperience(f fields) (Params, error) {
	var p ExperienceParams
	var err error
	if p.Name, err = f.required("experience_name"); err != nil {
		return nil, err
	}
	if p.Date, err = f.required("date"); err != nil {
		return nil, err
	}
	return p, nil
}

func parseLocation(f fields) (Params, error) {
	v, err := f.required("location")
	return LocationParams{Location: v}, err
}

func parseConnect(fields) (Params, error) {
	return ConnectParams{}, nil
}

func parsePayment(f fields) (Params, error) {
	var p PaymentParams
	var err error
	if p.Amount, err = f.amount("amount"); err != nil {
		return nil, err
	}
	if p.Currency, err = f.symbol("currency"); err != nil {
		return nil, err
	}
	if p.ServiceType, err = f.required("service_type"); err != nil {
		return nil, err
	}
	return p, nil
}

func parseSwap(f fields) (Params, error) {
	var p SwapParams
	var err error
	if p.From, err = f.symbol("from_token"); err != nil {
		return nil, err
	}
	if p.To, err = f.symbol("to_token"); err != nil {
		return nil, err
	}
	if p.Amount, err = f.amount("amount"); err != nil {
		return nil, err
	}
	return p, nil
}

func parseBalance(f fields) (Params, error) {
	v, err := f.symbol("token")
	return BalanceParams{Token: v}, err
}

func parseTransfer(f fields) (Params, error) {
	var p TransferParams
	var err error
	if p.To, err = f.required("to_address"); err != nil {
		return nil, err
	}
	if p.Token, err = f.symbol("token"); err != nil {
		return nil, err
	}
	if p.Amount, err = f.amount("amount"); err != nil {
		return nil, err
	}
	return p, nil
}
