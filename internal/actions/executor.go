package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
	"github.com/CodexForgeBR/travel-manager/internal/payment"
)

// ErrNoChannel is reported when a payment action runs without a wallet.
var ErrNoChannel = errors.New("blockchain payments are not connected")

// DefaultPayToken is the token whose balance is mirrored into wallet_balance.
const DefaultPayToken = "USDC"

// Executor runs worker actions. The travel actions are scripted; the
// payment actions go through Channel, which is nil outside blockchain modes.
type Executor struct {
	Channel  payment.Channel
	Services *payment.ServiceRegistry
	PayToken string
}

// NewExecutor returns an executor paying through ch. ch may be nil.
func NewExecutor(ch payment.Channel, payToken string) *Executor {
	if payToken == "" {
		payToken = DefaultPayToken
	}
	return &Executor{Channel: ch, Services: payment.NewServiceRegistry(), PayToken: payToken}
}

type binding struct {
	effect ledger.EffectAction
	parse  func(fields) (Params, error)
	run    func(ctx context.Context, e *Executor, p Params) (string, ledger.Effect, error)
}

// bindings is the single dispatch table from action to executable.
var bindings = map[ledger.ActionID]binding{
	ledger.GatherPreferences:    {ledger.EffectGatherPreferences, parsePreferences, runGatherPreferences},
	ledger.BookFlight:           {ledger.EffectBookFlight, parseFlight, runBookFlight},
	ledger.BookHotel:            {ledger.EffectBookHotel, parseHotel, runBookHotel},
	ledger.BookExperience:       {ledger.EffectBookExperience, parseExperience, runBookExperience},
	ledger.ResearchLocation:     {ledger.EffectResearchLocation, parseLocation, runResearchLocation},
	ledger.ConnectBlockchain:    {ledger.EffectProcessPayment, parseConnect, runConnectBlockchain},
	ledger.ProcessCryptoPayment: {ledger.EffectProcessPayment, parsePayment, runProcessPayment},
	ledger.SwapTokens:           {ledger.EffectSwapTokens, parseSwap, runSwapTokens},
	ledger.CheckTokenBalance:    {ledger.EffectCheckTokenBalance, parseBalance, runCheckTokenBalance},
	ledger.TransferTokens:       {ledger.EffectTransferTokens, parseTransfer, runTransferTokens},
}

// EffectOf returns the payload action an invocation of action reports.
func EffectOf(action ledger.ActionID) (ledger.EffectAction, bool) {
	b, ok := bindings[action]
	return b.effect, ok
}

// Execute runs action with raw parameters. Every failure, from bad
// parameters to a channel error, comes back as a failed outcome carrying
// the error in its payload; Execute itself never fails.
func (e *Executor) Execute(ctx context.Context, action ledger.ActionID, raw map[string]string) ledger.Outcome {
	b, ok := bindings[action]
	if !ok {
		return failure(ledger.Effect{}, fmt.Errorf("%w: %s", ErrUnknownAction, action))
	}
	p, err := b.parse(fields(raw))
	if err != nil {
		return failure(ledger.Effect{Action: b.effect}, err)
	}
	return e.run(ctx, b, p)
}

// ExecuteParams runs already-typed parameters.
func (e *Executor) ExecuteParams(ctx context.Context, p Params) ledger.Outcome {
	b, ok := bindings[p.Action()]
	if !ok {
		return failure(ledger.Effect{}, fmt.Errorf("%w: %s", ErrUnknownAction, p.Action()))
	}
	return e.run(ctx, b, p)
}

func (e *Executor) run(ctx context.Context, b binding, p Params) ledger.Outcome {
	msg, effect, err := b.run(ctx, e, p)
	effect.Action = b.effect
	if err != nil {
		return failure(effect, err)
	}
	return ledger.Done(msg, effect)
}

func failure(effect ledger.Effect, err error) ledger.Outcome {
	if effect.Details == nil {
		effect.Details = map[string]any{}
	}
	effect.Details["error"] = err.Error()
	return ledger.Failed(fmt.Sprintf("Error: %v", err), effect)
}

func runGatherPreferences(_ context.Context, _ *Executor, p Params) (string, ledger.Effect, error) {
	pp := p.(PreferencesParams)
	return fmt.Sprintf("Preferences for %s gathered!", pp.PreferenceType), ledger.Effect{
		Status:               ledger.Consultation(ledger.ConsultationCompleted),
		SatisfactionPoints:   ledger.Int(5),
		CompletionPercentage: ledger.Int(10),
		Details:              map[string]any{"preference_type": pp.PreferenceType},
	}, nil
}

func runBookFlight(_ context.Context, _ *Executor, p Params) (string, ledger.Effect, error) {
	fp := p.(FlightParams)
	return fmt.Sprintf("Flight to %s booked successfully!", fp.Destination), ledger.Effect{
		Cost:                 ledger.Int(300),
		SatisfactionPoints:   ledger.Int(15),
		CompletionPercentage: ledger.Int(25),
		Details: map[string]any{
			"destination":    fp.Destination,
			"departure_date": fp.DepartureDate,
			"return_date":    fp.ReturnDate,
		},
	}, nil
}

func runBookHotel(_ context.Context, _ *Executor, p Params) (string, ledger.Effect, error) {
	hp := p.(HotelParams)
	return fmt.Sprintf("Hotel %s booked successfully!", hp.HotelName), ledger.Effect{
		Cost:                 ledger.Int(200),
		SatisfactionPoints:   ledger.Int(10),
		CompletionPercentage: ledger.Int(20),
		Details: map[string]any{
			"hotel_name": hp.HotelName,
			"check_in":   hp.CheckIn,
			"check_out":  hp.CheckOut,
		},
	}, nil
}

func runBookExperience(_ context.Context, _ *Executor, p Params) (string, ledger.Effect, error) {
	ep := p.(ExperienceParams)
	return fmt.Sprintf("Experience %s booked successfully!", ep.Name), ledger.Effect{
		Cost:                 ledger.Int(50),
		SatisfactionPoints:   ledger.Int(8),
		CompletionPercentage: ledger.Int(5),
		Details:              map[string]any{"experience_name": ep.Name, "date": ep.Date},
	}, nil
}

func runResearchLocation(_ context.Context, _ *Executor, p Params) (string, ledger.Effect, error) {
	lp := p.(LocationParams)
	return fmt.Sprintf("Research on %s completed!", lp.Location), ledger.Effect{
		SatisfactionPoints:   ledger.Int(3),
		CompletionPercentage: ledger.Int(5),
		Details:              map[string]any{"location": lp.Location},
	}, nil
}

func runConnectBlockchain(ctx context.Context, e *Executor, _ Params) (string, ledger.Effect, error) {
	if e.Channel == nil {
		return "", ledger.Effect{}, ErrNoChannel
	}
	tokens, err := e.Channel.GetWalletBalance(ctx)
	if err != nil {
		return "", ledger.Effect{}, fmt.Errorf("read wallet balance: %w", err)
	}
	return "Connected to blockchain payment system!", ledger.Effect{
		BlockchainConnected:  ledger.Bool(true),
		WalletBalance:        ledger.Float(payment.ParseBalance(tokens, e.PayToken)),
		WalletTokens:         tokens,
		SatisfactionPoints:   ledger.Int(5),
		CompletionPercentage: ledger.Int(5),
		Details: map[string]any{
			"payment_type": "blockchain_connection",
			"address":      e.Channel.Address(),
		},
	}, nil
}

func runProcessPayment(ctx context.Context, e *Executor, p Params) (string, ledger.Effect, error) {
	pp := p.(PaymentParams)
	details := map[string]any{
		"payment_type": "crypto",
		"amount":       pp.Amount,
		"currency":     pp.Currency,
		"service_type": pp.ServiceType,
	}
	if e.Channel == nil {
		return "", ledger.Effect{Details: details}, ErrNoChannel
	}
	recipient := e.Services.RecipientFor(pp.ServiceType)
	details["recipient"] = recipient

	tx, err := e.Channel.ProcessPayment(ctx, pp.Currency, pp.Amount, pp.ServiceType, recipient)
	if err != nil {
		return "", ledger.Effect{Details: details}, fmt.Errorf("process payment: %w", err)
	}
	details["transaction_hash"] = tx

	tokens, err := e.Channel.GetWalletBalance(ctx)
	if err != nil {
		return "", ledger.Effect{Details: details}, fmt.Errorf("read wallet balance: %w", err)
	}
	return fmt.Sprintf("Processed %s %s payment for %s!", payment.FormatAmount(pp.Amount), pp.Currency, pp.ServiceType), ledger.Effect{
		Cost:                 ledger.Int(0),
		SatisfactionPoints:   ledger.Int(10),
		CompletionPercentage: ledger.Int(10),
		WalletBalance:        ledger.Float(payment.ParseBalance(tokens, e.PayToken)),
		WalletTokens:         tokens,
		Details:              details,
	}, nil
}

func runSwapTokens(ctx context.Context, e *Executor, p Params) (string, ledger.Effect, error) {
	sp := p.(SwapParams)
	if e.Channel == nil {
		return "", ledger.Effect{}, ErrNoChannel
	}
	res, err := e.Channel.SwapTokens(ctx, sp.From, sp.To, sp.Amount)
	if err != nil {
		return "", ledger.Effect{}, fmt.Errorf("swap tokens: %w", err)
	}
	tokens, err := e.Channel.GetWalletBalance(ctx)
	if err != nil {
		return "", ledger.Effect{}, fmt.Errorf("read wallet balance: %w", err)
	}
	return fmt.Sprintf("Swapped %s %s to %s!", payment.FormatAmount(sp.Amount), sp.From, sp.To), ledger.Effect{
		SatisfactionPoints: ledger.Int(5),
		WalletBalance:      ledger.Float(payment.ParseBalance(tokens, e.PayToken)),
		WalletTokens:       tokens,
		Details: map[string]any{
			"from_token":       res.From,
			"to_token":         res.To,
			"amount":           res.Amount,
			"received_amount":  res.Received,
			"transaction_hash": res.TxHash,
		},
	}, nil
}

func runCheckTokenBalance(ctx context.Context, e *Executor, p Params) (string, ledger.Effect, error) {
	bp := p.(BalanceParams)
	if e.Channel == nil {
		return "", ledger.Effect{}, ErrNoChannel
	}
	tokens, err := e.Channel.GetWalletBalance(ctx)
	if err != nil {
		return "", ledger.Effect{}, fmt.Errorf("read wallet balance: %w", err)
	}
	balance, ok := tokens[bp.Token]
	if !ok {
		balance = "0"
	}
	return fmt.Sprintf("Balance for %s: %s", bp.Token, balance), ledger.Effect{
		SatisfactionPoints: ledger.Int(1),
		WalletBalance:      ledger.Float(payment.ParseBalance(tokens, e.PayToken)),
		WalletTokens:       tokens,
		Details:            map[string]any{"token": bp.Token, "balance": balance},
	}, nil
}

func runTransferTokens(ctx context.Context, e *Executor, p Params) (string, ledger.Effect, error) {
	tp := p.(TransferParams)
	if e.Channel == nil {
		return "", ledger.Effect{}, ErrNoChannel
	}
	tx, err := e.Channel.TransferTokens(ctx, tp.To, tp.Token, tp.Amount)
	if err != nil {
		return "", ledger.Effect{}, fmt.Errorf("transfer tokens: %w", err)
	}
	tokens, err := e.Channel.GetWalletBalance(ctx)
	if err != nil {
		return "", ledger.Effect{}, fmt.Errorf("read wallet balance: %w", err)
	}
	return fmt.Sprintf("Transferred %s %s to %s!", payment.FormatAmount(tp.Amount), tp.Token, tp.To), ledger.Effect{
		SatisfactionPoints: ledger.Int(5),
		WalletBalance:      ledger.Float(payment.ParseBalance(tokens, e.PayToken)),
		WalletTokens:       tokens,
		Details: map[string]any{
			"to_address":       tp.To,
			"token":            tp.Token,
			"amount":           tp.Amount,
			"transaction_hash": tx,
		},
	}, nil
}
