package ledger

import "maps"

// Status is the completion status an action executable reports.
type Status string

const (
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// EffectAction names the kind of effect a payload describes. It selects
// the worker rule the applier runs.
type EffectAction string

const (
	EffectGatherPreferences EffectAction = "gather_preferences"
	EffectBookFlight        EffectAction = "book_flight"
	EffectBookHotel         EffectAction = "book_hotel"
	EffectBookExperience    EffectAction = "book_experience"
	EffectResearchLocation  EffectAction = "research_location"
	EffectProcessPayment    EffectAction = "process_payment"
	EffectSwapTokens        EffectAction = "swap_tokens"
	EffectCheckTokenBalance EffectAction = "check_token_balance"
	EffectTransferTokens    EffectAction = "transfer_tokens"
)

// Effect is the structured payload of an outcome. Nil pointers and a nil
// WalletTokens map mean the key was absent.
type Effect struct {
	Action               EffectAction
	Cost                 *int
	SatisfactionPoints   *int
	CompletionPercentage *int
	Status               *ConsultationStatus
	BlockchainConnected  *bool
	WalletBalance        *float64
	WalletTokens         map[string]string

	// Details carries extra keys (transaction hashes, booking info). They
	// are logged but never folded into the ledger.
	Details map[string]any
}

// Outcome is what an action executable returns.
type Outcome struct {
	Status  Status
	Message string
	Effect  Effect
}

// Succeeded reports whether the outcome should be applied.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusDone
}

// Done builds a successful outcome.
func Done(msg string, e Effect) Outcome {
	return Outcome{Status: StatusDone, Message: msg, Effect: e}
}

// Failed builds a failed outcome.
func Failed(msg string, e Effect) Outcome {
	return Outcome{Status: StatusFailed, Message: msg, Effect: e}
}

// Payload renders the effect as the raw dictionary shape used in logs and
// the journal.
func (e Effect) Payload() map[string]any {
	p := make(map[string]any, len(e.Details)+8)
	maps.Copy(p, e.Details)
	if e.Action != "" {
		p["action"] = string(e.Action)
	}
	if e.Cost != nil {
		p["cost"] = *e.Cost
	}
	if e.SatisfactionPoints != nil {
		p["satisfaction_points"] = *e.SatisfactionPoints
	}
	if e.CompletionPercentage != nil {
		p["completion_percentage"] = *e.CompletionPercentage
	}
	if e.Status != nil {
		p["status"] = string(*e.Status)
	}
	if e.BlockchainConnected != nil {
		p["blockchain_connected"] = *e.BlockchainConnected
	}
	if e.WalletBalance != nil {
		p["wallet_balance"] = *e.WalletBalance
	}
	if e.WalletTokens != nil {
		p["wallet_tokens"] = maps.Clone(e.WalletTokens)
	}
	return p
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Consultation returns a pointer to v.
func Consultation(v ConsultationStatus) *ConsultationStatus { return &v }
