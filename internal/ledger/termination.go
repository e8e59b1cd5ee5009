package ledger

// Reason explains why a session stopped.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonAllWorkersDepleted Reason = "ALL_WORKERS_DEPLETED"
	ReasonTripComplete       Reason = "TRIP_COMPLETE"
	ReasonBudgetExhausted    Reason = "BUDGET_EXHAUSTED"
)

// CompletionTarget is the completeness at which a trip counts as planned.
const CompletionTarget = 100

// Evaluate decides whether the session must stop. Conditions are checked
// in a fixed order and the first match wins.
func Evaluate(s *TripState) (bool, Reason) {
	if len(ActiveWorkers(s)) == 0 {
		return true, ReasonAllWorkersDepleted
	}
	if s.TripCompleteness >= CompletionTarget {
		return true, ReasonTripComplete
	}
	if s.BudgetRemaining <= 0 && (!s.BlockchainEnabled || s.WalletBalance <= 0) {
		return true, ReasonBudgetExhausted
	}
	return false, ReasonNone
}
