package ledger

import (
	"fmt"
	"maps"
	"strings"
)

// Mode is the interaction mode of a planning session. It is fixed at
// session start.
type Mode string

const (
	ModeAutomatic      Mode = "automatic"
	ModeInteractive    Mode = "interactive"
	ModeBlockchainAuto Mode = "blockchain_auto"
	ModeBlockchainChat Mode = "blockchain_chat"
)

// HumanDriven reports whether a person picks the actions in this mode.
func (m Mode) HumanDriven() bool {
	return m == ModeInteractive || m == ModeBlockchainChat
}

// Blockchain reports whether this mode initializes a payment channel.
func (m Mode) Blockchain() bool {
	return m == ModeBlockchainAuto || m == ModeBlockchainChat
}

// ParseMode accepts both the CLI spelling ("blockchain-auto", "auto") and
// the canonical one ("blockchain_auto", "automatic").
func ParseMode(s string) (Mode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "auto", "automatic":
		return ModeAutomatic, nil
	case "interactive":
		return ModeInteractive, nil
	case "blockchain_auto":
		return ModeBlockchainAuto, nil
	case "blockchain_chat":
		return ModeBlockchainChat, nil
	default:
		return "", fmt.Errorf("unknown interaction mode %q", s)
	}
}

// ConsultationStatus tracks the travel consultant's preference gathering.
type ConsultationStatus string

const (
	ConsultationNotStarted ConsultationStatus = "not_started"
	ConsultationInProgress ConsultationStatus = "in_progress"
	ConsultationCompleted  ConsultationStatus = "completed"
)

// WorkerState is the per-worker slice of the ledger. Only the fields
// relevant to a worker ever change for it; the rest stay zero.
type WorkerState struct {
	Energy              int                `json:"energy"`
	ConsultationStatus  ConsultationStatus `json:"consultation_status,omitempty"`
	FlightBooked        bool               `json:"flight_booked,omitempty"`
	HotelBooked         bool               `json:"hotel_booked,omitempty"`
	ExperiencesBooked   int                `json:"experiences_booked,omitempty"`
	LocationsResearched int                `json:"locations_researched,omitempty"`
	PaymentsProcessed   int                `json:"payments_processed,omitempty"`
	TokensSwapped       int                `json:"tokens_swapped,omitempty"`
	TransfersMade       int                `json:"transfers_made,omitempty"`
	BlockchainConnected bool               `json:"blockchain_connected,omitempty"`
}

// TripState is the single aggregate mutated over a planning session.
type TripState struct {
	BudgetRemaining      int                       `json:"budget_remaining"`
	CustomerSatisfaction int                       `json:"customer_satisfaction"`
	TripCompleteness     int                       `json:"trip_completeness"`
	Mode                 Mode                      `json:"interaction_mode"`
	BlockchainEnabled    bool                      `json:"blockchain_enabled"`
	WalletBalance        float64                   `json:"wallet_balance"`
	WalletTokens         map[string]string         `json:"wallet_tokens"`
	Workers              map[WorkerID]*WorkerState `json:"worker_states"`
}

// DefaultWalletTokens is the token snapshot of a fresh session.
func DefaultWalletTokens() map[string]string {
	return map[string]string{"ETH": "0", "USDC": "0", "USDT": "0", "DAI": "0"}
}

// NewTripState builds a fresh ledger. Each call returns an independent value.
func NewTripState(mode Mode, budget int) *TripState {
	s := &TripState{
		BudgetRemaining: budget,
		Mode:            mode,
		WalletTokens:    DefaultWalletTokens(),
		Workers:         make(map[WorkerID]*WorkerState, len(roster)),
	}
	for _, w := range roster {
		ws := &WorkerState{Energy: DefaultEnergy}
		if w.ID == TravelConsultant {
			ws.ConsultationStatus = ConsultationNotStarted
		}
		s.Workers[w.ID] = ws
	}
	return s
}

// Reset returns a deep copy of override, or a fresh ledger when override is nil.
func Reset(mode Mode, budget int, override *TripState) *TripState {
	if override == nil {
		return NewTripState(mode, budget)
	}
	return override.Clone()
}

// InitBlockchain records that the session's payment channel is live,
// along with the wallet snapshot it reported. The payment processor's
// blockchain_connected flag is left alone: only a connect_blockchain
// outcome sets it.
func InitBlockchain(s *TripState, balance float64, tokens map[string]string) {
	s.BlockchainEnabled = true
	s.WalletBalance = balance
	if tokens != nil {
		s.WalletTokens = maps.Clone(tokens)
	}
}

// Clone deep-copies the state.
func (s *TripState) Clone() *TripState {
	c := *s
	c.WalletTokens = maps.Clone(s.WalletTokens)
	c.Workers = make(map[WorkerID]*WorkerState, len(s.Workers))
	for id, w := range s.Workers {
		ws := *w
		c.Workers[id] = &ws
	}
	return &c
}

// Worker returns the state of one worker.
func (s *TripState) Worker(id WorkerID) (*WorkerState, bool) {
	w, ok := s.Workers[id]
	return w, ok
}

// Validate checks that a state loaded from outside the session (for
// example a resumed snapshot) carries exactly the roster's workers.
func (s *TripState) Validate() error {
	if len(s.Workers) != len(roster) {
		return fmt.Errorf("expected %d workers, got %d", len(roster), len(s.Workers))
	}
	for _, w := range roster {
		ws, ok := s.Workers[w.ID]
		if !ok || ws == nil {
			return fmt.Errorf("missing worker %s", w.ID)
		}
		if ws.Energy < 0 {
			return fmt.Errorf("worker %s has negative energy %d", w.ID, ws.Energy)
		}
	}
	if _, err := ParseMode(string(s.Mode)); err != nil {
		return err
	}
	return nil
}
