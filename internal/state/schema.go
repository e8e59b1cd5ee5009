package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

// SchemaVersion is the version written to new snapshots.
const SchemaVersion = 1

// SessionState is the persisted state of a travel-manager session.
// Written to <state-dir>/current-state.json after every cycle.
type SessionState struct {
	SchemaVersion     int               `json:"schema_version"`
	SessionID         string            `json:"session_id"`
	StartedAt         string            `json:"started_at"`
	LastUpdated       string            `json:"last_updated"`
	Cycle             int               `json:"cycle"`
	Status            string            `json:"status"`
	Mode              ledger.Mode       `json:"mode"`
	Planner           string            `json:"planner"`
	TerminationReason ledger.Reason     `json:"termination_reason"`
	LastOutcome       string            `json:"last_outcome"`
	Trip              *ledger.TripState `json:"trip"`
}

// Status constants
const (
	StatusInProgress  = "IN_PROGRESS"
	StatusInterrupted = "INTERRUPTED"
	StatusComplete    = "COMPLETE"
	StatusCancelled   = "CANCELLED"
	StatusMaxCycles   = "MAX_CYCLES"
)

// NewSessionState starts a snapshot for trip.
func NewSessionState(mode ledger.Mode, planner string, trip *ledger.TripState) *SessionState {
	now := time.Now().UTC().Format(time.RFC3339)
	return &SessionState{
		SchemaVersion: SchemaVersion,
		SessionID:     "trip-" + uuid.NewString(),
		StartedAt:     now,
		LastUpdated:   now,
		Status:        StatusInProgress,
		Mode:          mode,
		Planner:       planner,
		Trip:          trip,
	}
}

// Touch stamps LastUpdated with the current time.
func (s *SessionState) Touch() {
	s.LastUpdated = time.Now().UTC().Format(time.RFC3339)
}
