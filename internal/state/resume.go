package state

import (
	"fmt"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

// ResumeFromState prepares an existing snapshot for resumption in mode.
//
// The snapshot must validate, must not be complete, and must have been
// taken in the same mode: a ledger planned without a wallet cannot
// continue in a blockchain mode or the other way round. On success the
// status goes back to IN_PROGRESS and the termination reason is cleared;
// the cycle counter is kept.
func ResumeFromState(existing *SessionState, mode ledger.Mode) error {
	if err := ValidateState(existing); err != nil {
		return fmt.Errorf("state validation failed: %w", err)
	}
	if existing.Status == StatusComplete {
		return fmt.Errorf("session %s is already complete (%s)", existing.SessionID, existing.TerminationReason)
	}
	if existing.Trip.Mode != mode {
		return fmt.Errorf("session %s was started in %s mode, not %s", existing.SessionID, existing.Trip.Mode, mode)
	}

	existing.Status = StatusInProgress
	existing.TerminationReason = ledger.ReasonNone
	return nil
}
