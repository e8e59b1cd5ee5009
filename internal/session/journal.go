package session

import (
	"context"
	"fmt"

	"github.com/CodexForgeBR/travel-manager/internal/journal"
	"github.com/CodexForgeBR/travel-manager/internal/logging"
)

// Journal writes are best effort: a failing journal never stops a session.
// Record and FinishSession run detached from cancellation so an
// interrupted session still records how it ended.

func (d *Driver) journalStart(ctx context.Context) {
	if d.Journal == nil {
		return
	}
	if err := d.Journal.StartSession(ctx, d.session.SessionID, d.Mode, d.session.Trip.BudgetRemaining); err != nil {
		logging.Warn(fmt.Sprintf("Journal unavailable: %v", err))
	}
}

func (d *Driver) journalRecord(ctx context.Context, e journal.Entry) {
	if d.Journal == nil {
		return
	}
	if err := d.Journal.Record(context.WithoutCancel(ctx), e); err != nil {
		logging.Warn(fmt.Sprintf("Failed to journal %s.%s: %v", e.Worker, e.Action, err))
	}
}

func (d *Driver) journalFinish(ctx context.Context) {
	if d.Journal == nil {
		return
	}
	err := d.Journal.FinishSession(context.WithoutCancel(ctx), d.session.SessionID, d.session.Status, d.session.TerminationReason)
	if err != nil {
		logging.Warn(fmt.Sprintf("Failed to close journal session: %v", err))
	}
}
