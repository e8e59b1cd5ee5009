// Package session runs the trip planning loop: evaluate termination, ask
// the decision source for an eligible action, execute it, fold the outcome
// into the ledger, persist, repeat.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CodexForgeBR/travel-manager/internal/banner"
	"github.com/CodexForgeBR/travel-manager/internal/config"
	"github.com/CodexForgeBR/travel-manager/internal/exitcode"
	"github.com/CodexForgeBR/travel-manager/internal/journal"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
	"github.com/CodexForgeBR/travel-manager/internal/logging"
	"github.com/CodexForgeBR/travel-manager/internal/planner"
	"github.com/CodexForgeBR/travel-manager/internal/state"
)

// Executor runs the external executable bound to an action.
type Executor interface {
	Execute(ctx context.Context, action ledger.ActionID, params map[string]string) ledger.Outcome
}

// FeedbackSource collects the operator's optional nudges.
type FeedbackSource interface {
	Collect() (ledger.Feedback, error)
}

// Wallet is the payment channel snapshot a blockchain session starts with.
type Wallet struct {
	Balance float64
	Tokens  map[string]string
}

// Driver owns the trip ledger for one session.
type Driver struct {
	Config   *config.Config
	Mode     ledger.Mode
	StateDir string
	Source   planner.DecisionSource
	Executor Executor

	// Optional collaborators.
	Feedback FeedbackSource
	Journal  journal.Recorder
	Wallet   *Wallet

	session   *state.SessionState
	startTime time.Time
}

// NewDriver creates a driver for cfg. The mode must already be validated.
func NewDriver(cfg *config.Config, mode ledger.Mode, source planner.DecisionSource, exec Executor) *Driver {
	return &Driver{
		Config:   cfg,
		Mode:     mode,
		StateDir: cfg.StateDir,
		Source:   source,
		Executor: exec,
	}
}

// Session returns the current snapshot, or nil before Run.
func (d *Driver) Session() *state.SessionState {
	return d.session
}

// Run executes the session and returns an exit code.
func (d *Driver) Run(ctx context.Context) int {
	d.startTime = time.Now()

	if code := d.phaseStateFlags(); code >= 0 {
		return code
	}

	if code := d.phaseInit(); code >= 0 {
		return code
	}

	banner.PrintStartupBanner(d.session.SessionID, d.Mode, d.Config.Planner, d.session.Trip.BudgetRemaining)
	d.journalStart(ctx)

	return d.phaseLoop(ctx)
}

// phaseStateFlags handles --status and --clean.
func (d *Driver) phaseStateFlags() int {
	if d.Config.Status {
		if existing, err := state.LoadState(d.StateDir); err == nil {
			banner.PrintStatusBanner(existing)
		} else {
			logging.Info("No saved session found.")
		}
		return exitcode.Success
	}

	if d.Config.Clean {
		logging.Info("Cleaning saved session state...")
		if err := state.ClearState(d.StateDir); err != nil {
			logging.Warn(fmt.Sprintf("Failed to remove saved state: %v", err))
		}
	}
	return -1
}

func (d *Driver) phaseInit() int {
	logging.Phase("Initializing session")

	if err := state.InitStateDir(d.StateDir); err != nil {
		logging.Error(fmt.Sprintf("Failed to init state dir: %v", err))
		return exitcode.Error
	}

	if d.Config.Resume {
		existing, err := state.LoadState(d.StateDir)
		if err != nil {
			logging.Error(fmt.Sprintf("Cannot resume: %v", err))
			return exitcode.Error
		}
		if err := state.ResumeFromState(existing, d.Mode); err != nil {
			logging.Error(fmt.Sprintf("Cannot resume: %v", err))
			return exitcode.Error
		}
		existing.Trip = ledger.Reset(d.Mode, d.Config.InitialBudget, existing.Trip)
		d.session = existing
		logging.Info(fmt.Sprintf("Resuming session %s at cycle %d", existing.SessionID, existing.Cycle))
		if d.Wallet != nil {
			// The channel is reopened on resume; its snapshot replaces the saved mirror.
			ledger.InitBlockchain(existing.Trip, d.Wallet.Balance, d.Wallet.Tokens)
			logging.Info("Wallet snapshot refreshed from the payment channel")
			d.save("resumed")
		}
		return -1
	}

	trip := ledger.NewTripState(d.Mode, d.Config.InitialBudget)
	if d.Wallet != nil {
		ledger.InitBlockchain(trip, d.Wallet.Balance, d.Wallet.Tokens)
	}
	d.session = state.NewSessionState(d.Mode, d.Config.Planner, trip)
	d.save("initial")
	return -1
}

func (d *Driver) phaseLoop(ctx context.Context) int {
	logging.Phase("Planning trip")
	trip := d.session.Trip

	for {
		if done, reason := ledger.Evaluate(trip); done {
			return d.finish(ctx, reason)
		}

		if ctx.Err() != nil {
			return d.interrupted(ctx)
		}

		if d.session.Cycle >= d.Config.MaxCycles {
			return d.maxCycles(ctx)
		}

		d.session.Cycle++
		d.session.Touch()
		banner.PrintCycleStatus(d.session.Cycle, trip)

		eligible := ledger.Eligible(trip)
		p, err := d.Source.Decide(ctx, trip.Clone(), eligible)
		switch {
		case err == nil:
		case errors.Is(err, planner.ErrQuit):
			return d.cancelled(ctx)
		case ctx.Err() != nil:
			return d.interrupted(ctx)
		case errors.Is(err, planner.ErrNoAction):
			logging.Warn(fmt.Sprintf("No action this cycle: %v", err))
			d.save("cycle")
			continue
		default:
			logging.Error(fmt.Sprintf("Decision source failed: %v", err))
			d.save("failed")
			banner.PrintErrorBanner(err.Error())
			return exitcode.Error
		}

		if !ledger.IsEligible(trip, p.Worker, p.Action) {
			logging.Warn(fmt.Sprintf("Rejected %s.%s: not an eligible action right now", p.Worker, p.Action))
			d.session.LastOutcome = fmt.Sprintf("%s.%s: rejected, not eligible", p.Worker, p.Action)
			d.save("cycle")
			continue
		}

		if err := d.step(ctx, p); err != nil {
			logging.Error(err.Error())
			d.save("failed")
			banner.PrintErrorBanner(err.Error())
			return exitcode.Error
		}
		d.save("cycle")
	}
}

// step executes one eligible proposal and folds the outcome into the ledger.
func (d *Driver) step(ctx context.Context, p planner.Proposal) error {
	trip := d.session.Trip
	logging.Info(fmt.Sprintf("%s → %s", p.Worker, p.Action))

	o := d.Executor.Execute(ctx, p.Action, p.Params)

	before := trip.Clone()
	delta, err := ledger.Apply(trip, p.Worker, o)
	if err != nil {
		return fmt.Errorf("apply %s.%s: %w", p.Worker, p.Action, err)
	}

	if o.Succeeded() {
		logging.Success(o.Message)
	} else {
		logging.Warn(fmt.Sprintf("Action failed: %s", o.Message))
	}
	logging.Payload(string(p.Worker), o.Effect.Payload())
	for _, c := range delta.Changes {
		logging.Delta(c.Field, c.Before, c.After)
	}

	if obs, ok := d.Source.(planner.Observer); ok {
		obs.Observe(p, o)
	}

	d.session.LastOutcome = fmt.Sprintf("%s.%s: %s: %s", p.Worker, p.Action, o.Status, o.Message)
	d.journalRecord(ctx, journal.NewEntry(d.session.SessionID, d.session.Cycle, p.Worker, p.Action, o, delta, before, trip))

	if d.Mode.HumanDriven() && d.Feedback != nil {
		d.collectFeedback(ctx)
	}
	return nil
}

func (d *Driver) collectFeedback(ctx context.Context) {
	trip := d.session.Trip
	fb, err := d.Feedback.Collect()
	if err != nil {
		logging.Warn(fmt.Sprintf("Feedback skipped: %v", err))
		return
	}
	if fb.Satisfaction == nil && fb.Completeness == nil {
		return
	}

	before := trip.Clone()
	delta, err := ledger.ApplyFeedback(trip, fb)
	if err != nil {
		logging.Warn(fmt.Sprintf("Feedback partly ignored: %v", err))
	}
	if !delta.Applied {
		return
	}
	for _, c := range delta.Changes {
		logging.Delta(c.Field, c.Before, c.After)
	}
	d.journalRecord(ctx, journal.Entry{
		SessionID:          d.session.SessionID,
		Cycle:              d.session.Cycle,
		Worker:             "operator",
		Action:             "feedback",
		Status:             string(ledger.StatusDone),
		Message:            "operator feedback",
		Changes:            delta.Changes,
		BudgetBefore:       before.BudgetRemaining,
		BudgetAfter:        trip.BudgetRemaining,
		SatisfactionBefore: before.CustomerSatisfaction,
		SatisfactionAfter:  trip.CustomerSatisfaction,
		CompletenessBefore: before.TripCompleteness,
		CompletenessAfter:  trip.TripCompleteness,
	})
}

func (d *Driver) finish(ctx context.Context, reason ledger.Reason) int {
	d.session.Status = state.StatusComplete
	d.session.TerminationReason = reason
	d.save("complete")
	d.journalFinish(ctx)
	banner.PrintTerminationBanner(reason, d.session.Cycle, d.elapsed(), d.session.Trip)
	return exitcode.Success
}

func (d *Driver) cancelled(ctx context.Context) int {
	d.session.Status = state.StatusCancelled
	d.save("cancelled")
	d.journalFinish(ctx)
	banner.PrintCancelledBanner(d.session.Cycle)
	return exitcode.Success
}

func (d *Driver) interrupted(ctx context.Context) int {
	d.session.Status = state.StatusInterrupted
	d.save("interrupted")
	d.journalFinish(ctx)
	banner.PrintInterruptedBanner(d.session.Cycle)
	return exitcode.Interrupted
}

func (d *Driver) maxCycles(ctx context.Context) int {
	d.session.Status = state.StatusMaxCycles
	d.save("max cycles")
	d.journalFinish(ctx)
	banner.PrintMaxCyclesBanner(d.session.Cycle, d.Config.MaxCycles)
	return exitcode.MaxCycles
}

func (d *Driver) elapsed() int {
	return int(time.Since(d.startTime).Seconds())
}

func (d *Driver) save(what string) {
	d.session.Touch()
	if err := state.SaveState(d.session, d.StateDir); err != nil {
		logging.Warn(fmt.Sprintf("Failed to save %s state: %v", what, err))
	}
}
