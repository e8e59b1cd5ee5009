package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/CodexForgeBR/travel-manager/internal/catalog"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
	"github.com/CodexForgeBR/travel-manager/internal/planner"
)

// Menu lets a person pick the next action. It implements
// planner.DecisionSource.
type Menu struct {
	p         *Prompter
	recommend func(*ledger.TripState) string
	confirm   bool
}

// NewMenu returns a menu. recommend may be nil; confirm asks for a final
// y/n before each action.
func NewMenu(p *Prompter, recommend func(*ledger.TripState) string, confirm bool) *Menu {
	return &Menu{p: p, recommend: recommend, confirm: confirm}
}

// Decide walks the user through worker, action and argument selection.
// "0", "q" or closed input quit the session. Invalid numbers and declined
// confirmations yield planner.ErrNoAction so the driver asks again.
func (m *Menu) Decide(_ context.Context, s *ledger.TripState, eligible []ledger.Choice) (planner.Proposal, error) {
	out := m.p.Out()

	if m.recommend != nil {
		ok, err := m.p.Confirm("Would you like to see what the AI recommends?")
		if err != nil {
			return planner.Proposal{}, quit(err)
		}
		if ok {
			hint := m.recommend(s)
			if hint == "" {
				hint = "the plan is covered, any remaining action will do"
			}
			fmt.Fprintf(out, "AI recommends: %s\n", hint)
		}
	}

	workers := catalog.Workers()
	showWorkers(out, workers, eligible)

	ans, err := m.p.Ask("Select worker (number, 0 to quit)")
	if err != nil {
		return planner.Proposal{}, quit(err)
	}
	if ans == "0" || strings.EqualFold(ans, "q") {
		return planner.Proposal{}, planner.ErrQuit
	}
	wi, err := strconv.Atoi(ans)
	if err != nil || wi < 1 || wi > len(workers) {
		return planner.Proposal{}, fmt.Errorf("%w: invalid worker selection %q", planner.ErrNoAction, ans)
	}
	w := workers[wi-1]

	ai, ok, err := m.p.choose(fmt.Sprintf("Select action for %s (number)", w.ID), len(w.Actions))
	if err != nil {
		return planner.Proposal{}, quit(err)
	}
	if !ok {
		return planner.Proposal{}, fmt.Errorf("%w: invalid action selection for %s", planner.ErrNoAction, w.ID)
	}
	a := w.Actions[ai]

	params := make(map[string]string, len(a.Args))
	for _, arg := range a.Args {
		v, err := m.p.Ask(fmt.Sprintf("Enter %s (%s)", arg.Name, arg.Description))
		if err != nil {
			return planner.Proposal{}, quit(err)
		}
		params[arg.Name] = v
	}

	if m.confirm {
		ok, err := m.p.Confirm(fmt.Sprintf("Confirm action: use %s to %s with parameters %s", w.ID, a.ID, FormatParams(params)))
		if err != nil {
			return planner.Proposal{}, quit(err)
		}
		if !ok {
			return planner.Proposal{}, fmt.Errorf("%w: action cancelled", planner.ErrNoAction)
		}
	}

	return planner.Proposal{Worker: w.ID, Action: a.ID, Params: params}, nil
}

func showWorkers(out io.Writer, workers []catalog.Worker, eligible []ledger.Choice) {
	active := make(map[ledger.WorkerID]bool, len(eligible))
	for _, c := range eligible {
		active[c.Worker] = true
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, heading("Available Workers:"))
	for i, w := range workers {
		mark := ""
		if !active[w.ID] {
			mark = " [no energy]"
		}
		fmt.Fprintf(out, "%d. %s - %s%s\n", i+1, strings.ToUpper(string(w.ID)), w.Description, mark)
		for j, a := range w.Actions {
			fmt.Fprintf(out, "   %d. %s - %s\n", j+1, a.ID, a.Description)
		}
	}
	fmt.Fprintln(out)
}

// FormatParams renders parameters as k=v pairs in key order.
func FormatParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// quit maps exhausted input to a graceful exit.
func quit(err error) error {
	if errors.Is(err, io.EOF) {
		return planner.ErrQuit
	}
	return err
}
