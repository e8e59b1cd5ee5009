// Package banner provides colored banner display functions for the
// travel-manager CLI.
//
// Banners mark session transitions: startup, the per-cycle ledger status
// line, the termination summary, interrupts and the --status report.
package banner

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/CodexForgeBR/travel-manager/internal/ledger"
	"github.com/CodexForgeBR/travel-manager/internal/logging"
	"github.com/CodexForgeBR/travel-manager/internal/state"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
	dimColor     = color.New(color.Faint).SprintFunc()
)

const rule = "═══════════════════════════════════════════════════"

var out io.Writer = os.Stdout

// SetOutput redirects banner output. A nil writer restores stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

func writeln(a ...any)                { fmt.Fprintln(out, a...) }
func writef(format string, a ...any) { fmt.Fprintf(out, format, a...) }

// PrintStartupBanner displays the startup banner with session info.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  travel-manager - Trip Planning Session
//	═══════════════════════════════════════════════════
//	  Session:    trip-5f0c...
//	  Mode:       interactive
//	  Planner:    anthropic
//	  Budget:     $1000
//	═══════════════════════════════════════════════════
func PrintStartupBanner(sessionID string, mode ledger.Mode, planner string, budget int) {
	sep := headerColor(rule)
	writeln(sep)
	writeln(headerColor("  travel-manager - Trip Planning Session"))
	writeln(sep)
	writef("  Session:    %s\n", sessionID)
	writef("  Mode:       %s\n", mode)
	writef("  Planner:    %s\n", planner)
	writef("  Budget:     $%d\n", budget)
	writeln(sep)
}

// PrintCycleStatus prints the ledger headline before each decision.
// Wallet figures appear only once the payment channel is live.
func PrintCycleStatus(cycle int, s *ledger.TripState) {
	writeln(headerColor(fmt.Sprintf("── Cycle %d ──", cycle)))
	writef("  Budget: $%d │ Satisfaction: %d │ Completeness: %d%%\n",
		s.BudgetRemaining, s.CustomerSatisfaction, s.TripCompleteness)
	if s.BlockchainEnabled {
		writef("  Wallet: %.4f ETH │ Tokens: %s\n", s.WalletBalance, FormatTokens(s.WalletTokens))
	}
}

// FormatTokens renders a token snapshot as "DAI=0, ETH=0.1, ..." in
// symbol order.
func FormatTokens(tokens map[string]string) string {
	if len(tokens) == 0 {
		return "none"
	}
	symbols := make([]string, 0, len(tokens))
	for sym := range tokens {
		symbols = append(symbols, sym)
	}
	slices.Sort(symbols)
	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		parts[i] = sym + "=" + tokens[sym]
	}
	return strings.Join(parts, ", ")
}

// PrintTerminationBanner displays why the session stopped along with the
// final ledger figures.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✓ Trip planning complete!
//	  Cycles:       9
//	  Duration:     2m 10s (130s)
//	  Budget left:  $400
//	  Satisfaction: 70
//	  Completeness: 100%
//	═══════════════════════════════════════════════════
func PrintTerminationBanner(reason ledger.Reason, cycles int, durationSecs int, s *ledger.TripState) {
	paint := warnColor
	title := "  ⚠ All workers are out of energy"
	switch reason {
	case ledger.ReasonTripComplete:
		paint = successColor
		title = "  ✓ Trip planning complete!"
	case ledger.ReasonBudgetExhausted:
		paint = errorColor
		title = "  ✗ Budget exhausted"
	}

	sep := paint(rule)
	writeln(sep)
	writeln(paint(title))
	writef("  Cycles:       %d\n", cycles)
	writef("  Duration:     %s (%ds)\n", logging.FormatDuration(durationSecs), durationSecs)
	printLedger(s)
	writeln(sep)
}

// PrintCancelledBanner displays when the traveller quits the session.
func PrintCancelledBanner(cycle int) {
	sep := warnColor(rule)
	writeln(sep)
	writeln(warnColor("  ⚠ Session ended by user"))
	writef("  Cycle: %d\n", cycle)
	writeln(sep)
}

// PrintMaxCyclesBanner displays when the cycle limit is reached.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ⚠ Max cycles reached (50/50)
//	═══════════════════════════════════════════════════
func PrintMaxCyclesBanner(cycles int, maxCycles int) {
	sep := warnColor(rule)
	writeln(sep)
	writeln(warnColor(fmt.Sprintf("  ⚠ Max cycles reached (%d/%d)", cycles, maxCycles)))
	writeln(sep)
}

// PrintInterruptedBanner displays when the session is interrupted.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ⚠ Session interrupted
//	  Cycle: 3
//	  Use --resume to continue from this point
//	═══════════════════════════════════════════════════
func PrintInterruptedBanner(cycle int) {
	sep := warnColor(rule)
	writeln(sep)
	writeln(warnColor("  ⚠ Session interrupted"))
	writef("  Cycle: %d\n", cycle)
	writeln("  Use --resume to continue from this point")
	writeln(sep)
}

// PrintErrorBanner displays a fatal session error.
func PrintErrorBanner(msg string) {
	sep := errorColor(rule)
	writeln(sep)
	writeln(errorColor("  ✗ Session failed"))
	writef("  %s\n", msg)
	writeln(sep)
}

// PrintStatusBanner displays a saved session for --status.
//
// Example output:
//
//	──────────────────────────────────────────────────
//	  Session:  trip-5f0c...
//	  Status:   IN_PROGRESS
//	  Mode:     interactive
//	  Cycle:    4
//	  Budget left:  $700
//	  ...
//	──────────────────────────────────────────────────
func PrintStatusBanner(ss *state.SessionState) {
	sep := strings.Repeat("─", 50)
	writeln(sep)
	writef("  Session:  %s\n", ss.SessionID)
	writef("  Status:   %s\n", ss.Status)
	writef("  Mode:     %s\n", ss.Mode)
	writef("  Planner:  %s\n", ss.Planner)
	writef("  Cycle:    %d\n", ss.Cycle)
	if ss.TerminationReason != ledger.ReasonNone {
		writef("  Reason:   %s\n", ss.TerminationReason)
	}
	if ss.LastOutcome != "" {
		writef("  Last:     %s\n", ss.LastOutcome)
	}
	if ss.Trip != nil {
		printLedger(ss.Trip)
		printWorkers(ss.Trip)
	}
	writeln(sep)
}

func printLedger(s *ledger.TripState) {
	writef("  Budget left:  $%d\n", s.BudgetRemaining)
	writef("  Satisfaction: %d\n", s.CustomerSatisfaction)
	writef("  Completeness: %d%%\n", s.TripCompleteness)
	if s.BlockchainEnabled {
		writef("  Wallet:       %.4f ETH (%s)\n", s.WalletBalance, FormatTokens(s.WalletTokens))
	}
}

func printWorkers(s *ledger.TripState) {
	writeln("  Workers:")
	for _, decl := range ledger.Roster() {
		w, ok := s.Worker(decl.ID)
		if !ok {
			continue
		}
		line := fmt.Sprintf("    - %-22s energy %3d", decl.ID, w.Energy)
		if w.Energy <= 0 {
			line += " " + dimColor("(depleted)")
		}
		writeln(line)
	}
}
