// Package logging provides colored, leveled log output for the travel-manager CLI.
//
// All output functions write a prefixed, color-coded line. Debug output is
// suppressed unless verbose mode is enabled via SetVerbose(true).
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// verbose controls whether Debug() and Payload() produce output.
var verbose bool

// Destinations for normal and error output.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Color printers for each log level.
var (
	infoPrefix    = color.New(color.FgBlue).SprintFunc()
	successPrefix = color.New(color.FgGreen).SprintFunc()
	warnPrefix    = color.New(color.FgYellow).SprintFunc()
	errorPrefix   = color.New(color.FgRed).SprintFunc()
	phasePrefix   = color.New(color.FgCyan).SprintFunc()
	debugPrefix   = color.New(color.FgBlue).SprintFunc()
	deltaPrefix   = color.New(color.FgMagenta).SprintFunc()
)

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	verbose = v
}

// Verbose reports whether debug output is enabled.
func Verbose() bool {
	return verbose
}

// SetOutput redirects log output. A nil writer restores the process default.
func SetOutput(out, errOut io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

// Info prints an informational message to stdout in blue.
func Info(msg string) {
	fmt.Fprintln(stdout, infoPrefix("[INFO]")+" "+msg)
}

// Success prints a success message to stdout in green.
func Success(msg string) {
	fmt.Fprintln(stdout, successPrefix("[SUCCESS]")+" "+msg)
}

// Warn prints a warning message to stdout in yellow.
func Warn(msg string) {
	fmt.Fprintln(stdout, warnPrefix("[WARN]")+" "+msg)
}

// Error prints an error message to stderr in red.
func Error(msg string) {
	fmt.Fprintln(stderr, errorPrefix("[ERROR]")+" "+msg)
}

// Phase prints a phase header to stdout in cyan, surrounded by separator lines.
func Phase(msg string) {
	sep := phasePrefix("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(stdout, sep)
	fmt.Fprintln(stdout, phasePrefix("[PHASE]")+" "+msg)
	fmt.Fprintln(stdout, sep)
}

// Debug prints a debug message to stdout in blue, only when verbose mode is enabled.
func Debug(msg string) {
	if !verbose {
		return
	}
	fmt.Fprintln(stdout, debugPrefix("[DEBUG]")+" "+msg)
}

// Delta prints one ledger field transition:
//
//	[DELTA] budget_remaining: 1000 → 700
func Delta(field string, before, after any) {
	fmt.Fprintf(stdout, "%s %s: %v → %v\n", deltaPrefix("[DELTA]"), field, before, after)
}

// Payload dumps a raw effect payload as indented JSON in verbose mode.
func Payload(worker string, payload map[string]any) {
	if !verbose {
		return
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		Debug(fmt.Sprintf("%s payload: %v", worker, payload))
		return
	}
	fmt.Fprintf(stdout, "%s %s payload:\n%s\n", debugPrefix("[DEBUG]"), worker, data)
}

// FormatDuration converts a duration in seconds to a human-readable string.
//
// Examples:
//
//	FormatDuration(0)    => "0s"
//	FormatDuration(45)   => "45s"
//	FormatDuration(90)   => "1m 30s"
//	FormatDuration(3661) => "1h 1m 1s"
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		m := seconds / 60
		s := seconds % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
