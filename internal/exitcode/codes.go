// Package exitcode defines named exit codes for the travel-manager CLI.
//
// Each code maps a session outcome to a numeric value that shell scripts
// can branch on.
package exitcode

const (
	Success     = 0   // Trip complete, or the session ended by request
	Error       = 1   // Invalid args, missing credentials, planner or storage failure
	MaxCycles   = 2   // Cycle limit reached before the trip terminated
	Interrupted = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case MaxCycles:
		return "MaxCycles"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
