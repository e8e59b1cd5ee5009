package logging_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/CodexForgeBR/travel-manager/internal/logging"
)

func init() {
	// Disable color output in tests so assertions match plain text.
	color.NoColor = true
}

// capture redirects log output for the duration of fn.
func capture(t *testing.T, fn func()) (string, string) {
	t.Helper()

	var out, errOut bytes.Buffer
	logging.SetOutput(&out, &errOut)
	defer logging.SetOutput(nil, nil)

	fn()
	return out.String(), errOut.String()
}

// ---------------------------------------------------------------------------
// FormatDuration tests
// ---------------------------------------------------------------------------

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "0s"},
		{45, "45s"},
		{90, "1m 30s"},
		{3661, "1h 1m 1s"},
		{7200, "2h 0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, logging.FormatDuration(tt.seconds))
		})
	}
}

// ---------------------------------------------------------------------------
// Log output tests
// ---------------------------------------------------------------------------

func TestLevelsWriteToStdout(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string)
		prefix string
	}{
		{"info", logging.Info, "[INFO]"},
		{"success", logging.Success, "[SUCCESS]"},
		{"warn", logging.Warn, "[WARN]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := capture(t, func() { tt.fn("flight booked") })
			assert.Equal(t, tt.prefix+" flight booked\n", out)
			assert.Empty(t, errOut)
		})
	}
}

func TestErrorWritesToStderr(t *testing.T) {
	out, errOut := capture(t, func() {
		logging.Error("ANTHROPIC_API_KEY is not set")
	})
	assert.Empty(t, out)
	assert.Equal(t, "[ERROR] ANTHROPIC_API_KEY is not set\n", errOut)
}

func TestPhase(t *testing.T) {
	out, _ := capture(t, func() {
		logging.Phase("Cycle 1")
	})
	assert.Contains(t, out, "[PHASE] Cycle 1")
	// Phase output includes separator lines.
	assert.Contains(t, out, "━━━━")
}

func TestDebugSuppressedWhenNotVerbose(t *testing.T) {
	logging.SetVerbose(false)
	out, _ := capture(t, func() {
		logging.Debug("hidden")
		logging.Payload("flight_consultant", map[string]any{"cost": 300})
	})
	assert.Empty(t, out)
}

func TestDebugShownWhenVerbose(t *testing.T) {
	logging.SetVerbose(true)
	defer logging.SetVerbose(false)

	out, _ := capture(t, func() {
		logging.Debug("visible")
	})
	assert.Equal(t, "[DEBUG] visible\n", out)
	assert.True(t, logging.Verbose())
}

func TestDelta(t *testing.T) {
	out, _ := capture(t, func() {
		logging.Delta("budget_remaining", 1000, 700)
	})
	assert.Equal(t, "[DELTA] budget_remaining: 1000 → 700\n", out)
}

func TestPayloadVerbose(t *testing.T) {
	logging.SetVerbose(true)
	defer logging.SetVerbose(false)

	out, _ := capture(t, func() {
		logging.Payload("flight_consultant", map[string]any{"action": "book_flight", "cost": 300})
	})
	assert.Contains(t, out, "[DEBUG] flight_consultant payload:")
	assert.Contains(t, out, `"action": "book_flight"`)
	assert.Contains(t, out, `"cost": 300`)
}
