// Package config defines the travel-manager configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < CLI flag overrides.
package config

// WhitelistedVars lists every configuration variable name that may appear in
// config files. Variables not in this list are silently ignored during loading.
var WhitelistedVars = [18]string{
	"MODE",
	"INITIAL_BUDGET",
	"PLANNER",
	"PLANNER_MODEL",
	"PLANNER_MAX_TOKENS",
	"PLANNER_RPS",
	"MAX_CYCLES",
	"STATE_DIR",
	"WALLET_FILE",
	"NETWORK",
	"PAY_TOKEN",
	"RPC_RPS",
	"ENABLE_JOURNAL",
	"JOURNAL_DRIVER",
	"JOURNAL_DSN",
	"BRIEF_FILE",
	"CONFIRM_ACTIONS",
	"VERBOSE",
}

// Planner names.
const (
	PlannerAnthropic = "anthropic"
	PlannerRules     = "rules"
)

// ModePayments runs the standalone payments menu instead of a planning session.
const ModePayments = "blockchain-payments"

// Config holds every configuration field for the travel-manager CLI.
type Config struct {
	// Session shape.
	Mode          string
	InitialBudget int
	MaxCycles     int

	// Decision source.
	Planner          string
	PlannerModel     string
	PlannerMaxTokens int
	PlannerRPS       float64

	// Payment channel.
	WalletFile string
	Network    string
	PayToken   string
	RPCRPS     float64

	// Persistence.
	StateDir      string
	EnableJournal bool
	JournalDriver string
	JournalDSN    string

	// Trip brief; empty uses the built-in brief.
	BriefFile string

	// Runtime flags.
	ConfirmActions bool
	Verbose        bool

	// CLI-only flags (not loaded from config files).
	ConfigFile string
	Resume     bool
	Clean      bool
	Status     bool
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		Mode:             "interactive",
		InitialBudget:    1000,
		MaxCycles:        50,
		Planner:          PlannerAnthropic,
		PlannerModel:     "claude-sonnet-4-5",
		PlannerMaxTokens: 1024,
		PlannerRPS:       1,
		WalletFile:       "wallet_data.txt",
		Network:          "base-sepolia",
		PayToken:         "USDC",
		RPCRPS:           5,
		StateDir:         ".travel-manager",
		EnableJournal:    true,
		JournalDriver:    "sqlite",
		ConfirmActions:   true,
	}
}
