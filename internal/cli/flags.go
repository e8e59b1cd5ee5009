// Package cli provides flag binding and validation for the travel-manager CLI.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/travel-manager/internal/config"
	"github.com/CodexForgeBR/travel-manager/internal/journal"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
	"github.com/CodexForgeBR/travel-manager/internal/payment"
)

// BindFlags registers the CLI flags on the given cobra command.
// The flags directly modify fields in the provided config pointer.
// Call ValidateFlags after parsing to check flag combinations.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	def := config.NewDefaultConfig()

	// Session
	flags.StringVar(&cfg.Mode, "mode", def.Mode, "auto, interactive, blockchain-auto, blockchain-chat or blockchain-payments")
	flags.IntVar(&cfg.InitialBudget, "budget", def.InitialBudget, "Starting trip budget")
	flags.IntVar(&cfg.MaxCycles, "max-cycles", def.MaxCycles, "Maximum decision cycles before exit 2")

	// Planner
	flags.StringVar(&cfg.Planner, "planner", def.Planner, "Decision source for autonomous modes: anthropic or rules")
	flags.StringVar(&cfg.PlannerModel, "model", def.PlannerModel, "Anthropic model for the planner")

	// Payments
	flags.StringVar(&cfg.WalletFile, "wallet-file", def.WalletFile, "Wallet identity file")
	flags.StringVar(&cfg.Network, "network", def.Network, "base-sepolia or base-mainnet")
	flags.StringVar(&cfg.PayToken, "pay-token", def.PayToken, "Token used to pay for bookings")

	// Files
	flags.StringVar(&cfg.StateDir, "state-dir", def.StateDir, "Directory for session state and journal")
	flags.StringVar(&cfg.BriefFile, "brief", "", "YAML trip brief (default: built-in Tokyo brief)")
	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")

	// Journal
	flags.StringVar(&cfg.JournalDriver, "journal-driver", def.JournalDriver, "Journal database: sqlite or postgres")
	flags.StringVar(&cfg.JournalDSN, "journal-dsn", "", "Journal DSN (default: <state-dir>/journal.db)")

	// Feature Toggles
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log raw action payloads and debug output")

	// Negation flags need special handling via Changed detection
	var noJournal, noConfirm bool
	flags.BoolVar(&noJournal, "no-journal", false, "Disable the journal database")
	flags.BoolVar(&noConfirm, "no-confirm", false, "Skip action confirmation in interactive modes")

	// Session Management
	flags.BoolVar(&cfg.Resume, "resume", false, "Resume from the last interrupted session")
	flags.BoolVar(&cfg.Clean, "clean", false, "Delete saved session state and start fresh")
	flags.BoolVar(&cfg.Status, "status", false, "Show session status and exit")
}

// ValidateFlags checks flag values and combinations after parsing.
// Must be called after cmd.Execute() or cmd.ParseFlags().
func ValidateFlags(cmd *cobra.Command, cfg *config.Config) error {
	// --config must exist if provided
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	if cfg.BriefFile != "" {
		if _, err := os.Stat(cfg.BriefFile); err != nil {
			return fmt.Errorf("--brief: %w", err)
		}
	}

	// Handle negation flags via Changed detection
	if cmd.Flags().Changed("no-journal") {
		cfg.EnableJournal = false
	}
	if cmd.Flags().Changed("no-confirm") {
		cfg.ConfirmActions = false
	}

	return Validate(cfg)
}

// Validate checks the value ranges of a fully merged config.
func Validate(cfg *config.Config) error {
	if cfg.Mode != config.ModePayments {
		if _, err := ledger.ParseMode(cfg.Mode); err != nil {
			return fmt.Errorf("--mode must be one of auto, interactive, blockchain-auto, blockchain-chat, blockchain-payments, got: %s", cfg.Mode)
		}
	}

	if cfg.Planner != config.PlannerAnthropic && cfg.Planner != config.PlannerRules {
		return fmt.Errorf("--planner must be 'anthropic' or 'rules', got: %s", cfg.Planner)
	}

	if cfg.InitialBudget < 0 {
		return fmt.Errorf("--budget must not be negative, got: %d", cfg.InitialBudget)
	}
	if cfg.MaxCycles < 1 {
		return fmt.Errorf("--max-cycles must be at least 1, got: %d", cfg.MaxCycles)
	}

	tokens, err := payment.NewTokenRegistry(cfg.Network)
	if err != nil {
		return fmt.Errorf("--network must be '%s' or '%s', got: %s", payment.BaseSepolia, payment.BaseMainnet, cfg.Network)
	}
	if !tokens.Supported(cfg.PayToken) {
		return fmt.Errorf("--pay-token %s is not supported on %s", cfg.PayToken, cfg.Network)
	}

	if cfg.EnableJournal && cfg.JournalDriver != journal.DriverSQLite && cfg.JournalDriver != journal.DriverPostgres {
		return fmt.Errorf("--journal-driver must be '%s' or '%s', got: %s", journal.DriverSQLite, journal.DriverPostgres, cfg.JournalDriver)
	}
	return nil
}

// Overrides creates a map of CLI flag overrides from the config.
// Uses cmd.Flags().Changed() to only include flags explicitly set by the user,
// ensuring config file values are not accidentally overridden by default values.
func Overrides(cmd *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)

	stringFlags := map[string]struct {
		key string
		val string
	}{
		"mode":           {"MODE", cfg.Mode},
		"planner":        {"PLANNER", cfg.Planner},
		"model":          {"PLANNER_MODEL", cfg.PlannerModel},
		"wallet-file":    {"WALLET_FILE", cfg.WalletFile},
		"network":        {"NETWORK", cfg.Network},
		"pay-token":      {"PAY_TOKEN", cfg.PayToken},
		"state-dir":      {"STATE_DIR", cfg.StateDir},
		"brief":          {"BRIEF_FILE", cfg.BriefFile},
		"journal-driver": {"JOURNAL_DRIVER", cfg.JournalDriver},
		"journal-dsn":    {"JOURNAL_DSN", cfg.JournalDSN},
	}
	for flag, mapping := range stringFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = mapping.val
		}
	}

	intFlags := map[string]struct {
		key string
		val int
	}{
		"budget":     {"INITIAL_BUDGET", cfg.InitialBudget},
		"max-cycles": {"MAX_CYCLES", cfg.MaxCycles},
	}
	for flag, mapping := range intFlags {
		if cmd.Flags().Changed(flag) {
			overrides[mapping.key] = strconv.Itoa(mapping.val)
		}
	}

	if cmd.Flags().Changed("verbose") {
		overrides["VERBOSE"] = strconv.FormatBool(cfg.Verbose)
	}

	// Handle negation flags
	if cmd.Flags().Changed("no-journal") {
		overrides["ENABLE_JOURNAL"] = "false"
	}
	if cmd.Flags().Changed("no-confirm") {
		overrides["CONFIRM_ACTIONS"] = "false"
	}

	return overrides
}
