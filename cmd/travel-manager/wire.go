package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/CodexForgeBR/travel-manager/internal/actions"
	"github.com/CodexForgeBR/travel-manager/internal/brief"
	"github.com/CodexForgeBR/travel-manager/internal/config"
	"github.com/CodexForgeBR/travel-manager/internal/console"
	"github.com/CodexForgeBR/travel-manager/internal/exitcode"
	"github.com/CodexForgeBR/travel-manager/internal/journal"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
	"github.com/CodexForgeBR/travel-manager/internal/logging"
	"github.com/CodexForgeBR/travel-manager/internal/payment"
	"github.com/CodexForgeBR/travel-manager/internal/planner"
	"github.com/CodexForgeBR/travel-manager/internal/session"
	"github.com/CodexForgeBR/travel-manager/internal/wallet"
)

// apiKeyEnv holds the Anthropic credential.
const apiKeyEnv = "ANTHROPIC_API_KEY"

var errMissingCredential = errors.New(apiKeyEnv + " is not set")

// newMessagesClient is swapped in tests.
var newMessagesClient = planner.NewMessagesClient

// run wires the collaborators for cfg and returns the exit code.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) int {
	if cfg.Status {
		return session.NewDriver(cfg, ledger.ModeInteractive, nil, nil).Run(ctx)
	}

	if err := checkCredential(cfg); err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	b := brief.Default()
	if cfg.BriefFile != "" {
		loaded, err := brief.Load(cfg.BriefFile)
		if err != nil {
			logging.Error(err.Error())
			return exitcode.Error
		}
		b = loaded
	}

	prompter := console.NewPrompter(in, out)

	if cfg.Mode == config.ModePayments {
		ch, _, err := openChannel(ctx, cfg)
		if err != nil {
			logging.Error(err.Error())
			return exitcode.Error
		}
		tokens, _ := payment.NewTokenRegistry(cfg.Network)
		if err := console.NewPaymentsMenu(prompter, ch, tokens, payment.NewServiceRegistry()).Run(ctx); err != nil {
			if ctx.Err() != nil {
				return exitcode.Interrupted
			}
			logging.Error(err.Error())
			return exitcode.Error
		}
		return exitcode.Success
	}

	mode, err := ledger.ParseMode(cfg.Mode)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	var (
		ch   payment.Channel
		snap *session.Wallet
	)
	if mode.Blockchain() {
		ch, snap, err = openChannel(ctx, cfg)
		if err != nil {
			logging.Error(err.Error())
			return exitcode.Error
		}
	}

	source, err := decisionSource(ctx, cfg, mode, b, prompter)
	if err != nil {
		logging.Error(err.Error())
		return exitcode.Error
	}

	d := session.NewDriver(cfg, mode, source, actions.NewExecutor(ch, cfg.PayToken))
	d.Wallet = snap
	if mode.HumanDriven() {
		d.Feedback = console.NewFeedback(prompter)
	}

	if cfg.EnableJournal {
		store, err := journal.Open(cfg.JournalDriver, journalDSN(cfg))
		if err != nil {
			logging.Warn(fmt.Sprintf("Journal disabled: %v", err))
		} else {
			defer store.Close()
			d.Journal = store
		}
	}

	return d.Run(ctx)
}

// checkCredential fails when the Anthropic planner is selected without a key.
func checkCredential(cfg *config.Config) error {
	if cfg.Planner != config.PlannerAnthropic {
		return nil
	}
	if os.Getenv(apiKeyEnv) == "" {
		return fmt.Errorf("%w; export it or use --planner rules", errMissingCredential)
	}
	return nil
}

// decisionSource picks the menu for human-driven modes and the configured
// planner otherwise. Humans still get the planner's recommendation.
func decisionSource(ctx context.Context, cfg *config.Config, mode ledger.Mode, b brief.Brief, p *console.Prompter) (planner.DecisionSource, error) {
	rules := planner.NewRules(b)

	var auto planner.DecisionSource = rules
	if cfg.Planner == config.PlannerAnthropic {
		a, err := planner.NewAnthropic(newMessagesClient(os.Getenv(apiKeyEnv)), planner.AnthropicOptions{
			Model:     cfg.PlannerModel,
			MaxTokens: cfg.PlannerMaxTokens,
			Brief:     b,
			Mode:      mode,
		})
		if err != nil {
			return nil, err
		}
		auto = a
	}
	auto = planner.NewLimited(auto, cfg.PlannerRPS)

	if !mode.HumanDriven() {
		return auto, nil
	}

	recommend := rules.Recommend
	if cfg.Planner == config.PlannerAnthropic {
		recommend = planner.Advise(ctx, auto, rules)
	}
	return console.NewMenu(p, recommend, cfg.ConfirmActions), nil
}

// openChannel loads or creates the wallet identity and opens a throttled
// payment channel for it.
func openChannel(ctx context.Context, cfg *config.Config) (payment.Channel, *session.Wallet, error) {
	tokens, err := payment.NewTokenRegistry(cfg.Network)
	if err != nil {
		return nil, nil, err
	}

	w, created, err := wallet.LoadOrCreate(cfg.WalletFile, wallet.SimulatedProvider{Network: cfg.Network})
	if err != nil {
		return nil, nil, err
	}
	if created {
		logging.Info(fmt.Sprintf("Created wallet %s (saved to %s)", w.Address(), cfg.WalletFile))
	} else {
		logging.Info(fmt.Sprintf("Loaded wallet %s", w.Address()))
	}

	ch := payment.NewThrottled(payment.NewSimulated(w.Address(), tokens, nil), cfg.RPCRPS, 1)
	balances, err := ch.GetWalletBalance(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read wallet balance: %w", err)
	}
	return ch, &session.Wallet{Balance: payment.ParseBalance(balances, cfg.PayToken), Tokens: balances}, nil
}

// journalDSN defaults the sqlite journal into the state directory.
func journalDSN(cfg *config.Config) string {
	if cfg.JournalDSN != "" || cfg.JournalDriver != journal.DriverSQLite {
		return cfg.JournalDSN
	}
	return filepath.Join(cfg.StateDir, journal.DefaultFile)
}
