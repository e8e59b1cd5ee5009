package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/travel-manager/internal/config"
)

func parse(t *testing.T, args ...string) (*cobra.Command, *config.Config) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd, cfg)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, cfg
}

func TestBindFlags_DefaultValues(t *testing.T) {
	_, cfg := parse(t)

	assert.Equal(t, config.NewDefaultConfig(), cfg)
}

func TestBindFlags_SetsFields(t *testing.T) {
	_, cfg := parse(t,
		"--mode", "blockchain-auto",
		"--budget", "600",
		"--max-cycles", "9",
		"--planner", "rules",
		"--model", "claude-opus-4-1",
		"--wallet-file", "w.txt",
		"--network", "base-mainnet",
		"--pay-token", "DAI",
		"--state-dir", "/tmp/s",
		"--journal-driver", "postgres",
		"--journal-dsn", "postgres://x",
		"-v",
		"--resume",
	)

	assert.Equal(t, "blockchain-auto", cfg.Mode)
	assert.Equal(t, 600, cfg.InitialBudget)
	assert.Equal(t, 9, cfg.MaxCycles)
	assert.Equal(t, "rules", cfg.Planner)
	assert.Equal(t, "claude-opus-4-1", cfg.PlannerModel)
	assert.Equal(t, "w.txt", cfg.WalletFile)
	assert.Equal(t, "base-mainnet", cfg.Network)
	assert.Equal(t, "DAI", cfg.PayToken)
	assert.Equal(t, "/tmp/s", cfg.StateDir)
	assert.Equal(t, "postgres", cfg.JournalDriver)
	assert.Equal(t, "postgres://x", cfg.JournalDSN)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Resume)
}

func TestValidateFlags_NegationFlags(t *testing.T) {
	cmd, cfg := parse(t, "--no-journal", "--no-confirm")
	require.NoError(t, ValidateFlags(cmd, cfg))

	assert.False(t, cfg.EnableJournal)
	assert.False(t, cfg.ConfirmActions)
}

func TestValidateFlags_MissingConfigFile(t *testing.T) {
	cmd, cfg := parse(t, "--config", filepath.Join(t.TempDir(), "nope"))
	err := ValidateFlags(cmd, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config")
}

func TestValidateFlags_MissingBrief(t *testing.T) {
	cmd, cfg := parse(t, "--brief", filepath.Join(t.TempDir(), "brief.yaml"))
	err := ValidateFlags(cmd, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--brief")
}

func TestValidateFlags_ExistingFiles(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(conf, []byte("MODE=auto\n"), 0644))

	cmd, cfg := parse(t, "--config", conf)
	assert.NoError(t, ValidateFlags(cmd, cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"auto mode", func(c *config.Config) { c.Mode = "auto" }, ""},
		{"blockchain chat", func(c *config.Config) { c.Mode = "blockchain-chat" }, ""},
		{"payments menu", func(c *config.Config) { c.Mode = "blockchain-payments" }, ""},
		{"unknown mode", func(c *config.Config) { c.Mode = "turbo" }, "--mode"},
		{"unknown planner", func(c *config.Config) { c.Planner = "gpt" }, "--planner"},
		{"negative budget", func(c *config.Config) { c.InitialBudget = -1 }, "--budget"},
		{"zero budget allowed", func(c *config.Config) { c.InitialBudget = 0 }, ""},
		{"zero cycles", func(c *config.Config) { c.MaxCycles = 0 }, "--max-cycles"},
		{"unknown network", func(c *config.Config) { c.Network = "ethereum" }, "--network"},
		{"unsupported token", func(c *config.Config) { c.PayToken = "DOGE" }, "--pay-token"},
		{"unknown journal driver", func(c *config.Config) { c.JournalDriver = "mysql" }, "--journal-driver"},
		{"journal driver ignored when disabled", func(c *config.Config) {
			c.JournalDriver = "mysql"
			c.EnableJournal = false
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOverrides_OnlyChangedFlags(t *testing.T) {
	cmd, cfg := parse(t, "--budget", "500", "--planner", "rules", "--no-journal")

	overrides := Overrides(cmd, cfg)

	assert.Equal(t, map[string]string{
		"INITIAL_BUDGET": "500",
		"PLANNER":        "rules",
		"ENABLE_JOURNAL": "false",
	}, overrides)
}

func TestOverrides_NoFlags(t *testing.T) {
	cmd, cfg := parse(t)
	assert.Empty(t, Overrides(cmd, cfg))
}

func TestOverrides_Verbose(t *testing.T) {
	cmd, cfg := parse(t, "--verbose", "--no-confirm")
	overrides := Overrides(cmd, cfg)
	assert.Equal(t, "true", overrides["VERBOSE"])
	assert.Equal(t, "false", overrides["CONFIRM_ACTIONS"])
}

func TestOverrides_BeatConfigFile(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(explicit, []byte("INITIAL_BUDGET=900\nMODE=auto\n"), 0644))

	cmd, cfg := parse(t, "--budget", "450")
	merged, err := config.LoadWithPrecedence("", "", explicit, Overrides(cmd, cfg))
	require.NoError(t, err)

	assert.Equal(t, 450, merged.InitialBudget)
	assert.Equal(t, "auto", merged.Mode)
}
