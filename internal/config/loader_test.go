package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/travel-manager/internal/config"
)

// writeFile is a test helper that creates a temporary file with the given content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

// ---------------------------------------------------------------------------
// LoadFile tests
// ---------------------------------------------------------------------------

func TestLoadFileBasicKeyValue(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "MODE=auto\nPLANNER=rules\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "auto", m["MODE"])
	assert.Equal(t, "rules", m["PLANNER"])
}

func TestLoadFileSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "# trip settings\n\nMODE=auto\n   \n# NETWORK=base-mainnet\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"MODE": "auto"}, m)
}

func TestLoadFileTrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "  INITIAL_BUDGET  =  750  \n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "750", m["INITIAL_BUDGET"])
}

func TestLoadFileSkipsUnknownKeysAndLinesWithoutEquals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "ANTHROPIC_API_KEY=secret\nMODE\nPAY_TOKEN=DAI\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"PAY_TOKEN": "DAI"}, m)
}

func TestLoadFileValueWithEquals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config", "JOURNAL_DSN=host=db user=trip sslmode=disable\n")

	m, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "host=db user=trip sslmode=disable", m["JOURNAL_DSN"])
}

func TestLoadFileReturnsErrorForMissingFile(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// ---------------------------------------------------------------------------
// LoadWithPrecedence tests
// ---------------------------------------------------------------------------

func TestLoadWithPrecedenceDefaultsOnly(t *testing.T) {
	cfg, err := config.LoadWithPrecedence("", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, config.NewDefaultConfig(), cfg)
}

func TestLoadWithPrecedenceFullChain(t *testing.T) {
	dir := t.TempDir()
	global := writeFile(t, dir, "global", "MODE=auto\nINITIAL_BUDGET=900\nNETWORK=base-mainnet\nPLANNER=rules\n")
	project := writeFile(t, dir, "project", "INITIAL_BUDGET=800\nPAY_TOKEN=dai\n")
	explicit := writeFile(t, dir, "explicit", "INITIAL_BUDGET=700\nMAX_CYCLES=12\n")

	cfg, err := config.LoadWithPrecedence(global, project, explicit, map[string]string{
		"MAX_CYCLES": "30",
	})
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Mode, "global survives when nothing overrides it")
	assert.Equal(t, "base-mainnet", cfg.Network)
	assert.Equal(t, config.PlannerRules, cfg.Planner)
	assert.Equal(t, "DAI", cfg.PayToken, "project layer applies and token is upper-cased")
	assert.Equal(t, 700, cfg.InitialBudget, "explicit beats project and global")
	assert.Equal(t, 30, cfg.MaxCycles, "CLI beats every file")
}

func TestLoadWithPrecedenceMissingGlobalAndProjectAreNotErrors(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadWithPrecedence(filepath.Join(dir, "g"), filepath.Join(dir, "p"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.InitialBudget)
}

func TestLoadWithPrecedenceMissingExplicitIsError(t *testing.T) {
	_, err := config.LoadWithPrecedence("", "", filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "explicit config")
}

func TestLoadWithPrecedenceUnreadableGlobalIsError(t *testing.T) {
	// A directory cannot be scanned as a config file.
	dir := t.TempDir()
	_, err := config.LoadWithPrecedence(dir, "", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "global config")
}

// ---------------------------------------------------------------------------
// ApplyMapToConfig tests
// ---------------------------------------------------------------------------

func TestApplyMapToConfigSetsEveryField(t *testing.T) {
	cfg := config.NewDefaultConfig()
	config.ApplyMapToConfig(cfg, map[string]string{
		"MODE":               "blockchain-chat",
		"INITIAL_BUDGET":     "2500",
		"PLANNER":            "rules",
		"PLANNER_MODEL":      "claude-opus-4-1",
		"PLANNER_MAX_TOKENS": "2048",
		"PLANNER_RPS":        "0.5",
		"MAX_CYCLES":         "80",
		"STATE_DIR":          "/tmp/trips",
		"WALLET_FILE":        "/tmp/trips/wallet.txt",
		"NETWORK":            "base-mainnet",
		"PAY_TOKEN":          "eth",
		"RPC_RPS":            "2",
		"ENABLE_JOURNAL":     "no",
		"JOURNAL_DRIVER":     "postgres",
		"JOURNAL_DSN":        "postgres://localhost/trips",
		"BRIEF_FILE":         "brief.yaml",
		"CONFIRM_ACTIONS":    "false",
		"VERBOSE":            "yes",
	})

	assert.Equal(t, "blockchain-chat", cfg.Mode)
	assert.Equal(t, 2500, cfg.InitialBudget)
	assert.Equal(t, "rules", cfg.Planner)
	assert.Equal(t, "claude-opus-4-1", cfg.PlannerModel)
	assert.Equal(t, 2048, cfg.PlannerMaxTokens)
	assert.InDelta(t, 0.5, cfg.PlannerRPS, 1e-9)
	assert.Equal(t, 80, cfg.MaxCycles)
	assert.Equal(t, "/tmp/trips", cfg.StateDir)
	assert.Equal(t, "/tmp/trips/wallet.txt", cfg.WalletFile)
	assert.Equal(t, "base-mainnet", cfg.Network)
	assert.Equal(t, "ETH", cfg.PayToken)
	assert.InDelta(t, 2.0, cfg.RPCRPS, 1e-9)
	assert.False(t, cfg.EnableJournal)
	assert.Equal(t, "postgres", cfg.JournalDriver)
	assert.Equal(t, "postgres://localhost/trips", cfg.JournalDSN)
	assert.Equal(t, "brief.yaml", cfg.BriefFile)
	assert.False(t, cfg.ConfirmActions)
	assert.True(t, cfg.Verbose)
}

func TestApplyMapToConfigBooleanVariations(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{" Yes ", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"on", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			config.ApplyMapToConfig(cfg, map[string]string{"VERBOSE": tt.value})
			assert.Equal(t, tt.expected, cfg.Verbose)
		})
	}
}

func TestApplyMapToConfigIgnoresInvalidNumbers(t *testing.T) {
	cfg := config.NewDefaultConfig()
	config.ApplyMapToConfig(cfg, map[string]string{
		"INITIAL_BUDGET":     "lots",
		"MAX_CYCLES":         "1.5",
		"PLANNER_MAX_TOKENS": "",
		"PLANNER_RPS":        "fast",
		"RPC_RPS":            "-",
	})

	assert.Equal(t, 1000, cfg.InitialBudget)
	assert.Equal(t, 50, cfg.MaxCycles)
	assert.Equal(t, 1024, cfg.PlannerMaxTokens)
	assert.InDelta(t, 1.0, cfg.PlannerRPS, 1e-9)
	assert.InDelta(t, 5.0, cfg.RPCRPS, 1e-9)
}

func TestApplyMapToConfigIgnoresUnknownKeys(t *testing.T) {
	cfg := config.NewDefaultConfig()
	config.ApplyMapToConfig(cfg, map[string]string{"AI_CLI": "codex", "UNKNOWN": "x"})
	assert.Equal(t, config.NewDefaultConfig(), cfg)
}
