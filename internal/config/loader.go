package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var whitelistSet = func() map[string]bool {
	set := make(map[string]bool, len(WhitelistedVars))
	for _, v := range WhitelistedVars {
		set[v] = true
	}
	return set
}()

// LoadFile parses a KEY=VALUE config file. Blank lines, # comments, lines
// without '=' and keys outside WhitelistedVars are skipped. Keys and
// values are trimmed; a value may itself contain '=' (postgres DSNs do).
func LoadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if !whitelistSet[key] {
			continue
		}
		result[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return result, nil
}

// layer is one config file in the precedence chain.
type layer struct {
	name     string
	path     string
	required bool
}

// LoadWithPrecedence builds a Config from, lowest priority first: built-in
// defaults, the global file, the project file, the explicit --config file
// and finally cliOverrides. Empty paths are skipped. Missing global and
// project files are fine; a missing explicit file is an error.
func LoadWithPrecedence(globalPath, projectPath, explicitPath string, cliOverrides map[string]string) (*Config, error) {
	cfg := NewDefaultConfig()

	layers := []layer{
		{name: "global", path: globalPath},
		{name: "project", path: projectPath},
		{name: "explicit", path: explicitPath, required: true},
	}
	for _, l := range layers {
		if l.path == "" {
			continue
		}
		m, err := LoadFile(l.path)
		if err != nil {
			if !l.required && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%s config: %w", l.name, err)
		}
		ApplyMapToConfig(cfg, m)
	}

	ApplyMapToConfig(cfg, cliOverrides)
	return cfg, nil
}

// ApplyMapToConfig sets fields on cfg from the key-value pairs in m.
// Keys must use the WhitelistedVars naming convention (e.g., "MAX_CYCLES").
// Unknown keys are silently ignored. Numeric fields that fail to parse
// are silently ignored (the previous value is preserved).
func ApplyMapToConfig(cfg *Config, m map[string]string) {
	for key, value := range m {
		switch key {
		case "MODE":
			cfg.Mode = value
		case "INITIAL_BUDGET":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.InitialBudget = v
			}
		case "PLANNER":
			cfg.Planner = value
		case "PLANNER_MODEL":
			cfg.PlannerModel = value
		case "PLANNER_MAX_TOKENS":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.PlannerMaxTokens = v
			}
		case "PLANNER_RPS":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cfg.PlannerRPS = v
			}
		case "MAX_CYCLES":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.MaxCycles = v
			}
		case "STATE_DIR":
			cfg.StateDir = value
		case "WALLET_FILE":
			cfg.WalletFile = value
		case "NETWORK":
			cfg.Network = value
		case "PAY_TOKEN":
			cfg.PayToken = strings.ToUpper(value)
		case "RPC_RPS":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cfg.RPCRPS = v
			}
		case "ENABLE_JOURNAL":
			cfg.EnableJournal = parseBool(value)
		case "JOURNAL_DRIVER":
			cfg.JournalDriver = value
		case "JOURNAL_DSN":
			cfg.JournalDSN = value
		case "BRIEF_FILE":
			cfg.BriefFile = value
		case "CONFIRM_ACTIONS":
			cfg.ConfirmActions = parseBool(value)
		case "VERBOSE":
			cfg.Verbose = parseBool(value)
		}
	}
}

// parseBool interprets common boolean representations.
// "true", "1", "yes" (case-insensitive) return true; everything else returns false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
