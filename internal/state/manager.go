package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const stateFileName = "current-state.json"

// Path returns the snapshot file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, stateFileName)
}

// SaveState persists the session state as indented JSON.
func SaveState(s *SessionState, dir string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	if err := writeAtomic(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// writeAtomic replaces path through a temp file in the same directory, so
// an interrupted save leaves the previous snapshot intact.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadState reads and parses the session state from the state directory.
func LoadState(dir string) (*SessionState, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var s SessionState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}

	return &s, nil
}

// ValidateState checks that a loaded snapshot can drive a session: a known
// schema version and a trip ledger with the full roster.
func ValidateState(s *SessionState) error {
	if s.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported schema version %d", s.SchemaVersion)
	}
	if s.Trip == nil {
		return errors.New("state has no trip ledger")
	}
	if err := s.Trip.Validate(); err != nil {
		return fmt.Errorf("invalid trip ledger: %w", err)
	}
	return nil
}

// ClearState removes the snapshot. A missing snapshot is not an error.
func ClearState(dir string) error {
	if err := os.Remove(Path(dir)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove state file: %w", err)
	}
	return nil
}

// InitStateDir creates the state directory if it doesn't exist.
func InitStateDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
