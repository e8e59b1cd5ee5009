// Package wallet persists the payment wallet's identity between runs. The
// persisted blob is opaque here; only the Provider understands it.
package wallet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFile is where the wallet blob lives unless configured otherwise.
const DefaultFile = "wallet_data.txt"

// Wallet is a live wallet handle.
type Wallet interface {
	Address() string
	// Export serializes the wallet so it can be reopened later.
	Export() ([]byte, error)
}

// Provider opens a wallet from a previously exported blob, or creates a
// new one when blob is nil.
type Provider interface {
	Open(blob []byte) (Wallet, error)
}

// LoadOrCreate loads the blob at path if present, opens the wallet through
// p and writes the (possibly new) export back to path. The second return
// value reports whether a new wallet was created.
func LoadOrCreate(path string, p Provider) (Wallet, bool, error) {
	blob, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		blob = nil
	default:
		return nil, false, fmt.Errorf("read wallet file: %w", err)
	}

	w, err := p.Open(blob)
	if err != nil {
		return nil, false, fmt.Errorf("open wallet: %w", err)
	}

	if err := Save(path, w); err != nil {
		return nil, false, err
	}
	return w, blob == nil, nil
}

// Save writes the wallet export to path.
func Save(path string, w Wallet) error {
	data, err := w.Export()
	if err != nil {
		return fmt.Errorf("export wallet: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create wallet dir: %w", err)
		}
	}
	if err := replaceFile(path, data); err != nil {
		return fmt.Errorf("write wallet file: %w", err)
	}
	return nil
}

// replaceFile writes data next to path and renames it into place. Temp
// files are created 0600.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
