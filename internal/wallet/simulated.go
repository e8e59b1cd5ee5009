package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SimulatedProvider issues testnet wallets without a custody backend.
type SimulatedProvider struct {
	Network string
}

type simulatedData struct {
	WalletID  string `json:"wallet_id"`
	NetworkID string `json:"network_id"`
	Address   string `json:"default_address_id"`
	Seed      string `json:"seed"`
}

// SimulatedWallet is a wallet issued by SimulatedProvider.
type SimulatedWallet struct {
	data simulatedData
}

func (p SimulatedProvider) Open(blob []byte) (Wallet, error) {
	if blob == nil {
		return &SimulatedWallet{data: simulatedData{
			WalletID:  uuid.NewString(),
			NetworkID: p.Network,
			Address:   "0x" + hexID()[:40],
			Seed:      hexID(),
		}}, nil
	}

	var d simulatedData
	if err := json.Unmarshal(blob, &d); err != nil {
		return nil, fmt.Errorf("decode wallet data: %w", err)
	}
	if d.WalletID == "" || d.Address == "" {
		return nil, errors.New("wallet data is missing wallet_id or address")
	}
	if p.Network != "" && d.NetworkID != p.Network {
		return nil, fmt.Errorf("wallet belongs to %s, not %s", d.NetworkID, p.Network)
	}
	return &SimulatedWallet{data: d}, nil
}

func (w *SimulatedWallet) Address() string { return w.data.Address }

// ID returns the wallet's identifier.
func (w *SimulatedWallet) ID() string { return w.data.WalletID }

func (w *SimulatedWallet) Export() ([]byte, error) {
	return json.Marshal(w.data)
}

func hexID() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
