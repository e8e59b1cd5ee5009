package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTripState_Defaults(t *testing.T) {
	s := NewTripState(ModeInteractive, DefaultBudget)

	assert.Equal(t, 1000, s.BudgetRemaining)
	assert.Zero(t, s.CustomerSatisfaction)
	assert.Zero(t, s.TripCompleteness)
	assert.False(t, s.BlockchainEnabled)
	assert.Zero(t, s.WalletBalance)
	assert.Equal(t, map[string]string{"ETH": "0", "USDC": "0", "USDT": "0", "DAI": "0"}, s.WalletTokens)
	require.Len(t, s.Workers, 6)
	for _, w := range Roster() {
		assert.Equal(t, DefaultEnergy, s.Workers[w.ID].Energy, w.ID)
	}
	require.NoError(t, s.Validate())
}

func TestReset_NilYieldsFreshIndependentState(t *testing.T) {
	first := NewTripState(ModeAutomatic, DefaultBudget)
	_, err := Apply(first, FlightConsultant, bookFlightOutcome())
	require.NoError(t, err)

	again := Reset(ModeAutomatic, DefaultBudget, nil)
	assert.Equal(t, NewTripState(ModeAutomatic, DefaultBudget), again)
	assert.NotSame(t, first, again)
	assert.Equal(t, DefaultEnergy, again.Workers[FlightConsultant].Energy)
}

func TestReset_OverrideIsCopied(t *testing.T) {
	override := NewTripState(ModeInteractive, 400)
	override.TripCompleteness = 60

	s := Reset(ModeAutomatic, DefaultBudget, override)
	assert.Equal(t, override, s)

	s.Workers[TravelConsultant].Energy = 0
	s.WalletTokens["ETH"] = "9"
	assert.Equal(t, DefaultEnergy, override.Workers[TravelConsultant].Energy)
	assert.Equal(t, "0", override.WalletTokens["ETH"])
}

func TestInitBlockchain(t *testing.T) {
	s := NewTripState(ModeBlockchainAuto, DefaultBudget)
	InitBlockchain(s, 250, map[string]string{"USDC": "250"})

	assert.True(t, s.BlockchainEnabled)
	assert.Equal(t, 250.0, s.WalletBalance)
	assert.Equal(t, map[string]string{"USDC": "250"}, s.WalletTokens)
	assert.False(t, s.Workers[PaymentProcessor].BlockchainConnected)
}

func TestValidate_RejectsBrokenStates(t *testing.T) {
	missing := NewTripState(ModeAutomatic, DefaultBudget)
	delete(missing.Workers, LocationCurator)
	assert.Error(t, missing.Validate())

	negative := NewTripState(ModeAutomatic, DefaultBudget)
	negative.Workers[LocationCurator].Energy = -5
	assert.Error(t, negative.Validate())

	badMode := NewTripState(Mode("turbo"), DefaultBudget)
	assert.Error(t, badMode.Validate())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"auto", ModeAutomatic, false},
		{"automatic", ModeAutomatic, false},
		{"interactive", ModeInteractive, false},
		{"blockchain-auto", ModeBlockchainAuto, false},
		{"Blockchain_Chat", ModeBlockchainChat, false},
		{"blockchain-payments", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMode_Flags(t *testing.T) {
	assert.True(t, ModeInteractive.HumanDriven())
	assert.True(t, ModeBlockchainChat.HumanDriven())
	assert.False(t, ModeAutomatic.HumanDriven())
	assert.False(t, ModeBlockchainAuto.HumanDriven())

	assert.True(t, ModeBlockchainAuto.Blockchain())
	assert.True(t, ModeBlockchainChat.Blockchain())
	assert.False(t, ModeInteractive.Blockchain())
}

func TestRoster_OwnersAndCosts(t *testing.T) {
	costs := map[WorkerID]int{
		TravelConsultant:    10,
		FlightConsultant:    20,
		HotelReservationist: 15,
		ExperienceCurator:   10,
		LocationCurator:     15,
		PaymentProcessor:    15,
	}
	for id, cost := range costs {
		decl, ok := Declared(id)
		require.True(t, ok)
		assert.Equal(t, cost, decl.EnergyCost, id)
	}

	owner, ok := Owner(TransferTokens)
	require.True(t, ok)
	assert.Equal(t, PaymentProcessor, owner)
	assert.True(t, Declares(FlightConsultant, BookFlight))
	assert.False(t, Declares(FlightConsultant, BookHotel))

	r := Roster()
	r[0].Actions[0] = "tampered"
	assert.Equal(t, GatherPreferences, Roster()[0].Actions[0])
}
