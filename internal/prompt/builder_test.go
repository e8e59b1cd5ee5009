package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/travel-manager/internal/brief"
	"github.com/CodexForgeBR/travel-manager/internal/ledger"
)

func TestTemplatesEmbedded(t *testing.T) {
	assert.NotEmpty(t, SystemTemplate)
	assert.NotEmpty(t, PaymentRules)
	assert.NotEmpty(t, DecisionTemplate)
}

func TestBuildSystemPrompt_Brief(t *testing.T) {
	result := BuildSystemPrompt(brief.Default(), ledger.ModeAutomatic)

	assert.Contains(t, result, "Destination: Tokyo")
	assert.Contains(t, result, "2025-04-10 to 2025-04-17")
	assert.Contains(t, result, "Park Hyatt Tokyo")
	assert.Contains(t, result, "Day trip to Nikko on 2025-04-14")
	assert.Contains(t, result, "accommodation, activities, budget")
	assert.NotContains(t, result, "{{", "all placeholders should be replaced")
	assert.NotContains(t, result, "blockchain wallet", "payment rules only apply to blockchain modes")
}

func TestBuildSystemPrompt_BlockchainMode(t *testing.T) {
	result := BuildSystemPrompt(brief.Default(), ledger.ModeBlockchainAuto)

	assert.Contains(t, result, "blockchain wallet")
	assert.Contains(t, result, "in USDC: flight 30, hotel 20, each experience 5")
	assert.NotContains(t, result, "{{")
}

func TestBuildSystemPrompt_SparseBrief(t *testing.T) {
	b := brief.Brief{Destination: "Lisbon", DepartureDate: "2025-06-01", ReturnDate: "2025-06-05"}

	result := BuildSystemPrompt(b, ledger.ModeInteractive)

	assert.Contains(t, result, "plan a trip for the customer")
	assert.Contains(t, result, "Locations to research: Lisbon")
	assert.Contains(t, result, "(none)")
}

func TestBuildDecisionPrompt(t *testing.T) {
	s := ledger.NewTripState(ledger.ModeAutomatic, 1000)
	eligible := []ledger.Choice{
		{Worker: ledger.FlightConsultant, Action: ledger.BookFlight},
		{Worker: ledger.HotelReservationist, Action: ledger.BookHotel},
	}

	result, err := BuildDecisionPrompt(3, s, eligible, "")
	require.NoError(t, err)

	assert.Contains(t, result, "Cycle 3.")
	assert.Contains(t, result, `"budget_remaining": 1000`)
	assert.Contains(t, result, "flight_consultant.book_flight - Book a flight for the trip")
	assert.Contains(t, result, "hotel_reservationist.book_hotel")
	assert.NotContains(t, result, "Last outcome")
	assert.NotContains(t, result, "{{")
}

func TestBuildDecisionPrompt_LastOutcome(t *testing.T) {
	s := ledger.NewTripState(ledger.ModeAutomatic, 1000)

	result, err := BuildDecisionPrompt(1, s, nil, "Error: missing destination")
	require.NoError(t, err)

	assert.Contains(t, result, "Last outcome: Error: missing destination")
	assert.Contains(t, result, "(none)")
}
