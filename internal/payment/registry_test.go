package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRegistry(t *testing.T) {
	r, err := NewTokenRegistry(BaseSepolia)
	require.NoError(t, err)

	addr, err := r.Address("usdc")
	require.NoError(t, err)
	assert.Equal(t, "0xf56dc6695CF1f5c4912e8AB1e59C7855CE906599", addr)

	addr, err = r.Address("ETH")
	require.NoError(t, err)
	assert.Equal(t, NativeETH, addr)

	_, err = r.Address("DOGE")
	assert.ErrorIs(t, err, ErrUnsupportedToken)

	assert.True(t, r.Supported("dai"))
	assert.Equal(t, []string{"ETH", "USDC", "USDT", "DAI"}, r.Symbols())
}

func TestTokenRegistry_Mainnet(t *testing.T) {
	r, err := NewTokenRegistry(BaseMainnet)
	require.NoError(t, err)

	addr, err := r.Address("USDC")
	require.NoError(t, err)
	assert.Equal(t, "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", addr)

	_, err = NewTokenRegistry("solana")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestServiceRegistry(t *testing.T) {
	r := NewServiceRegistry()

	tests := []struct {
		serviceType string
		key         string
		address     string
	}{
		{"flight", ServiceFlights, "0x1234567890123456789012345678901234567890"},
		{"Hotel", ServiceHotels, "0x2345678901234567890123456789012345678901"},
		{"experience", ServiceExperiences, "0x3456789012345678901234567890123456789012"},
		{"cruise", ServiceHotels, "0x2345678901234567890123456789012345678901"},
	}
	for _, tt := range tests {
		t.Run(tt.serviceType, func(t *testing.T) {
			assert.Equal(t, tt.key, ProviderKey(tt.serviceType))
			assert.Equal(t, tt.address, r.RecipientFor(tt.serviceType))
		})
	}

	_, err := r.Provider("TRAINS")
	assert.ErrorIs(t, err, ErrUnknownService)
	assert.Len(t, r.Services(), 3)
}

func TestParseBalance(t *testing.T) {
	tokens := map[string]string{"USDC": "42.5", "ETH": "oops"}
	assert.Equal(t, 42.5, ParseBalance(tokens, "USDC"))
	assert.Zero(t, ParseBalance(tokens, "ETH"))
	assert.Zero(t, ParseBalance(tokens, "DAI"))
	assert.Equal(t, "0.1", FormatAmount(0.1))
}
