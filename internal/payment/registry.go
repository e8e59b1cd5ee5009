// Package payment is the blockchain payment channel: token and service
// provider registries, the Channel contract the payment worker calls, a
// simulated testnet implementation and a rate-limited wrapper.
package payment

import (
	"errors"
	"fmt"
	"strings"
)

// Supported networks.
const (
	BaseSepolia = "base-sepolia"
	BaseMainnet = "base-mainnet"
)

// NativeETH is the pseudo-address used for the chain's native asset.
const NativeETH = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

var (
	ErrUnsupportedToken  = errors.New("unsupported token")
	ErrUnknownService    = errors.New("unknown service provider")
	ErrUnknownNetwork    = errors.New("unknown network")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// tokenOrder is the display order of payable tokens.
var tokenOrder = []string{"ETH", "USDC", "USDT", "DAI"}

var networkTokens = map[string]map[string]string{
	BaseSepolia: {
		"USDC": "0xf56dc6695CF1f5c4912e8AB1e59C7855CE906599",
		"USDT": "0x162B9566Ad6248B8836Cf5673129e7E66ae89F1C",
		"DAI":  "0x5e6F1119354d85e95b81B2270260A6C1A7c2916E",
		"ETH":  NativeETH,
	},
	BaseMainnet: {
		"USDC": "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
		"USDT": "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb",
		"DAI":  "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb",
		"ETH":  NativeETH,
	},
}

// TokenRegistry maps token symbols to contract addresses on one network.
type TokenRegistry struct {
	Network string
	tokens  map[string]string
}

// NewTokenRegistry returns the registry for network.
func NewTokenRegistry(network string) (*TokenRegistry, error) {
	tokens, ok := networkTokens[network]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNetwork, network)
	}
	return &TokenRegistry{Network: network, tokens: tokens}, nil
}

// Address returns the contract address of a token. Symbols are
// case-insensitive.
func (r *TokenRegistry) Address(symbol string) (string, error) {
	addr, ok := r.tokens[strings.ToUpper(symbol)]
	if !ok {
		return "", fmt.Errorf("%w: %s on %s", ErrUnsupportedToken, symbol, r.Network)
	}
	return addr, nil
}

// Supported reports whether symbol can be used for payments.
func (r *TokenRegistry) Supported(symbol string) bool {
	_, ok := r.tokens[strings.ToUpper(symbol)]
	return ok
}

// Symbols lists the payable tokens in display order.
func (r *TokenRegistry) Symbols() []string {
	return append([]string(nil), tokenOrder...)
}

// Service provider keys.
const (
	ServiceFlights     = "FLIGHTS"
	ServiceHotels      = "HOTELS"
	ServiceExperiences = "EXPERIENCES"
)

var serviceProviders = map[string]string{
	ServiceFlights:     "0x1234567890123456789012345678901234567890",
	ServiceHotels:      "0x2345678901234567890123456789012345678901",
	ServiceExperiences: "0x3456789012345678901234567890123456789012",
}

// ServiceRegistry maps service types to provider addresses.
type ServiceRegistry struct {
	providers map[string]string
}

// NewServiceRegistry returns the registry of test service providers.
func NewServiceRegistry() *ServiceRegistry {
	p := make(map[string]string, len(serviceProviders))
	for k, v := range serviceProviders {
		p[k] = v
	}
	return &ServiceRegistry{providers: p}
}

// Provider returns the address registered under a provider key.
func (r *ServiceRegistry) Provider(key string) (string, error) {
	addr, ok := r.providers[strings.ToUpper(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownService, key)
	}
	return addr, nil
}

// Services lists the provider keys.
func (r *ServiceRegistry) Services() []string {
	return []string{ServiceFlights, ServiceHotels, ServiceExperiences}
}

// ProviderKey maps a service type ("flight", "hotel", "experience") to its
// provider key. Unknown types fall back to hotels.
func ProviderKey(serviceType string) string {
	switch strings.ToLower(strings.TrimSpace(serviceType)) {
	case "flight":
		return ServiceFlights
	case "hotel":
		return ServiceHotels
	case "experience":
		return ServiceExperiences
	default:
		return ServiceHotels
	}
}

// RecipientFor returns the provider address paid for a service type.
func (r *ServiceRegistry) RecipientFor(serviceType string) string {
	addr, _ := r.Provider(ProviderKey(serviceType))
	return addr
}
