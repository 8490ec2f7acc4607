package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/everdragons2/deployer/internal/domain"
	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/samber/lo"
)

const (
	// LocalNetworkName is used when neither a network nor an RPC URL is configured
	LocalNetworkName = "localhost"
	// LocalRPCURL is the default endpoint of anvil and the hardhat node
	LocalRPCURL = "http://127.0.0.1:8545"
)

// NetworkResolver resolves network names to configurations
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(foundryConfig *config.FoundryConfig) *NetworkResolver {
	if foundryConfig == nil {
		foundryConfig = &config.FoundryConfig{}
	}
	return &NetworkResolver{foundryConfig: foundryConfig}
}

// GetNetworks returns the configured network names in sorted order
func (r *NetworkResolver) GetNetworks() []string {
	names := lo.Keys(r.foundryConfig.RpcEndpoints)
	sort.Strings(names)
	return names
}

// Resolve picks the network to deploy to. networkName may be a name from
// [rpc_endpoints] or a raw RPC URL; rpcURL is used when no name is given.
func (r *NetworkResolver) Resolve(networkName, rpcURL string) (*config.Network, error) {
	switch {
	case networkName != "" && isRPCURL(networkName):
		return &config.Network{Name: networkName, RPCURL: networkName}, nil
	case networkName != "":
		url, ok := r.foundryConfig.RpcEndpoints[networkName]
		if !ok {
			return nil, fmt.Errorf("%w: '%s' is not in foundry.toml [rpc_endpoints] (available: %s)",
				domain.ErrNetworkNotFound, networkName, r.available())
		}
		if url == "" {
			return nil, fmt.Errorf("network '%s' has an empty RPC URL, check its environment variable", networkName)
		}
		return &config.Network{
			Name:        networkName,
			RPCURL:      url,
			ExplorerURL: r.configuredExplorerURL(networkName),
		}, nil
	case rpcURL != "":
		return &config.Network{Name: rpcURL, RPCURL: rpcURL}, nil
	default:
		return &config.Network{Name: LocalNetworkName, RPCURL: LocalRPCURL}, nil
	}
}

// ExplorerURL returns the explorer for a network, preferring foundry.toml
func (r *NetworkResolver) ExplorerURL(networkName string, chainID uint64) string {
	if url := r.configuredExplorerURL(networkName); url != "" {
		return url
	}
	return DefaultExplorerURL(chainID)
}

func (r *NetworkResolver) configuredExplorerURL(networkName string) string {
	if etherscan, ok := r.foundryConfig.Etherscan[networkName]; ok {
		return etherscan.URL
	}
	return ""
}

func (r *NetworkResolver) available() string {
	names := r.GetNetworks()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func isRPCURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// DefaultExplorerURL returns a well-known explorer for the chain, or ""
func DefaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 80002:
		return "https://amoy.polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 43114:
		return "https://snowtrace.io"
	case 56:
		return "https://bscscan.com"
	case 250:
		return "https://ftmscan.com"
	case 42220:
		return "https://celoscan.io"
	default:
		return ""
	}
}
