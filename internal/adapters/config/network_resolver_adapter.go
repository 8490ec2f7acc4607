package config

import (
	"context"

	"github.com/everdragons2/deployer/internal/config"
	domainconfig "github.com/everdragons2/deployer/internal/domain/config"
	"github.com/everdragons2/deployer/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.GetNetworks()
}

// ResolveNetwork resolves a configured network name
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, networkName string) (*domainconfig.Network, error) {
	return a.resolver.Resolve(networkName, "")
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
