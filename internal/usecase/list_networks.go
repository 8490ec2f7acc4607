package usecase

import (
	"context"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// SkipChainID lists names and URLs without querying the endpoints
	SkipChainID bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	RPCURL  string
	ChainID uint64
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
	chainIDs ChainIDReader
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, chainIDs ChainIDReader) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
		chainIDs: chainIDs,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{Name: name}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}
		status.RPCURL = info.RPCURL

		if !params.SkipChainID {
			status.ChainID, status.Error = uc.chainIDs.ChainID(ctx, info.RPCURL)
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
