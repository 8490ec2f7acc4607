package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/everdragons2/deployer/internal/usecase"
)

// Backend is the chain access needed to deploy and confirm a contract.
// *ethclient.Client and the simulated backend client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dialer opens a Backend for an RPC URL
type Dialer func(ctx context.Context, rpcURL string) (Backend, error)

// DialRPC connects to an RPC endpoint using ethclient
func DialRPC(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	return client, nil
}

// ProvideDialer provides the ethclient dialer for Wire dependency injection
func ProvideDialer() Dialer {
	return DialRPC
}

// ChainIDReaderAdapter implements the ChainIDReader interface using ethclient
type ChainIDReaderAdapter struct{}

// NewChainIDReaderAdapter creates a new chain ID reader
func NewChainIDReaderAdapter() *ChainIDReaderAdapter {
	return &ChainIDReaderAdapter{}
}

// ChainID dials the endpoint and asks for its chain ID
func (a *ChainIDReaderAdapter) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainIDReader = (*ChainIDReaderAdapter)(nil)
