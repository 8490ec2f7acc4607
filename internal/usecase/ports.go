package usecase

import (
	"context"

	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/everdragons2/deployer/internal/domain/models"
)

// ContractFactoryProvider hands out deployment factories for compiled contracts
type ContractFactoryProvider interface {
	GetContractFactory(ctx context.Context, name string) (ContractFactory, error)
}

// ContractFactory creates new instances of one contract on the configured network
type ContractFactory interface {
	Deploy(ctx context.Context) (PendingDeployment, error)
}

// PendingDeployment is a submitted deployment that may not be mined yet
type PendingDeployment interface {
	Address() string
	TxHash() string
	WaitDeployed(ctx context.Context) error
}

// ContractRepository provides access to compiled contract artifacts
type ContractRepository interface {
	FindContract(ctx context.Context, ref string) (*models.Contract, error)
}

// ContractSelector handles interactive selection of contracts
type ContractSelector interface {
	SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error)
}

// NetworkResolver resolves network configurations
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
}

// ChainIDReader queries the chain ID served by an RPC endpoint
type ChainIDReader interface {
	ChainID(ctx context.Context, rpcURL string) (uint64, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
