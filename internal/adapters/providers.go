package adapters

import (
	"github.com/everdragons2/deployer/internal/adapters/blockchain"
	internalconfig "github.com/everdragons2/deployer/internal/adapters/config"
	"github.com/everdragons2/deployer/internal/adapters/contracts"
	"github.com/everdragons2/deployer/internal/adapters/interactive"
	"github.com/everdragons2/deployer/internal/config"
	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/google/wire"
)

// ArtifactSet provides artifact lookup on disk
var ArtifactSet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.ProvideDialer,
	blockchain.NewFactoryProvider,
	wire.Bind(new(usecase.ContractFactoryProvider), new(*blockchain.FactoryProvider)),

	blockchain.NewChainIDReaderAdapter,
	wire.Bind(new(usecase.ChainIDReader), new(*blockchain.ChainIDReaderAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ArtifactSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
