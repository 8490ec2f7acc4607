package blockchain

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	internalconfig "github.com/everdragons2/deployer/internal/config"
	"github.com/everdragons2/deployer/internal/domain"
	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/everdragons2/deployer/internal/usecase"
)

// FactoryProvider implements ContractFactoryProvider on top of compiled
// artifacts and a JSON-RPC connection
type FactoryProvider struct {
	config    *config.RuntimeConfig
	contracts usecase.ContractRepository
	dial      Dialer
	log       *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewFactoryProvider creates a new factory provider
func NewFactoryProvider(cfg *config.RuntimeConfig, contracts usecase.ContractRepository, dial Dialer, log *slog.Logger) *FactoryProvider {
	return &FactoryProvider{
		config:    cfg,
		contracts: contracts,
		dial:      dial,
		log:       log,
	}
}

// GetContractFactory loads the artifact for name and prepares a signer on the
// configured network
func (p *FactoryProvider) GetContractFactory(ctx context.Context, name string) (usecase.ContractFactory, error) {
	contract, err := p.contracts.FindContract(ctx, name)
	if err != nil {
		return nil, err
	}

	parsedABI, err := parseABI(contract.Artifact.ABI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", contract.Name, err)
	}
	if len(parsedABI.Constructor.Inputs) > 0 {
		return nil, fmt.Errorf("constructor of %s expects %d arguments, only argument-less constructors can be deployed",
			contract.Name, len(parsedABI.Constructor.Inputs))
	}

	bytecode, err := contract.Artifact.Bytecode.Bytes()
	if err != nil {
		return nil, err
	}

	key, err := p.privateKey()
	if err != nil {
		return nil, err
	}

	backend, chainID, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	p.log.Debug("factory ready", "contract", contract.Name, "deployer", opts.From.Hex(), "chainId", chainID)

	return &Factory{
		name:     contract.Name,
		abi:      parsedABI,
		bytecode: bytecode,
		backend:  backend,
		opts:     opts,
		log:      p.log,
	}, nil
}

// connect dials the network once and verifies the chain ID
func (p *FactoryProvider) connect(ctx context.Context) (Backend, *big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.backend != nil {
		return p.backend, p.chainID, nil
	}

	network := p.config.Network
	if network == nil || network.RPCURL == "" {
		return nil, nil, fmt.Errorf("no network configured")
	}

	backend, err := p.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, nil, err
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		closeBackend(backend)
		return nil, nil, fmt.Errorf("failed to get chain ID from %s: %w", network.Name, err)
	}

	// A configured chain ID of 0 accepts whatever the endpoint serves
	if network.ChainID != 0 && network.ChainID != chainID.Uint64() {
		closeBackend(backend)
		return nil, nil, fmt.Errorf("%w: expected %d, got %d from %s",
			domain.ErrChainIDMismatch, network.ChainID, chainID.Uint64(), network.Name)
	}
	network.ChainID = chainID.Uint64()
	if network.ExplorerURL == "" {
		network.ExplorerURL = internalconfig.DefaultExplorerURL(network.ChainID)
	}

	p.log.Debug("connected", "network", network.Name, "chainId", network.ChainID)

	p.backend = backend
	p.chainID = chainID
	return backend, chainID, nil
}

// closeBackend releases a connection that will not be used
func closeBackend(backend Backend) {
	if c, ok := backend.(interface{ Close() }); ok {
		c.Close()
	}
}

func (p *FactoryProvider) privateKey() (*ecdsa.PrivateKey, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(p.config.PrivateKey), "0x")
	if raw == "" {
		return nil, fmt.Errorf("%w: set DEPLOYER_PRIVATE_KEY or --private-key", domain.ErrMissingPrivateKey)
	}
	key, err := crypto.HexToECDSA(raw)
	if err != nil {
		// Do not echo the key material
		return nil, domain.ErrInvalidPrivateKey
	}
	return key, nil
}

func parseABI(raw []byte) (abi.ABI, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("[]")
	}
	return abi.JSON(bytes.NewReader(trimmed))
}

// Factory deploys one contract with a fixed signer
type Factory struct {
	name     string
	abi      abi.ABI
	bytecode []byte
	backend  Backend
	opts     *bind.TransactOpts
	log      *slog.Logger
}

// Deploy signs and submits the creation transaction. Nonce, gas limit and
// fees are filled in by go-ethereum from the node.
func (f *Factory) Deploy(ctx context.Context) (usecase.PendingDeployment, error) {
	opts := *f.opts
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(&opts, f.abi, f.bytecode, f.backend)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", f.name, err)
	}

	f.log.Debug("deployment transaction sent", "contract", f.name, "tx", tx.Hash().Hex(), "nonce", tx.Nonce(), "gas", tx.Gas())

	return &PendingDeployment{
		address: address,
		tx:      tx,
		backend: f.backend,
	}, nil
}

// PendingDeployment is a submitted creation transaction
type PendingDeployment struct {
	address common.Address
	tx      *types.Transaction
	backend Backend
}

// Address returns the address the contract is created at
func (d *PendingDeployment) Address() string {
	return d.address.Hex()
}

// TxHash returns the hash of the creation transaction
func (d *PendingDeployment) TxHash() string {
	return d.tx.Hash().Hex()
}

// WaitDeployed blocks until the transaction is mined, then checks that it
// succeeded and left code at the contract address
func (d *PendingDeployment) WaitDeployed(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, d.backend, d.tx)
	if err != nil {
		return fmt.Errorf("failed waiting for transaction %s: %w", d.tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s reverted in block %s", d.tx.Hash().Hex(), receipt.BlockNumber)
	}

	code, err := d.backend.CodeAt(ctx, d.address, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch code at %s: %w", d.address.Hex(), err)
	}
	if len(code) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotDeployed, d.address.Hex())
	}

	return nil
}

// Ensure the adapters implement the interfaces
var (
	_ usecase.ContractFactoryProvider = (*FactoryProvider)(nil)
	_ usecase.ContractFactory         = (*Factory)(nil)
	_ usecase.PendingDeployment       = (*PendingDeployment)(nil)
)
