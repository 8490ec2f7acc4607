package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/everdragons2/deployer/internal/domain"
	"github.com/everdragons2/deployer/internal/domain/config"
)

// DeployingMessage is reported once the factory is available and before submission
const DeployingMessage = "Deploying contract..."

// DeployContractParams contains parameters for a deployment run
type DeployContractParams struct {
	ContractName string
}

// DeployContractResult describes a confirmed deployment
type DeployContractResult struct {
	Contract string          `json:"contract"`
	Address  string          `json:"address"`
	TxHash   string          `json:"txHash"`
	Network  *config.Network `json:"network,omitempty"`
}

// DeployContract deploys a single contract and waits until it is mined
type DeployContract struct {
	factories ContractFactoryProvider
	sink      ProgressSink
	log       *slog.Logger
	network   *config.Network
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(factories ContractFactoryProvider, sink ProgressSink, log *slog.Logger, cfg *config.RuntimeConfig) *DeployContract {
	if sink == nil {
		sink = NopProgress{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	uc := &DeployContract{
		factories: factories,
		sink:      sink,
		log:       log,
	}
	if cfg != nil {
		uc.network = cfg.Network
	}
	return uc
}

// Run looks up the factory, submits the deployment and waits for confirmation.
// Every failure is returned as a *domain.DeploymentError; nothing is retried.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	if params.ContractName == "" {
		return nil, &domain.DeploymentError{
			Stage: domain.StageLookup,
			Err:   fmt.Errorf("contract name is required"),
		}
	}

	fail := func(stage domain.DeploymentStage, err error) (*DeployContractResult, error) {
		uc.log.Debug("deployment failed", "contract", params.ContractName, "stage", stage, "error", err)
		return nil, &domain.DeploymentError{Stage: stage, Contract: params.ContractName, Err: err}
	}

	factory, err := uc.factories.GetContractFactory(ctx, params.ContractName)
	if err != nil {
		return fail(domain.StageLookup, err)
	}

	uc.sink.Info(DeployingMessage)

	pending, err := factory.Deploy(ctx)
	if err != nil {
		return fail(domain.StageSubmit, err)
	}
	uc.log.Debug("deployment submitted", "contract", params.ContractName, "tx", pending.TxHash(), "address", pending.Address())

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   string(domain.StageConfirm),
		Message: fmt.Sprintf("waiting for %s to be mined", pending.TxHash()),
		Spinner: true,
	})

	err = pending.WaitDeployed(ctx)
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: string(domain.StageConfirm)})
	if err != nil {
		return fail(domain.StageConfirm, err)
	}

	return &DeployContractResult{
		Contract: params.ContractName,
		Address:  pending.Address(),
		TxHash:   pending.TxHash(),
		Network:  uc.network,
	}, nil
}
