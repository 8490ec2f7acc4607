package app

import (
	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/everdragons2/deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployContract *usecase.DeployContract
	ListNetworks   *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployContract *usecase.DeployContract,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:         cfg,
		DeployContract: deployContract,
		ListNetworks:   listNetworks,
	}, nil
}
