//go:build wireinject
// +build wireinject

package app

import (
	"github.com/everdragons2/deployer/internal/adapters"
	"github.com/everdragons2/deployer/internal/config"
	"github.com/everdragons2/deployer/internal/logging"
	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
