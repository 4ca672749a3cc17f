//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/mythsdao/myths-deploy/internal/adapters"
	"github.com/mythsdao/myths-deploy/internal/config"
	"github.com/mythsdao/myths-deploy/internal/logging"
	"github.com/mythsdao/myths-deploy/internal/usecase"
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
		usecase.NewDeployContracts,
		usecase.NewDeploySuite,
		usecase.NewDeployLocal,
		usecase.NewDeployCI,
		usecase.NewMintToken,
		usecase.NewPopulateDescriptor,
		usecase.NewCreateProposal,
		usecase.NewRunLocal,
		usecase.NewUpdateConfigs,
		usecase.NewManageNode,

		// App
		NewApp,
	)
	return nil, nil
}
