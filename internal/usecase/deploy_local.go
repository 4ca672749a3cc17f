package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// DeployLocal deploys the suite, plus WETH, to a development node
type DeployLocal struct {
	client   ChainClient
	executor *DeployContracts
	store    RegistryStore
	progress ProgressSink
}

// NewDeployLocal creates a new local deployment use case
func NewDeployLocal(client ChainClient, executor *DeployContracts, store RegistryStore, progress ProgressSink) *DeployLocal {
	return &DeployLocal{
		client:   client,
		executor: executor,
		store:    store,
		progress: progress,
	}
}

// DeployLocalParams contains parameters for a local deployment
type DeployLocalParams struct {
	MythsDAO common.Address
	Suite    SuiteParams
}

// DeployLocalResult contains the result of a local deployment
type DeployLocalResult struct {
	ChainID      uint64
	Registry     *models.Registry
	RegistryPath string
	// InvalidChain is set when the node is not a development chain and nothing was deployed
	InvalidChain bool
}

// Run deploys the local plan without operator interaction.
func (uc *DeployLocal) Run(ctx context.Context, params DeployLocalParams) (*DeployLocalResult, error) {
	chainID, err := uc.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if chainID != domain.ChainIDLocal {
		uc.progress.Warn(fmt.Sprintf("Invalid chain id. Expected %d. Got: %d.", domain.ChainIDLocal, chainID))
		return &DeployLocalResult{ChainID: chainID, InvalidChain: true}, nil
	}

	suite := params.Suite
	suite.ProxyRegistry = domain.LocalProxyRegistry
	suite.MythsDAO = params.MythsDAO
	if suite.MythsDAO == (common.Address{}) {
		suite.MythsDAO = uc.client.Deployer()
	}

	executed, err := uc.executor.Run(ctx, DeployContractsParams{
		Plan:       BuildLocalPlan(suite),
		AutoDeploy: true,
	})
	if err != nil {
		return nil, err
	}

	path, err := uc.store.Save(ctx, chainID, executed.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to save registry: %w", err)
	}

	return &DeployLocalResult{
		ChainID:      chainID,
		Registry:     executed.Registry,
		RegistryPath: path,
	}, nil
}
