package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// DeploySuite deploys the contract suite to a public network
type DeploySuite struct {
	client   ChainClient
	executor *DeployContracts
	store    RegistryStore
	progress ProgressSink
	log      *slog.Logger
}

// NewDeploySuite creates a new public network deployment use case
func NewDeploySuite(
	client ChainClient,
	executor *DeployContracts,
	store RegistryStore,
	progress ProgressSink,
	log *slog.Logger,
) *DeploySuite {
	return &DeploySuite{
		client:   client,
		executor: executor,
		store:    store,
		progress: progress,
		log:      log.With("component", "DeploySuite"),
	}
}

// DeploySuiteParams contains parameters for a public deployment.
// Zero addresses mean "not provided".
type DeploySuiteParams struct {
	AutoDeploy bool
	WETH       common.Address
	MythsDAO   common.Address
	Suite      SuiteParams
}

// DeploySuiteResult contains the result of a deployment
type DeploySuiteResult struct {
	ChainID      uint64
	Registry     *models.Registry
	RegistryPath string
	Skipped      []string
	Exited       bool
}

// Run executes the public plan.
func (uc *DeploySuite) Run(ctx context.Context, params DeploySuiteParams) (*DeploySuiteResult, error) {
	chainID, err := uc.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	suite := params.Suite
	suite.ProxyRegistry = domain.ProxyRegistryFor(chainID)

	suite.MythsDAO = params.MythsDAO
	if suite.MythsDAO == (common.Address{}) {
		deployer := uc.client.Deployer()
		uc.progress.Info(fmt.Sprintf("Myths DAO address not provided. Setting to deployer (%s)...", deployer.Hex()))
		suite.MythsDAO = deployer
	}

	suite.WETH = params.WETH
	if suite.WETH == (common.Address{}) {
		weth, ok := domain.WETHFor(chainID)
		if !ok {
			return nil, fmt.Errorf("%w: can not auto-detect WETH contract on chain %s (%d), provide it with --weth",
				domain.ErrMissingWETH, domain.ChainName(chainID), chainID)
		}
		suite.WETH = weth
	}

	uc.log.Debug("deploying suite", "chain_id", chainID, "weth", suite.WETH.Hex(), "mythsdao", suite.MythsDAO.Hex())

	executed, err := uc.executor.Run(ctx, DeployContractsParams{
		Plan:       BuildPublicPlan(suite),
		AutoDeploy: params.AutoDeploy,
	})
	if err != nil {
		return nil, err
	}

	result := &DeploySuiteResult{
		ChainID:  chainID,
		Registry: executed.Registry,
		Skipped:  executed.Skipped,
		Exited:   executed.Exited,
	}
	if executed.Exited {
		return result, nil
	}

	path, err := uc.store.Save(ctx, chainID, executed.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to save registry: %w", err)
	}
	result.RegistryPath = path
	return result, nil
}
