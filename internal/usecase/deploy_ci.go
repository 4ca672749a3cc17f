package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// ciLoggedContracts are the contracts recorded in the CI deployment log
var ciLoggedContracts = []string{NFTDescriptor, MythsDescriptor, MythsSeeder, MythsToken}

// DeployCI runs an unattended public deployment and writes the CI log
type DeployCI struct {
	deploy   *DeploySuite
	logs     DeployLogWriter
	progress ProgressSink
}

// NewDeployCI creates a new CI deployment use case
func NewDeployCI(deploy *DeploySuite, logs DeployLogWriter, progress ProgressSink) *DeployCI {
	return &DeployCI{
		deploy:   deploy,
		logs:     logs,
		progress: progress,
	}
}

// DeployCIParams contains parameters for a CI deployment
type DeployCIParams struct {
	WETH      common.Address
	MythsDAO  common.Address
	GitHubSHA string
	Suite     SuiteParams
}

// DeployCIResult contains the result of a CI deployment
type DeployCIResult struct {
	Deployment *DeploySuiteResult
	Log        *models.DeployLog
	LogPath    string
}

// Run deploys automatically and writes logs/deploy.json.
func (uc *DeployCI) Run(ctx context.Context, params DeployCIParams) (*DeployCIResult, error) {
	weth := params.WETH
	if weth == (common.Address{}) {
		weth = domain.CIDefaultWETH
	}

	deployment, err := uc.deploy.Run(ctx, DeploySuiteParams{
		AutoDeploy: true,
		WETH:       weth,
		MythsDAO:   params.MythsDAO,
		Suite:      params.Suite,
	})
	if err != nil {
		return nil, err
	}
	if deployment.Registry == nil {
		return nil, fmt.Errorf("%w: deployment produced no registry", domain.ErrDeploymentFailed)
	}

	deployLog := &models.DeployLog{
		ContractAddresses: make(map[string]common.Address, len(ciLoggedContracts)),
		GitHub:            models.DeployLogGitHub{SHA: params.GitHubSHA},
	}
	for _, name := range ciLoggedContracts {
		addr, err := deployment.Registry.Address(name)
		if err != nil {
			return nil, err
		}
		deployLog.ContractAddresses[name] = addr
	}

	path, err := uc.logs.WriteDeployLog(ctx, deployLog)
	if err != nil {
		return nil, fmt.Errorf("failed to write deploy log: %w", err)
	}
	uc.progress.Info(fmt.Sprintf("Deployment log written to %s", path))

	return &DeployCIResult{
		Deployment: deployment,
		Log:        deployLog,
		LogPath:    path,
	}, nil
}
