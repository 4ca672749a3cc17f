package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// DeployContracts executes a deployment plan against a chain
type DeployContracts struct {
	client    ChainClient
	artifacts ArtifactRepository
	prompter  OperatorPrompter
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContracts creates the plan executor
func NewDeployContracts(
	client ChainClient,
	artifacts ArtifactRepository,
	prompter OperatorPrompter,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContracts {
	return &DeployContracts{
		client:    client,
		artifacts: artifacts,
		prompter:  prompter,
		progress:  progress,
		log:       log.With("component", "DeployContracts"),
	}
}

// DeployContractsParams contains parameters for executing a plan
type DeployContractsParams struct {
	Plan       *models.Plan
	AutoDeploy bool
}

// DeployContractsResult contains the outcome of a plan execution
type DeployContractsResult struct {
	// Registry is nil when the operator chose EXIT
	Registry    *models.Registry
	Deployer    common.Address
	StartNonce  uint64
	Predictions models.Predictions
	Skipped     []string
	Exited      bool
}

// run holds the state of one plan execution
type run struct {
	params   DeployContractsParams
	deployer common.Address
	nonce    uint64
	sent     uint64
	rc       *models.ResolveContext
	skipped  map[string]bool
	result   *DeployContractsResult
}

// Run deploys every contract of the plan in order.
func (uc *DeployContracts) Run(ctx context.Context, params DeployContractsParams) (*DeployContractsResult, error) {
	if params.Plan == nil {
		return nil, fmt.Errorf("%w: no plan", domain.ErrInvalidPlan)
	}
	if err := params.Plan.Validate(); err != nil {
		return nil, err
	}

	deployer := uc.client.Deployer()
	nonce, err := uc.client.PendingNonce(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployer nonce: %w", err)
	}

	predictions := models.PredictAddresses(deployer, nonce, params.Plan.PredictionOffsets())
	for name, addr := range predictions {
		uc.log.Debug("predicted address", "contract", name, "address", addr.Hex())
	}

	registry := models.NewRegistry()
	r := &run{
		params:   params,
		deployer: deployer,
		nonce:    nonce,
		rc:       models.NewResolveContext(registry, predictions),
		skipped:  make(map[string]bool),
		result: &DeployContractsResult{
			Registry:    registry,
			Deployer:    deployer,
			StartNonce:  nonce,
			Predictions: predictions,
		},
	}

	total := len(params.Plan.Specs)
	for i, spec := range params.Plan.Specs {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "deploy",
			Current: i + 1,
			Total:   total,
			Message: spec.Name,
		})

		exit, err := uc.deploy(ctx, r, spec)
		if err != nil {
			return nil, err
		}
		if exit {
			uc.progress.Info("Exiting...")
			r.result.Registry = nil
			r.result.Exited = true
			return r.result, nil
		}
	}

	return r.result, nil
}

// deploy runs one step of the plan. It returns true when the operator chose EXIT.
func (uc *DeployContracts) deploy(ctx context.Context, r *run, spec models.ContractSpec) (bool, error) {
	log := uc.log.With("contract", spec.Name)

	artifact, err := uc.artifacts.GetArtifact(ctx, spec.ArtifactName())
	if err != nil {
		return false, err
	}

	r.rc.Reset()
	values, err := models.ResolveArgs(spec.Args, r.rc)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s arguments: %w", spec.Name, err)
	}
	libraries, err := spec.Libraries.Resolve(r.rc)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s libraries: %w", spec.Name, err)
	}

	if missing := r.rc.Unresolved(); len(missing) > 0 {
		proceed, err := uc.handleUnresolved(ctx, r, spec.Name, missing)
		if err != nil {
			return false, err
		}
		if !proceed {
			uc.skip(r, spec.Name)
			return false, nil
		}
	}

	bytecode, err := artifact.Link(libraries)
	if err != nil {
		return false, err
	}
	args, err := artifact.ConstructorArgs(values)
	if err != nil {
		return false, err
	}

	gasPrice, err := uc.gasPrice(ctx, r.params.AutoDeploy)
	if err != nil {
		return false, err
	}

	req := DeployRequest{
		Name:     spec.Name,
		ABI:      &artifact.ABI,
		Bytecode: bytecode,
		Args:     args,
		GasPrice: gasPrice,
	}

	gas, err := uc.client.EstimateDeployGas(ctx, req)
	if err != nil {
		return false, fmt.Errorf("failed to estimate gas for %s: %w", spec.Name, err)
	}
	cost := models.FormatEther(models.DeploymentCost(gas, gasPrice))
	uc.progress.Info(fmt.Sprintf("Estimated cost to deploy %s: %s ETH", spec.Name, cost))

	if !r.params.AutoDeploy {
		directive, err := uc.prompter.PromptDirective(ctx, models.StepInfo{
			Name:     spec.Name,
			Gas:      gas,
			GasPrice: models.WeiToGweiRounded(gasPrice),
			CostEth:  cost,
		})
		if err != nil {
			return false, err
		}
		switch directive {
		case models.DirectiveSkip:
			uc.skip(r, spec.Name)
			return false, nil
		case models.DirectiveExit:
			return true, nil
		}
	}

	if spec.Predicted {
		if err := uc.checkNonce(ctx, r, spec.Name); err != nil {
			return false, err
		}
	}

	uc.progress.Info(fmt.Sprintf("Deploying %s...", spec.Name))
	instance, err := uc.client.Deploy(ctx, req)
	if err != nil {
		return false, fmt.Errorf("failed to deploy %s: %w", spec.Name, err)
	}
	r.sent++
	log.Debug("deployment submitted", "tx_hash", instance.TxHash.Hex(), "address", instance.Address.Hex())

	if spec.WaitForConfirmation {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "confirm",
			Message: fmt.Sprintf("Waiting for %s deployment to be mined...", spec.Name),
			Spinner: true,
		})
		receipt, err := uc.client.WaitMined(ctx, instance.TxHash)
		if err != nil {
			return false, fmt.Errorf("%s: %w", spec.Name, err)
		}
		instance.BlockNumber = receipt.BlockNumber
	}

	if err := r.rc.Registry().Put(&models.DeployedContract{
		Name:                 spec.Name,
		Address:              instance.Address,
		Instance:             instance,
		ConstructorArguments: args,
		Libraries:            libraries,
	}); err != nil {
		return false, err
	}

	if spec.Validate != nil {
		if err := spec.Validate(r.rc); err != nil {
			return false, err
		}
	}

	uc.progress.Info(fmt.Sprintf("%s contract deployed to %s", spec.Name, instance.Address.Hex()))
	return false, nil
}

// handleUnresolved decides whether a step reading missing registry entries
// may go ahead with zero addresses.
func (uc *DeployContracts) handleUnresolved(ctx context.Context, r *run, name string, missing []string) (bool, error) {
	neverDeployed := lo.Filter(missing, func(dep string, _ int) bool {
		return !r.skipped[dep]
	})
	if len(neverDeployed) > 0 {
		return false, domain.UnresolvedDependencyError{Contract: name, Missing: neverDeployed}
	}

	uc.log.Warn("dependencies were skipped", "contract", name, "missing", missing)
	if r.params.AutoDeploy {
		return false, domain.UnresolvedDependencyError{Contract: name, Missing: missing}
	}
	return uc.prompter.ConfirmUnresolved(ctx, name, missing)
}

// checkNonce verifies the next creation address still equals the prediction
// before the transaction is sent. Skipped steps and transactions sent from
// the deployer outside this run both move the nonce.
func (uc *DeployContracts) checkNonce(ctx context.Context, r *run, name string) error {
	predicted, err := r.rc.Predicted(name)
	if err != nil {
		return err
	}
	pending, err := uc.client.PendingNonce(ctx)
	if err != nil {
		return fmt.Errorf("failed to read deployer nonce: %w", err)
	}
	if expected := r.nonce + r.sent; pending != expected {
		uc.log.Warn("deployer nonce moved outside this run", "contract", name, "expected_nonce", expected, "pending_nonce", pending)
	}
	next := models.PredictAddress(r.deployer, pending, 0)
	if next != predicted {
		return domain.NonceDriftError{
			Contract:  name,
			Predicted: predicted.Hex(),
			Next:      next.Hex(),
		}
	}
	return nil
}

func (uc *DeployContracts) skip(r *run, name string) {
	r.skipped[name] = true
	r.result.Skipped = append(r.result.Skipped, name)
	uc.progress.Info(fmt.Sprintf("Skipping %s deployment...", name))
}

func (uc *DeployContracts) gasPrice(ctx context.Context, auto bool) (*big.Int, error) {
	suggested, err := uc.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	if auto {
		return suggested, nil
	}
	gwei, err := uc.prompter.PromptGasPrice(ctx, models.WeiToGweiRounded(suggested))
	if err != nil {
		return nil, err
	}
	return models.GweiToWei(gwei), nil
}
