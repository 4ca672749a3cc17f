package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

const (
	localNodePort        = "8545"
	unpauseGasLimit      = 1_000_000
	localBlockInterval   = 12 // seconds
	nodeReadyPollDelay   = 250 * time.Millisecond
	defaultNodeReadyWait = 30 * time.Second
)

// LocalAccounts are the first funded accounts of a development node
var LocalAccounts = []models.Account{
	{
		Address:    common.HexToAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"),
		PrivateKey: "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
	},
	{
		Address:    common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8"),
		PrivateKey: "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
	},
}

// RunLocal compiles, starts a development node and sets up a ready to use
// deployment on it
type RunLocal struct {
	builder    ContractBuilder
	anvil      AnvilManager
	client     ChainClient
	artifacts  ArtifactRepository
	deploy     *DeployLocal
	populate   *PopulateDescriptor
	proposal   *CreateProposal
	progress   ProgressSink
	log        *slog.Logger
	readyAfter time.Duration
}

// NewRunLocal creates a new run local use case
func NewRunLocal(
	builder ContractBuilder,
	anvil AnvilManager,
	client ChainClient,
	artifacts ArtifactRepository,
	deploy *DeployLocal,
	populate *PopulateDescriptor,
	proposal *CreateProposal,
	progress ProgressSink,
	log *slog.Logger,
) *RunLocal {
	return &RunLocal{
		builder:    builder,
		anvil:      anvil,
		client:     client,
		artifacts:  artifacts,
		deploy:     deploy,
		populate:   populate,
		proposal:   proposal,
		progress:   progress,
		log:        log.With("component", "RunLocal"),
		readyAfter: defaultNodeReadyWait,
	}
}

// RunLocalParams contains the local deployment parameters
type RunLocalParams struct {
	Suite    SuiteParams
	MythsDAO common.Address
}

// RunLocalResult describes the running node and its deployment
type RunLocalResult struct {
	Instance *models.AnvilInstance
	// Started is false when an already running node was reused
	Started  bool
	ChainID  uint64
	Registry *models.Registry
	Accounts []models.Account
}

// Run prepares the node. The caller keeps it alive and calls Stop.
func (uc *RunLocal) Run(ctx context.Context, params RunLocalParams) (*RunLocalResult, error) {
	uc.progress.Info("Compiling contracts...")
	if err := uc.builder.Build(ctx); err != nil {
		return nil, fmt.Errorf("failed to compile contracts: %w", err)
	}

	instance := localNodeInstance()
	result := &RunLocalResult{Instance: instance, Accounts: LocalAccounts}

	status, err := uc.anvil.GetStatus(ctx, instance)
	if err == nil && status.Running {
		uc.progress.Warn(fmt.Sprintf("Node '%s' already running (PID %d), reusing it", instance.Name, status.PID))
	} else {
		uc.progress.Info(fmt.Sprintf("Starting local node on port %s...", instance.Port))
		if err := uc.anvil.Start(ctx, instance); err != nil {
			return nil, fmt.Errorf("failed to start node: %w", err)
		}
		result.Started = true
	}

	if err := uc.waitReady(ctx, instance); err != nil {
		return result, err
	}

	deployed, err := uc.deploy.Run(ctx, DeployLocalParams{MythsDAO: params.MythsDAO, Suite: params.Suite})
	if err != nil {
		return result, err
	}
	if deployed.InvalidChain {
		return result, fmt.Errorf("%w: node reports chain %d", domain.ErrInvalidChainID, deployed.ChainID)
	}
	result.ChainID = deployed.ChainID
	result.Registry = deployed.Registry

	if err := uc.setup(ctx, deployed.Registry); err != nil {
		return result, err
	}

	if err := uc.client.SetIntervalMining(ctx, localBlockInterval); err != nil {
		return result, fmt.Errorf("failed to enable interval mining: %w", err)
	}
	return result, nil
}

// setup loads the art, opens the first auction and creates a proposal.
func (uc *RunLocal) setup(ctx context.Context, registry *models.Registry) error {
	nftDescriptor, err := registry.Address(NFTDescriptor)
	if err != nil {
		return err
	}
	descriptor, err := registry.Address(MythsDescriptor)
	if err != nil {
		return err
	}
	if _, err := uc.populate.Run(ctx, PopulateDescriptorParams{
		NFTDescriptor:   nftDescriptor,
		MythsDescriptor: descriptor,
	}); err != nil {
		return err
	}

	auctionProxy, err := registry.Address(MythsAuctionHouseProxy)
	if err != nil {
		return err
	}
	auctionHouse, err := uc.artifacts.GetArtifact(ctx, MythsAuctionHouse)
	if err != nil {
		return err
	}
	if _, err := uc.client.Transact(ctx, CallRequest{
		Address:  auctionProxy,
		ABI:      &auctionHouse.ABI,
		Method:   "unpause",
		GasLimit: unpauseGasLimit,
	}); err != nil {
		return fmt.Errorf("failed to unpause auction house: %w", err)
	}

	daoProxy, err := registry.Address(MythsDAOProxy)
	if err != nil {
		return err
	}
	_, err = uc.proposal.Run(ctx, CreateProposalParams{DAOProxy: daoProxy})
	return err
}

// waitReady polls the node until its RPC answers.
func (uc *RunLocal) waitReady(ctx context.Context, instance *models.AnvilInstance) error {
	ctx, cancel := context.WithTimeout(ctx, uc.readyAfter)
	defer cancel()

	for {
		status, err := uc.anvil.GetStatus(ctx, instance)
		if err == nil && status.RPCHealthy {
			return nil
		}
		uc.log.Debug("waiting for node", "port", instance.Port, "error", err)
		select {
		case <-ctx.Done():
			return fmt.Errorf("node on port %s did not become ready: %w", instance.Port, ctx.Err())
		case <-time.After(nodeReadyPollDelay):
		}
	}
}

// Stop shuts the node down if Run started it.
func (uc *RunLocal) Stop(ctx context.Context, result *RunLocalResult) error {
	if result == nil || !result.Started {
		return nil
	}
	return uc.anvil.Stop(ctx, result.Instance)
}
