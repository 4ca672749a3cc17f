package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// UpdateConfigs propagates deployed addresses to the SDK and the subgraph
type UpdateConfigs struct {
	client   ChainClient
	store    RegistryStore
	sdk      SDKConfigWriter
	builder  SDKBuilder
	subgraph SubgraphConfigWriter
	progress ProgressSink
	log      *slog.Logger
}

// NewUpdateConfigs creates a new update configs use case
func NewUpdateConfigs(
	client ChainClient,
	store RegistryStore,
	sdk SDKConfigWriter,
	builder SDKBuilder,
	subgraph SubgraphConfigWriter,
	progress ProgressSink,
	log *slog.Logger,
) *UpdateConfigs {
	return &UpdateConfigs{
		client:   client,
		store:    store,
		sdk:      sdk,
		builder:  builder,
		subgraph: subgraph,
		progress: progress,
		log:      log.With("component", "UpdateConfigs"),
	}
}

// UpdateConfigsParams selects the registry to propagate
type UpdateConfigsParams struct {
	// ContractsPath is a registry file (JSON or YAML)
	ContractsPath string
	// Registry is used instead of ContractsPath when set
	Registry *models.Registry
}

// UpdateConfigsResult contains the written files
type UpdateConfigsResult struct {
	ChainID      uint64
	SDKPath      string
	SDKRebuilt   bool
	SubgraphPath string
	Subgraph     *models.SubgraphConfig
}

// Run writes the SDK address table and the subgraph config.
func (uc *UpdateConfigs) Run(ctx context.Context, params UpdateConfigsParams) (*UpdateConfigsResult, error) {
	registry := params.Registry
	if registry == nil {
		if params.ContractsPath == "" {
			return nil, fmt.Errorf("no contracts file given")
		}
		var err error
		registry, err = uc.store.Load(ctx, params.ContractsPath)
		if err != nil {
			return nil, err
		}
	}

	chainID, err := uc.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	addresses, err := sdkAddresses(registry)
	if err != nil {
		return nil, err
	}
	sdkPath, err := uc.sdk.WriteAddresses(ctx, chainID, addresses)
	if err != nil {
		return nil, fmt.Errorf("failed to write SDK addresses: %w", err)
	}

	result := &UpdateConfigsResult{ChainID: chainID, SDKPath: sdkPath, SDKRebuilt: true}
	if err := uc.builder.Build(ctx); err != nil {
		uc.log.Debug("sdk build failed", "error", err)
		uc.progress.Warn("Failed to re-build `@myths/sdk`. Please rebuild manually.")
		result.SDKRebuilt = false
	}
	uc.progress.Info("Addresses written to the Myths SDK.")

	subgraph := &models.SubgraphConfig{Network: domain.ChainName(chainID)}
	sources := []struct {
		name   string
		target *models.SubgraphSource
	}{
		{MythsToken, &subgraph.MythsToken},
		{MythsAuctionHouseProxy, &subgraph.MythsAuctionHouse},
		{MythsDAOProxy, &subgraph.MythsDAO},
	}
	for _, src := range sources {
		source, err := uc.subgraphSource(ctx, registry, src.name)
		if err != nil {
			return nil, err
		}
		*src.target = source
	}

	subgraphPath, err := uc.subgraph.WriteSubgraphConfig(ctx, subgraph)
	if err != nil {
		return nil, fmt.Errorf("failed to write subgraph config: %w", err)
	}
	uc.progress.Info("Subgraph config has been generated.")

	result.SubgraphPath = subgraphPath
	result.Subgraph = subgraph
	return result, nil
}

// subgraphSource returns the address and creation block of a contract,
// reading the block from the receipt when the registry does not record it.
func (uc *UpdateConfigs) subgraphSource(ctx context.Context, registry *models.Registry, name string) (models.SubgraphSource, error) {
	deployed, ok := registry.Get(name)
	if !ok {
		return models.SubgraphSource{}, fmt.Errorf("%w: %s", domain.ErrMissingDeployment, name)
	}
	source := models.SubgraphSource{Address: deployed.Address, StartBlock: deployed.BlockNumber()}
	if source.StartBlock == 0 && deployed.TransactionHash() != (common.Hash{}) {
		receipt, err := uc.client.Receipt(ctx, deployed.TransactionHash())
		if err != nil {
			return models.SubgraphSource{}, fmt.Errorf("failed to fetch %s deployment receipt: %w", name, err)
		}
		source.StartBlock = receipt.BlockNumber
	}
	return source, nil
}

func sdkAddresses(registry *models.Registry) (models.SDKAddresses, error) {
	var out models.SDKAddresses
	fields := []struct {
		name   string
		target *common.Address
	}{
		{MythsToken, &out.MythsToken},
		{MythsSeeder, &out.MythsSeeder},
		{MythsDescriptor, &out.MythsDescriptor},
		{NFTDescriptor, &out.NFTDescriptor},
		{MythsAuctionHouse, &out.MythsAuctionHouse},
		{MythsAuctionHouseProxy, &out.MythsAuctionHouseProxy},
		{MythsAuctionHouseProxyAdmin, &out.MythsAuctionHouseProxyAdmin},
		{MythsDAOExecutor, &out.MythsDAOExecutor},
		{MythsDAOProxy, &out.MythsDAOProxy},
		{MythsDAOLogicV1, &out.MythsDAOLogicV1},
	}
	for _, f := range fields {
		addr, err := registry.Address(f.name)
		if err != nil {
			return out, err
		}
		*f.target = addr
	}
	return out, nil
}
