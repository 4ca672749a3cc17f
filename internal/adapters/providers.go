package adapters

import (
	"github.com/google/wire"

	"github.com/mythsdao/myths-deploy/internal/adapters/anvil"
	"github.com/mythsdao/myths-deploy/internal/adapters/blockchain"
	"github.com/mythsdao/myths-deploy/internal/adapters/forge"
	"github.com/mythsdao/myths-deploy/internal/adapters/fs"
	"github.com/mythsdao/myths-deploy/internal/adapters/interactive"
	"github.com/mythsdao/myths-deploy/internal/adapters/repository/contracts"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRegistryStore,
	wire.Bind(new(usecase.RegistryStore), new(*fs.RegistryStore)),

	fs.NewDeployLogWriter,
	wire.Bind(new(usecase.DeployLogWriter), new(*fs.DeployLogWriter)),

	fs.NewSDKConfigWriter,
	wire.Bind(new(usecase.SDKConfigWriter), new(*fs.SDKConfigWriter)),

	fs.NewSubgraphConfigWriter,
	wire.Bind(new(usecase.SubgraphConfigWriter), new(*fs.SubgraphConfigWriter)),

	fs.NewImageDataReader,
	wire.Bind(new(usecase.ImageDataReader), new(*fs.ImageDataReader)),
)

// ForgeSet provides the external build tools
var ForgeSet = wire.NewSet(
	forge.NewForgeBuilder,
	wire.Bind(new(usecase.ContractBuilder), new(*forge.ForgeBuilder)),

	forge.NewSDKBuilder,
	wire.Bind(new(usecase.SDKBuilder), new(*forge.SDKBuilder)),
)

// ContractsSet provides compiled artifact access
var ContractsSet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPrompter,
	wire.Bind(new(usecase.OperatorPrompter), new(*interactive.Prompter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),
)

// AnvilSet provides the local node manager
var AnvilSet = wire.NewSet(
	anvil.NewManager,
	wire.Bind(new(usecase.AnvilManager), new(*anvil.Manager)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ForgeSet,
	ContractsSet,
	InteractiveSet,
	BlockchainSet,
	AnvilSet,
)
