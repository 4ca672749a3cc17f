package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

// DeployRequest is a fully resolved contract creation
type DeployRequest struct {
	Name     string
	ABI      *abi.ABI
	Bytecode []byte
	Args     []any
	GasPrice *big.Int
}

// CallRequest is a state changing call on a deployed contract
type CallRequest struct {
	Address  common.Address
	ABI      *abi.ABI
	Method   string
	Args     []any
	GasLimit uint64
	Value    *big.Int
}

// ChainClient is the deployer's view of the network: provider plus signer
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	Deployer() common.Address
	PendingNonce(ctx context.Context) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateDeployGas(ctx context.Context, req DeployRequest) (uint64, error)
	// Deploy submits the creation transaction without waiting for it.
	Deploy(ctx context.Context, req DeployRequest) (*models.Instance, error)
	// WaitMined blocks until the transaction is mined and fails on a reverted receipt.
	WaitMined(ctx context.Context, txHash common.Hash) (*models.Receipt, error)
	// Transact sends a call and waits for its receipt.
	Transact(ctx context.Context, req CallRequest) (*models.Receipt, error)
	Receipt(ctx context.Context, txHash common.Hash) (*models.Receipt, error)
	SetIntervalMining(ctx context.Context, seconds uint64) error
}

// ArtifactRepository loads compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// OperatorPrompter asks the operator to steer an interactive deployment
type OperatorPrompter interface {
	PromptGasPrice(ctx context.Context, suggestedGwei int64) (int64, error)
	PromptDirective(ctx context.Context, step models.StepInfo) (models.Directive, error)
	// ConfirmUnresolved asks whether to deploy with zero addresses in place of
	// contracts that were skipped.
	ConfirmUnresolved(ctx context.Context, contract string, missing []string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Warn(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Warn(string)                               {}
func (NopProgress) Error(string)                              {}

// RegistryStore persists deployment registries
type RegistryStore interface {
	Save(ctx context.Context, chainID uint64, registry *models.Registry) (string, error)
	Load(ctx context.Context, path string) (*models.Registry, error)
}

// DeployLogWriter writes the CI deployment log
type DeployLogWriter interface {
	WriteDeployLog(ctx context.Context, log *models.DeployLog) (string, error)
}

// SDKConfigWriter merges addresses into the SDK address table
type SDKConfigWriter interface {
	WriteAddresses(ctx context.Context, chainID uint64, addresses models.SDKAddresses) (string, error)
}

// SDKBuilder rebuilds the SDK after its addresses changed
type SDKBuilder interface {
	Build(ctx context.Context) error
}

// SubgraphConfigWriter writes the subgraph network config
type SubgraphConfigWriter interface {
	WriteSubgraphConfig(ctx context.Context, cfg *models.SubgraphConfig) (string, error)
}

// ImageDataReader loads the descriptor art
type ImageDataReader interface {
	ReadImageData(ctx context.Context) (*models.ImageData, error)
}

// ContractBuilder compiles the contracts
type ContractBuilder interface {
	Build(ctx context.Context) error
}

// AnvilManager manages the local development node
type AnvilManager interface {
	Start(ctx context.Context, instance *models.AnvilInstance) error
	Stop(ctx context.Context, instance *models.AnvilInstance) error
	GetStatus(ctx context.Context, instance *models.AnvilInstance) (*models.AnvilStatus, error)
}
