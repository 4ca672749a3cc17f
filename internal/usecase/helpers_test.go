package usecase_test

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

var testDeployer = common.HexToAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")

const nftDescriptorPlaceholder = "__$4f8ba3c6b9c3b4de6b4ea9bbd6e0c7d4d6$__"

// contractABIs are trimmed ABIs exercising the constructor shapes of the suite
var contractABIs = map[string]string{
	usecase.WETH:                        `[]`,
	usecase.NFTDescriptor:               `[]`,
	usecase.MythsDescriptor:             `[{"type":"function","name":"addManyBackgrounds","inputs":[{"name":"_backgrounds","type":"string[]"}],"outputs":[],"stateMutability":"nonpayable"},{"type":"function","name":"addManyColorsToPalette","inputs":[{"name":"paletteIndex","type":"uint8"},{"name":"newColors","type":"string[]"}],"outputs":[],"stateMutability":"nonpayable"},{"type":"function","name":"addManyBodies","inputs":[{"name":"_bodies","type":"bytes[]"}],"outputs":[],"stateMutability":"nonpayable"},{"type":"function","name":"addManyAccessories","inputs":[{"name":"_accessories","type":"bytes[]"}],"outputs":[],"stateMutability":"nonpayable"},{"type":"function","name":"addManyHeads","inputs":[{"name":"_heads","type":"bytes[]"}],"outputs":[],"stateMutability":"nonpayable"},{"type":"function","name":"addManyGlasses","inputs":[{"name":"_glasses","type":"bytes[]"}],"outputs":[],"stateMutability":"nonpayable"}]`,
	usecase.MythsSeeder:                 `[]`,
	usecase.MythsToken:                  `[{"type":"constructor","inputs":[{"name":"_mythsDAO","type":"address"},{"name":"_minter","type":"address"},{"name":"_descriptor","type":"address"},{"name":"_seeder","type":"address"},{"name":"_proxyRegistry","type":"address"}],"stateMutability":"nonpayable"},{"type":"function","name":"mint","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"},{"type":"event","name":"MythCreated","anonymous":false,"inputs":[{"name":"tokenId","type":"uint256","indexed":true}]}]`,
	usecase.MythsAuctionHouse:           `[{"type":"function","name":"initialize","inputs":[{"name":"_myths","type":"address"},{"name":"_weth","type":"address"},{"name":"_timeBuffer","type":"uint256"},{"name":"_reservePrice","type":"uint256"},{"name":"_minBidIncrementPercentage","type":"uint8"},{"name":"_duration","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},{"type":"function","name":"unpause","inputs":[],"outputs":[],"stateMutability":"nonpayable"}]`,
	usecase.MythsAuctionHouseProxyAdmin: `[]`,
	usecase.MythsAuctionHouseProxy:      `[{"type":"constructor","inputs":[{"name":"_logic","type":"address"},{"name":"admin_","type":"address"},{"name":"_data","type":"bytes"}],"stateMutability":"payable"}]`,
	usecase.MythsDAOExecutor:            `[{"type":"constructor","inputs":[{"name":"admin_","type":"address"},{"name":"delay_","type":"uint256"}],"stateMutability":"nonpayable"}]`,
	usecase.MythsDAOLogicV1:             `[{"type":"function","name":"propose","inputs":[{"name":"targets","type":"address[]"},{"name":"values","type":"uint256[]"},{"name":"signatures","type":"string[]"},{"name":"calldatas","type":"bytes[]"},{"name":"description","type":"string"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"},{"type":"event","name":"ProposalCreated","anonymous":false,"inputs":[{"name":"id","type":"uint256","indexed":false},{"name":"proposer","type":"address","indexed":false}]}]`,
	usecase.MythsDAOProxy:               `[{"type":"constructor","inputs":[{"name":"timelock_","type":"address"},{"name":"myths_","type":"address"},{"name":"vetoer_","type":"address"},{"name":"admin_","type":"address"},{"name":"implementation_","type":"address"},{"name":"votingPeriod_","type":"uint256"},{"name":"votingDelay_","type":"uint256"},{"name":"proposalThresholdBPS_","type":"uint256"},{"name":"quorumVotesBPS_","type":"uint256"}],"stateMutability":"nonpayable"}]`,
}

// fakeArtifacts serves artifacts built from contractABIs
type fakeArtifacts struct {
	extra map[string]string
}

func (f *fakeArtifacts) GetArtifact(_ context.Context, name string) (*models.Artifact, error) {
	abiJSON, ok := contractABIs[name]
	if !ok {
		abiJSON, ok = f.extra[name]
	}
	if !ok {
		return nil, domain.ArtifactNotFoundError{Name: name}
	}

	bytecode := `{"object":"0x6080604052","linkReferences":{}}`
	if name == usecase.MythsDescriptor {
		bytecode = fmt.Sprintf(`{"object":"0x6080%s00","linkReferences":{"src/libs/NFTDescriptor.sol":{"NFTDescriptor":[{"start":2,"length":20}]}}}`,
			nftDescriptorPlaceholder)
	}
	return models.ParseArtifact(name, []byte(fmt.Sprintf(`{"abi":%s,"bytecode":%s}`, abiJSON, bytecode)))
}

// fakeChain is an in-memory chain deriving CREATE addresses from the nonce
type fakeChain struct {
	mu sync.Mutex

	chainID  uint64
	deployer common.Address
	nonce    uint64
	gasPrice *big.Int
	gas      uint64
	block    uint64

	// extraTxAfter sends a foreign transaction after the named contract is deployed
	extraTxAfter string
	// addressOverride makes the chain report another address for a contract
	addressOverride map[string]common.Address
	// callLogs are the logs returned by Transact per method
	callLogs map[string][]*types.Log

	deployed []usecase.DeployRequest
	calls    []usecase.CallRequest
	receipts map[common.Hash]*models.Receipt
	interval uint64
}

func newFakeChain(chainID, nonce uint64) *fakeChain {
	return &fakeChain{
		chainID:  chainID,
		deployer: testDeployer,
		nonce:    nonce,
		gasPrice: big.NewInt(1_600_000_000),
		gas:      1_000_000,
		block:    100,
		receipts: make(map[common.Hash]*models.Receipt),
	}
}

func (f *fakeChain) ChainID(context.Context) (uint64, error) { return f.chainID, nil }
func (f *fakeChain) Deployer() common.Address               { return f.deployer }

func (f *fakeChain) PendingNonce(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nonce, nil
}

func (f *fakeChain) SuggestGasPrice(context.Context) (*big.Int, error) {
	return new(big.Int).Set(f.gasPrice), nil
}

func (f *fakeChain) EstimateDeployGas(context.Context, usecase.DeployRequest) (uint64, error) {
	return f.gas, nil
}

func (f *fakeChain) Deploy(_ context.Context, req usecase.DeployRequest) (*models.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	addr := crypto.CreateAddress(f.deployer, f.nonce)
	if override, ok := f.addressOverride[req.Name]; ok {
		addr = override
	}
	hash := f.nextTx()
	f.deployed = append(f.deployed, req)
	if req.Name == f.extraTxAfter {
		f.nextTx()
	}
	return &models.Instance{Address: addr, ABI: req.ABI, TxHash: hash}, nil
}

// nextTx consumes a nonce and mines a successful receipt for it
func (f *fakeChain) nextTx() common.Hash {
	hash := crypto.Keccak256Hash(f.deployer.Bytes(), new(big.Int).SetUint64(f.nonce).Bytes())
	f.nonce++
	f.block++
	f.receipts[hash] = &models.Receipt{TxHash: hash, BlockNumber: f.block, Status: types.ReceiptStatusSuccessful}
	return hash
}

func (f *fakeChain) WaitMined(_ context.Context, txHash common.Hash) (*models.Receipt, error) {
	return f.Receipt(context.Background(), txHash)
}

func (f *fakeChain) Receipt(_ context.Context, txHash common.Hash) (*models.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	receipt, ok := f.receipts[txHash]
	if !ok {
		return nil, fmt.Errorf("receipt %s: %w", txHash.Hex(), domain.ErrNotFound)
	}
	return receipt, nil
}

func (f *fakeChain) Transact(_ context.Context, req usecase.CallRequest) (*models.Receipt, error) {
	if _, err := models.EncodeCall(req.ABI, req.Method, req.Args...); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	hash := f.nextTx()
	receipt := f.receipts[hash]
	receipt.Logs = f.callLogs[req.Method]
	return receipt, nil
}

func (f *fakeChain) SetIntervalMining(_ context.Context, seconds uint64) error {
	f.interval = seconds
	return nil
}

func (f *fakeChain) deployedNames() []string {
	names := make([]string, len(f.deployed))
	for i, req := range f.deployed {
		names[i] = req.Name
	}
	return names
}

func (f *fakeChain) request(name string) (usecase.DeployRequest, bool) {
	for _, req := range f.deployed {
		if req.Name == name {
			return req, true
		}
	}
	return usecase.DeployRequest{}, false
}

// MockPrompter is a mock implementation of OperatorPrompter
type MockPrompter struct {
	mock.Mock
}

func (m *MockPrompter) PromptGasPrice(ctx context.Context, suggestedGwei int64) (int64, error) {
	args := m.Called(ctx, suggestedGwei)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPrompter) PromptDirective(ctx context.Context, step models.StepInfo) (models.Directive, error) {
	args := m.Called(ctx, step)
	return args.Get(0).(models.Directive), args.Error(1)
}

func (m *MockPrompter) ConfirmUnresolved(ctx context.Context, contract string, missing []string) (bool, error) {
	args := m.Called(ctx, contract, missing)
	return args.Bool(0), args.Error(1)
}

// recordingSink is a ProgressSink keeping every message
type recordingSink struct {
	events []usecase.ProgressEvent
	infos  []string
	warns  []string
	errors []string
}

func (s *recordingSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}
func (s *recordingSink) Info(message string)  { s.infos = append(s.infos, message) }
func (s *recordingSink) Warn(message string)  { s.warns = append(s.warns, message) }
func (s *recordingSink) Error(message string) { s.errors = append(s.errors, message) }

func (s *recordingSink) saw(substr string) bool {
	for _, msgs := range [][]string{s.infos, s.warns, s.errors} {
		for _, m := range msgs {
			if strings.Contains(m, substr) {
				return true
			}
		}
	}
	return false
}

// memoryStore is an in-memory RegistryStore
type memoryStore struct {
	saved   map[uint64]*models.Registry
	load    *models.Registry
	loadErr error
}

func (s *memoryStore) Save(_ context.Context, chainID uint64, registry *models.Registry) (string, error) {
	if s.saved == nil {
		s.saved = make(map[uint64]*models.Registry)
	}
	s.saved[chainID] = registry
	return fmt.Sprintf("deployments/%d.json", chainID), nil
}

func (s *memoryStore) Load(context.Context, string) (*models.Registry, error) {
	return s.load, s.loadErr
}
