package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/config"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

const defaultPollInterval = time.Second

// Backend is the subset of ethclient the client needs. simulated.Client
// satisfies it too.
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Client signs and sends transactions with the deployer key. The RPC
// connection is opened on first use so a node can be started beforehand.
type Client struct {
	mu      sync.Mutex
	rpcURL  string
	key     *ecdsa.PrivateKey
	backend Backend
	raw     *rpc.Client
	chainID *big.Int

	pollInterval time.Duration
	log          *slog.Logger
}

// NewClient creates a client for the configured network and key
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) (*Client, error) {
	c := &Client{
		pollInterval: defaultPollInterval,
		log:          log.With("component", "ChainClient"),
	}
	if cfg.Network != nil {
		c.rpcURL = cfg.Network.RPCURL
	}
	if cfg.PrivateKey != "" {
		key, err := parseKey(cfg.PrivateKey)
		if err != nil {
			return nil, err
		}
		c.key = key
	}
	return c, nil
}

// NewClientWithBackend creates a client on an already connected backend
func NewClientWithBackend(backend Backend, key *ecdsa.PrivateKey, log *slog.Logger) *Client {
	return &Client{
		backend:      backend,
		key:          key,
		pollInterval: 50 * time.Millisecond,
		log:          log.With("component", "ChainClient"),
	}
}

func parseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// connect dials the RPC endpoint once and caches the chain id.
func (c *Client) connect(ctx context.Context) (Backend, *big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend == nil {
		if c.rpcURL == "" {
			return nil, nil, fmt.Errorf("no RPC URL configured")
		}
		raw, err := rpc.DialContext(ctx, c.rpcURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.raw = raw
		c.backend = ethclient.NewClient(raw)
		c.log.Debug("connected", "rpc_url", c.rpcURL)
	}
	if c.chainID == nil {
		chainID, err := c.backend.ChainID(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
		c.chainID = chainID
	}
	return c.backend, c.chainID, nil
}

func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	_, chainID, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	return chainID.Uint64(), nil
}

// Deployer returns the signer address, or the zero address without a key.
func (c *Client) Deployer() common.Address {
	if c.key == nil {
		return common.Address{}
	}
	return crypto.PubkeyToAddress(c.key.PublicKey)
}

func (c *Client) PendingNonce(ctx context.Context) (uint64, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	return backend.PendingNonceAt(ctx, c.Deployer())
}

func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return backend.SuggestGasPrice(ctx)
}

func (c *Client) EstimateDeployGas(ctx context.Context, req usecase.DeployRequest) (uint64, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	data, err := creationData(req)
	if err != nil {
		return 0, err
	}
	return backend.EstimateGas(ctx, ethereum.CallMsg{
		From:     c.Deployer(),
		GasPrice: req.GasPrice,
		Data:     data,
	})
}

// Deploy sends the contract creation without waiting for it to be mined.
func (c *Client) Deploy(ctx context.Context, req usecase.DeployRequest) (*models.Instance, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := c.transactor(ctx)
	if err != nil {
		return nil, err
	}
	opts.GasPrice = req.GasPrice

	address, tx, _, err := bind.DeployContract(opts, *req.ABI, req.Bytecode, backend, req.Args...)
	if err != nil {
		return nil, err
	}
	c.log.Debug("contract creation sent", "contract", req.Name, "tx_hash", tx.Hash().Hex(), "nonce", tx.Nonce())

	return &models.Instance{
		Address: address,
		ABI:     req.ABI,
		TxHash:  tx.Hash(),
	}, nil
}

// Transact sends a contract call and waits for its receipt.
func (c *Client) Transact(ctx context.Context, req usecase.CallRequest) (*models.Receipt, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	calldata, err := models.EncodeCall(req.ABI, req.Method, req.Args...)
	if err != nil {
		return nil, err
	}
	opts, err := c.transactor(ctx)
	if err != nil {
		return nil, err
	}
	opts.GasLimit = req.GasLimit
	opts.Value = req.Value

	contract := bind.NewBoundContract(req.Address, *req.ABI, backend, backend, backend)
	tx, err := contract.RawTransact(opts, calldata)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Method, err)
	}
	c.log.Debug("transaction sent", "method", req.Method, "to", req.Address.Hex(), "tx_hash", tx.Hash().Hex())

	return c.WaitMined(ctx, tx.Hash())
}

// WaitMined polls for the receipt until the transaction is mined.
func (c *Client) WaitMined(ctx context.Context, txHash common.Hash) (*models.Receipt, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		receipt, err := backend.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return nil, fmt.Errorf("%w: transaction %s reverted", domain.ErrDeploymentFailed, txHash.Hex())
			}
			return models.NewReceipt(receipt), nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			c.log.Debug("receipt lookup failed", "tx_hash", txHash.Hex(), "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", txHash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) Receipt(ctx context.Context, txHash common.Hash) (*models.Receipt, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	receipt, err := backend.TransactionReceipt(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, fmt.Errorf("receipt %s: %w", txHash.Hex(), domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return models.NewReceipt(receipt), nil
}

// SetIntervalMining switches a development node to timed block production.
func (c *Client) SetIntervalMining(ctx context.Context, seconds uint64) error {
	if _, _, err := c.connect(ctx); err != nil {
		return err
	}
	if c.raw == nil {
		return fmt.Errorf("interval mining needs a JSON-RPC node")
	}
	return c.raw.CallContext(ctx, nil, "evm_setIntervalMining", seconds)
}

// Close releases the RPC connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.raw != nil {
		c.raw.Close()
	}
}

func (c *Client) transactor(ctx context.Context) (*bind.TransactOpts, error) {
	if c.key == nil {
		return nil, domain.ErrNoDeployerKey
	}
	_, chainID, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// creationData is the bytecode followed by the packed constructor arguments.
func creationData(req usecase.DeployRequest) ([]byte, error) {
	packed, err := req.ABI.Pack("", req.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s constructor: %w", req.Name, err)
	}
	return append(append([]byte{}, req.Bytecode...), packed...), nil
}

var _ usecase.ChainClient = (*Client)(nil)
