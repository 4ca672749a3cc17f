package domain

import "github.com/ethereum/go-ethereum/common"

// Well-known chain IDs
const (
	ChainIDMainnet uint64 = 1
	ChainIDRopsten uint64 = 3
	ChainIDRinkeby uint64 = 4
	ChainIDGoerli  uint64 = 5
	ChainIDKovan   uint64 = 42
	ChainIDLocal   uint64 = 31337
)

var chainNames = map[uint64]string{
	ChainIDMainnet: "mainnet",
	ChainIDRopsten: "ropsten",
	ChainIDRinkeby: "rinkeby",
	ChainIDGoerli:  "goerli",
	ChainIDKovan:   "kovan",
}

// ChainName returns the canonical network name for a chain ID, or "unknown".
func ChainName(chainID uint64) string {
	if name, ok := chainNames[chainID]; ok {
		return name
	}
	return "unknown"
}

// OpenSea proxy registries, keyed by chain ID
var proxyRegistries = map[uint64]common.Address{
	ChainIDMainnet: common.HexToAddress("0xa5409ec958c83c3f309868babaca7c86dcb077c1"),
	ChainIDRinkeby: common.HexToAddress("0xf57b2c51ded3a29e6891aba85459d600256cf317"),
}

// ProxyRegistryFor returns the proxy registry of a chain, falling back to Rinkeby's.
func ProxyRegistryFor(chainID uint64) common.Address {
	if addr, ok := proxyRegistries[chainID]; ok {
		return addr
	}
	return proxyRegistries[ChainIDRinkeby]
}

// LocalProxyRegistry is passed to the token on local development chains.
var LocalProxyRegistry = common.HexToAddress("0xa5409ec958c83c3f309868babaca7c86dcb077c1")

var wethContracts = map[uint64]common.Address{
	ChainIDMainnet: common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
	ChainIDRopsten: common.HexToAddress("0xc778417e063141139fce010982780140aa0cd5ab"),
	ChainIDRinkeby: common.HexToAddress("0xc778417e063141139fce010982780140aa0cd5ab"),
	ChainIDKovan:   common.HexToAddress("0xd0a1e359811322d97991e03f863a0c30c2cf029c"),
}

// WETHFor returns the canonical WETH deployment of a chain.
func WETHFor(chainID uint64) (common.Address, bool) {
	addr, ok := wethContracts[chainID]
	return addr, ok
}

// CIDefaultWETH is the WETH address used by CI deployments when none is given.
var CIDefaultWETH = common.HexToAddress("0xc778417e063141139fce010982780140aa0cd5ab")
