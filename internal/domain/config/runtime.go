package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	Network    *Network
	PrivateKey string

	// Project layout
	ArtifactsDir string
	LogsDir      string
	ImageData    string

	// Downstream projects receiving addresses
	SDKPath      string
	SubgraphPath string

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	FoundryConfig *FoundryConfig
}

// Network represents network configuration
type Network struct {
	ChainID uint64 `json:"chainId"`
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
}

// IsLocal reports whether the network targets a local development node.
func (n *Network) IsLocal() bool {
	return n != nil && (n.Name == "localhost" || n.Name == "local" || n.Name == "anvil")
}
