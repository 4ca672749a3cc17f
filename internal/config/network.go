package config

import (
	"fmt"
	"net/url"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/config"
)

const (
	// LocalNetwork is the name of the development node network
	LocalNetwork = "localhost"
	// LocalRPCURL is where anvil listens by default
	LocalRPCURL = "http://127.0.0.1:8545"
)

// NetworkResolver resolves network names to configurations
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(foundryConfig *config.FoundryConfig) *NetworkResolver {
	return &NetworkResolver{foundryConfig: foundryConfig}
}

// Resolve picks the RPC endpoint for a network. An explicit rpcURL wins,
// then foundry.toml [rpc_endpoints], then the local node for "localhost".
// The chain ID is only known after connecting, except for the local node.
func (r *NetworkResolver) Resolve(networkName, rpcURL string) (*config.Network, error) {
	if networkName == "" {
		networkName = LocalNetwork
	}

	if rpcURL == "" && r.foundryConfig != nil {
		rpcURL = r.foundryConfig.RpcEndpoints[networkName]
	}
	if rpcURL == "" {
		if networkName != LocalNetwork {
			return nil, fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints]", networkName)
		}
		rpcURL = LocalRPCURL
	}

	if _, err := url.ParseRequestURI(rpcURL); err != nil {
		return nil, fmt.Errorf("invalid RPC URL for network %s: %w", networkName, err)
	}

	network := &config.Network{Name: networkName, RPCURL: rpcURL}
	if network.IsLocal() {
		network.ChainID = domain.ChainIDLocal
	}
	return network, nil
}
