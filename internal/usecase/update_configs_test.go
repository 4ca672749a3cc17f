package usecase_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

type fakeSDK struct {
	chainID   uint64
	addresses models.SDKAddresses
	buildErr  error
	builds    int
}

func (f *fakeSDK) WriteAddresses(_ context.Context, chainID uint64, addresses models.SDKAddresses) (string, error) {
	f.chainID = chainID
	f.addresses = addresses
	return "src/contract/addresses.json", nil
}

func (f *fakeSDK) Build(context.Context) error {
	f.builds++
	return f.buildErr
}

type fakeSubgraph struct {
	written *models.SubgraphConfig
}

func (f *fakeSubgraph) WriteSubgraphConfig(_ context.Context, cfg *models.SubgraphConfig) (string, error) {
	f.written = cfg
	return "config/" + cfg.Network + "-fork.json", nil
}

// deployedSuite runs the public plan on chain and returns the registry
func deployedSuite(t *testing.T, chain *fakeChain) *models.Registry {
	t.Helper()
	result, err := newExecutor(chain, nil, &recordingSink{}).Run(context.Background(), usecase.DeployContractsParams{
		Plan:       usecase.BuildPublicPlan(publicSuite()),
		AutoDeploy: true,
	})
	require.NoError(t, err)
	return result.Registry
}

func newUpdateConfigs(chain *fakeChain, store usecase.RegistryStore, sdk *fakeSDK, subgraph *fakeSubgraph, sink usecase.ProgressSink) *usecase.UpdateConfigs {
	return usecase.NewUpdateConfigs(chain, store, sdk, sdk, subgraph, sink, slog.New(slog.DiscardHandler))
}

func TestUpdateConfigs(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the SDK table and the subgraph config", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDRinkeby, 0)
		registry := deployedSuite(t, chain)
		sdk := &fakeSDK{}
		subgraph := &fakeSubgraph{}
		sink := &recordingSink{}

		result, err := newUpdateConfigs(chain, &memoryStore{}, sdk, subgraph, sink).Run(ctx, usecase.UpdateConfigsParams{Registry: registry})
		require.NoError(t, err)
		assert.True(t, result.SDKRebuilt)
		assert.Equal(t, "config/rinkeby-fork.json", result.SubgraphPath)
		assert.Equal(t, []string{"Addresses written to the Myths SDK.", "Subgraph config has been generated."}, sink.infos)

		assert.Equal(t, domain.ChainIDRinkeby, sdk.chainID)
		token, _ := registry.Address(usecase.MythsToken)
		daoProxy, _ := registry.Address(usecase.MythsDAOProxy)
		assert.Equal(t, token, sdk.addresses.MythsToken)
		assert.Equal(t, daoProxy, sdk.addresses.MythsDAOProxy)

		require.NotNil(t, subgraph.written)
		assert.Equal(t, "rinkeby", subgraph.written.Network)
		assert.Equal(t, token, subgraph.written.MythsToken.Address)
		// the token is deployed without confirmation, its block comes from the receipt
		assert.Equal(t, uint64(104), subgraph.written.MythsToken.StartBlock)
		auction, _ := registry.Get(usecase.MythsAuctionHouseProxy)
		assert.Equal(t, auction.Address, subgraph.written.MythsAuctionHouse.Address)
		assert.Equal(t, auction.BlockNumber(), subgraph.written.MythsAuctionHouse.StartBlock)
	})

	t.Run("a failing SDK rebuild only warns", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDRinkeby, 0)
		store := &memoryStore{load: deployedSuite(t, chain)}
		sdk := &fakeSDK{buildErr: errors.New("yarn: not found")}
		sink := &recordingSink{}

		result, err := newUpdateConfigs(chain, store, sdk, &fakeSubgraph{}, sink).Run(ctx, usecase.UpdateConfigsParams{ContractsPath: "deployments/4.json"})
		require.NoError(t, err)
		assert.False(t, result.SDKRebuilt)
		assert.Equal(t, 1, sdk.builds)
		assert.Equal(t, []string{"Failed to re-build `@myths/sdk`. Please rebuild manually."}, sink.warns)
		assert.True(t, sink.saw("Subgraph config has been generated."))
	})

	t.Run("incomplete registries are rejected", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDRinkeby, 0)
		registry := models.NewRegistry()
		require.NoError(t, registry.Put(&models.DeployedContract{
			Name:    usecase.MythsToken,
			Address: common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		}))
		sdk := &fakeSDK{}

		_, err := newUpdateConfigs(chain, &memoryStore{}, sdk, &fakeSubgraph{}, &recordingSink{}).Run(ctx, usecase.UpdateConfigsParams{Registry: registry})
		assert.ErrorIs(t, err, domain.ErrMissingDeployment)
		assert.Zero(t, sdk.builds)
	})

	t.Run("load errors are returned", func(t *testing.T) {
		chain := newFakeChain(domain.ChainIDRinkeby, 0)
		store := &memoryStore{loadErr: domain.ErrNotFound}

		_, err := newUpdateConfigs(chain, store, &fakeSDK{}, &fakeSubgraph{}, &recordingSink{}).Run(ctx, usecase.UpdateConfigsParams{ContractsPath: "missing.json"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
