package render

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

var (
	tokenAddress = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	daoAddress   = common.HexToAddress("0x00000000000000000000000000000000000000a2")
)

func testRegistry(t *testing.T) *models.Registry {
	t.Helper()
	registry := models.NewRegistry()
	require.NoError(t, registry.Put(&models.DeployedContract{
		Name:     "MythsToken",
		Address:  tokenAddress,
		Instance: &models.Instance{Address: tokenAddress, BlockNumber: 104},
	}))
	require.NoError(t, registry.Put(&models.DeployedContract{
		Name:    "MythsDAOProxy",
		Address: daoAddress,
	}))
	return registry
}

func TestRegistryRenderer(t *testing.T) {
	var out bytes.Buffer
	err := NewRegistryRenderer(&out).Render(RegistryView{
		ChainID:  4,
		Registry: testRegistry(t),
		Path:     "deployments/4.json",
		Skipped:  []string{"MythsSeeder"},
	})
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Rinkeby (chain 4)")
	assert.Contains(t, output, tokenAddress.Hex())
	assert.Contains(t, output, daoAddress.Hex())
	assert.Contains(t, output, "104")
	assert.Contains(t, output, "MythsSeeder was skipped")
	assert.Contains(t, output, "deployments/4.json")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("MythsToken")), bytes.Index(out.Bytes(), []byte("MythsDAOProxy")))
}

func TestRegistryRenderer_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewRegistryRenderer(&out).Render(RegistryView{ChainID: 1}))
	assert.Contains(t, out.String(), "No contracts deployed")
}

func TestChainTitle(t *testing.T) {
	assert.Equal(t, "Mainnet", chainTitle(1))
	assert.Equal(t, "Localhost", chainTitle(31337))
	assert.Equal(t, "Unknown", chainTitle(999))
}

func TestLocalNodeRenderer(t *testing.T) {
	var out bytes.Buffer
	err := NewLocalNodeRenderer(&out).Render(&usecase.RunLocalResult{
		Instance: &models.AnvilInstance{Name: "myths", Port: "8545"},
		Started:  true,
		ChainID:  31337,
		Registry: testRegistry(t),
		Accounts: usecase.LocalAccounts,
	})
	require.NoError(t, err)

	output := out.String()
	for _, account := range usecase.LocalAccounts {
		assert.Contains(t, output, account.Address.Hex())
		assert.Contains(t, output, account.PrivateKey)
	}
	assert.Contains(t, output, "http://127.0.0.1:8545")
	assert.NotContains(t, output, "already running")
}

func TestFormatError(t *testing.T) {
	assert.Contains(t, FormatError("failed to deploy: nonce drift"), "Nonce drift")
}

func TestNodeRenderer(t *testing.T) {
	instance := &models.AnvilInstance{Name: "myths", Port: "8545", PidFile: "/tmp/myths-myths.pid", LogFile: "/tmp/myths-myths.log"}

	t.Run("running", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNodeRenderer(&out).Render(&usecase.ManageNodeResult{
			Operation: usecase.NodeStatus,
			Instance:  instance,
			Status:    &models.AnvilStatus{Running: true, PID: 7, RPCURL: "http://localhost:8545", RPCHealthy: true},
		}))
		assert.Contains(t, out.String(), "Running (PID 7)")
		assert.Contains(t, out.String(), "Responding")
	})

	t.Run("stopped", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNodeRenderer(&out).Render(&usecase.ManageNodeResult{
			Operation: usecase.NodeStatus,
			Instance:  instance,
			Status:    &models.AnvilStatus{},
		}))
		assert.Contains(t, out.String(), "Not running")
		assert.Contains(t, out.String(), "/tmp/myths-myths.pid")
	})

	t.Run("unknown operation", func(t *testing.T) {
		err := NewNodeRenderer(&bytes.Buffer{}).Render(&usecase.ManageNodeResult{Operation: "restart"})
		assert.EqualError(t, err, "unknown operation: restart")
	})
}
