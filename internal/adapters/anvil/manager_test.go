package anvil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythsdao/myths-deploy/internal/domain/models"
)

type rpcRequest struct {
	Jsonrpc string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  []any           `json:"params"`
	ID      json.RawMessage `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Jsonrpc string          `json:"jsonrpc"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

func TestBuildAnvilArgs_Basic(t *testing.T) {
	instance := &models.AnvilInstance{
		Port: "8545",
	}
	args := buildAnvilArgs(instance)
	assert.Equal(t, []string{"--port", "8545", "--host", "0.0.0.0"}, args)
}

func TestBuildAnvilArgs_WithChainID(t *testing.T) {
	instance := &models.AnvilInstance{
		Port:    "9000",
		ChainID: "31337",
	}
	args := buildAnvilArgs(instance)
	assert.Equal(t, []string{"--port", "9000", "--host", "0.0.0.0", "--chain-id", "31337"}, args)
}

func newTestManager(t *testing.T) *Manager {
	m := NewManager()
	m.tempDir = t.TempDir()
	return m
}

func TestSetFilePaths_DefaultInstance(t *testing.T) {
	m := newTestManager(t)
	instance := &models.AnvilInstance{}
	m.setFilePaths(instance)

	assert.Equal(t, "anvil", instance.Name)
	assert.Equal(t, DefaultAnvilPort, instance.Port)
	assert.Equal(t, filepath.Join(m.tempDir, "myths-anvil.pid"), instance.PidFile)
	assert.Equal(t, filepath.Join(m.tempDir, "myths-anvil.log"), instance.LogFile)
}

func TestSetFilePaths_NamedInstance(t *testing.T) {
	m := newTestManager(t)
	instance := &models.AnvilInstance{
		Name: "myths",
		Port: "9000",
	}
	m.setFilePaths(instance)

	assert.Equal(t, filepath.Join(m.tempDir, "myths-myths.pid"), instance.PidFile)
	assert.Equal(t, filepath.Join(m.tempDir, "myths-myths.log"), instance.LogFile)
}

func TestSetFilePaths_PresetPathsPreserved(t *testing.T) {
	m := newTestManager(t)
	instance := &models.AnvilInstance{
		Name:    "myths",
		Port:    "54321",
		PidFile: "/custom/path/my.pid",
		LogFile: "/custom/path/my.log",
	}
	m.setFilePaths(instance)

	assert.Equal(t, "/custom/path/my.pid", instance.PidFile)
	assert.Equal(t, "/custom/path/my.log", instance.LogFile)
}

// newMockRPCServer creates a test HTTP server that responds to JSON-RPC requests
func newMockRPCServer(t *testing.T, handler func(req rpcRequest) rpcResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode RPC request: %v", err)
			return
		}
		resp := handler(req)
		resp.ID = req.ID
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

// instanceForServer creates an AnvilInstance pointing at the test server
func instanceForServer(t *testing.T, server *httptest.Server) *models.AnvilInstance {
	t.Helper()
	parts := strings.Split(server.URL, ":")
	port := parts[len(parts)-1]
	dir := t.TempDir()
	return &models.AnvilInstance{
		Name:    "test",
		Port:    port,
		PidFile: filepath.Join(dir, "test.pid"),
		LogFile: filepath.Join(dir, "test.log"),
	}
}

func TestGetStatus_Healthy(t *testing.T) {
	server := newMockRPCServer(t, func(req rpcRequest) rpcResponse {
		assert.Equal(t, "eth_blockNumber", req.Method)
		return rpcResponse{Jsonrpc: "2.0", Result: "0x10"}
	})
	defer server.Close()

	m := newTestManager(t)
	instance := instanceForServer(t, server)

	status, err := m.GetStatus(context.Background(), instance)
	require.NoError(t, err)
	assert.True(t, status.RPCHealthy)
	assert.False(t, status.Running)
	assert.Equal(t, server.URL, status.RPCURL)
	assert.Empty(t, status.Error)
}

func TestGetStatus_RPCError(t *testing.T) {
	server := newMockRPCServer(t, func(req rpcRequest) rpcResponse {
		return rpcResponse{Jsonrpc: "2.0", Error: &rpcError{Code: -32000, Message: "node syncing"}}
	})
	defer server.Close()

	m := newTestManager(t)
	status, err := m.GetStatus(context.Background(), instanceForServer(t, server))
	require.NoError(t, err)
	assert.False(t, status.RPCHealthy)
	assert.Contains(t, status.Error, "node syncing")
}

func TestGetStatus_RunningProcess(t *testing.T) {
	server := newMockRPCServer(t, func(req rpcRequest) rpcResponse {
		return rpcResponse{Jsonrpc: "2.0", Result: "0x1"}
	})
	defer server.Close()

	m := newTestManager(t)
	instance := instanceForServer(t, server)
	require.NoError(t, os.WriteFile(instance.PidFile, []byte(strconv.Itoa(os.Getpid())), 0644))

	status, err := m.GetStatus(context.Background(), instance)
	require.NoError(t, err)
	assert.True(t, status.Running)
	assert.Equal(t, os.Getpid(), status.PID)
}

func TestStop_NotRunningRemovesStalePidFile(t *testing.T) {
	m := newTestManager(t)
	instance := &models.AnvilInstance{Name: "stale", Port: "1"}
	m.setFilePaths(instance)
	require.NoError(t, os.WriteFile(instance.PidFile, []byte("not-a-pid"), 0644))

	require.NoError(t, m.Stop(context.Background(), instance))
	_, err := os.Stat(instance.PidFile)
	assert.True(t, os.IsNotExist(err))
}

func TestStart_MissingBinary(t *testing.T) {
	m := newTestManager(t)
	m.binary = filepath.Join(t.TempDir(), "no-such-anvil")
	instance := &models.AnvilInstance{Name: "missing", Port: "1"}

	err := m.Start(context.Background(), instance)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start anvil")
	_, statErr := os.Stat(instance.PidFile)
	assert.True(t, os.IsNotExist(statErr))
}
