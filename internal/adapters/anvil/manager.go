package anvil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

const (
	DefaultAnvilPort = "8545"
	defaultName      = "anvil"
	stopTimeout      = 5 * time.Second
	healthTimeout    = 2 * time.Second
)

// Manager runs anvil nodes as background processes tracked by pid files
type Manager struct {
	binary  string
	tempDir string
}

// NewManager creates a new anvil manager
func NewManager() *Manager {
	return &Manager{
		binary:  "anvil",
		tempDir: os.TempDir(),
	}
}

// Start launches anvil in the background, logging to the instance log file.
func (m *Manager) Start(ctx context.Context, instance *models.AnvilInstance) error {
	m.setFilePaths(instance)

	if pid, running := m.running(instance); running {
		return fmt.Errorf("anvil '%s' is already running (PID %d)", instance.Name, pid)
	}

	logFile, err := os.Create(instance.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	// not bound to ctx, the node outlives the command that started it
	cmd := exec.Command(m.binary, buildAnvilArgs(instance)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start anvil: %w", err)
	}

	if err := os.WriteFile(instance.PidFile, []byte(strconv.Itoa(cmd.Process.Pid)), 0644); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Stop terminates the node and removes its pid file.
func (m *Manager) Stop(ctx context.Context, instance *models.AnvilInstance) error {
	m.setFilePaths(instance)

	pid, running := m.running(instance)
	if !running {
		_ = os.Remove(instance.PidFile)
		return nil
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	deadline := time.Now().Add(stopTimeout)
	for processAlive(pid) && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}
	if processAlive(pid) {
		_ = process.Kill()
	}

	if err := os.Remove(instance.PidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// GetStatus reports whether the node process is alive and its RPC answers.
func (m *Manager) GetStatus(ctx context.Context, instance *models.AnvilInstance) (*models.AnvilStatus, error) {
	m.setFilePaths(instance)

	status := &models.AnvilStatus{
		RPCURL:  instance.RPCURL(),
		LogFile: instance.LogFile,
	}
	status.PID, status.Running = m.running(instance)

	if err := checkRPCHealth(ctx, instance.RPCURL()); err != nil {
		status.Error = err.Error()
	} else {
		status.RPCHealthy = true
	}
	return status, nil
}

// setFilePaths fills in defaults for the instance name, port and files.
func (m *Manager) setFilePaths(instance *models.AnvilInstance) {
	if strings.TrimSpace(instance.Name) == "" {
		instance.Name = defaultName
	}
	if strings.TrimSpace(instance.Port) == "" {
		instance.Port = DefaultAnvilPort
	}
	if instance.PidFile == "" {
		instance.PidFile = filepath.Join(m.tempDir, fmt.Sprintf("myths-%s.pid", instance.Name))
	}
	if instance.LogFile == "" {
		instance.LogFile = filepath.Join(m.tempDir, fmt.Sprintf("myths-%s.log", instance.Name))
	}
}

// running reads the pid file and probes the process.
func (m *Manager) running(instance *models.AnvilInstance) (int, bool) {
	data, err := os.ReadFile(instance.PidFile)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return pid, processAlive(pid)
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func buildAnvilArgs(instance *models.AnvilInstance) []string {
	args := []string{"--port", instance.Port, "--host", "0.0.0.0"}
	if instance.ChainID != "" {
		args = append(args, "--chain-id", instance.ChainID)
	}
	return args
}

// checkRPCHealth asks the node for its block number.
func checkRPCHealth(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Close()

	var block hexutil.Uint64
	if err := client.CallContext(ctx, &block, "eth_blockNumber"); err != nil {
		return err
	}
	return nil
}

var _ usecase.AnvilManager = (*Manager)(nil)
