package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mythsdao/myths-deploy/internal/domain/config"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// DeployLogWriter writes the CI deployment log
type DeployLogWriter struct {
	logsDir string
}

// NewDeployLogWriter creates a new deploy log writer
func NewDeployLogWriter(cfg *config.RuntimeConfig) *DeployLogWriter {
	return &DeployLogWriter{logsDir: cfg.LogsDir}
}

// WriteDeployLog writes logs/deploy.json.
func (w *DeployLogWriter) WriteDeployLog(ctx context.Context, log *models.DeployLog) (string, error) {
	path := filepath.Join(w.logsDir, "deploy.json")
	return path, writeJSON(path, log)
}

// SDKConfigWriter updates the per-chain address table of the SDK
type SDKConfigWriter struct {
	sdkPath string
}

// NewSDKConfigWriter creates a new SDK config writer
func NewSDKConfigWriter(cfg *config.RuntimeConfig) *SDKConfigWriter {
	return &SDKConfigWriter{sdkPath: cfg.SDKPath}
}

// WriteAddresses replaces the entry of chainID in src/contract/addresses.json,
// keeping the other chains.
func (w *SDKConfigWriter) WriteAddresses(ctx context.Context, chainID uint64, addresses models.SDKAddresses) (string, error) {
	path := filepath.Join(w.sdkPath, "src", "contract", "addresses.json")

	table := make(map[string]json.RawMessage)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &table); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return "", err
	}

	entry, err := json.Marshal(addresses)
	if err != nil {
		return "", err
	}
	table[strconv.FormatUint(chainID, 10)] = entry
	return path, writeJSON(path, table)
}

// SubgraphConfigWriter writes the subgraph network config
type SubgraphConfigWriter struct {
	subgraphPath string
}

// NewSubgraphConfigWriter creates a new subgraph config writer
func NewSubgraphConfigWriter(cfg *config.RuntimeConfig) *SubgraphConfigWriter {
	return &SubgraphConfigWriter{subgraphPath: cfg.SubgraphPath}
}

// WriteSubgraphConfig writes config/<network>-fork.json.
func (w *SubgraphConfigWriter) WriteSubgraphConfig(ctx context.Context, cfg *models.SubgraphConfig) (string, error) {
	path := filepath.Join(w.subgraphPath, "config", cfg.Network+"-fork.json")
	return path, writeJSON(path, cfg)
}

// ImageDataReader reads the encoded art
type ImageDataReader struct {
	path string
}

// NewImageDataReader creates a new image data reader
func NewImageDataReader(cfg *config.RuntimeConfig) *ImageDataReader {
	return &ImageDataReader{path: cfg.ImageData}
}

func (r *ImageDataReader) ReadImageData(ctx context.Context) (*models.ImageData, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	var images models.ImageData
	if err := json.Unmarshal(data, &images); err != nil {
		return nil, fmt.Errorf("failed to parse image data %s: %w", r.path, err)
	}
	return &images, nil
}

var (
	_ usecase.DeployLogWriter      = (*DeployLogWriter)(nil)
	_ usecase.SDKConfigWriter      = (*SDKConfigWriter)(nil)
	_ usecase.SubgraphConfigWriter = (*SubgraphConfigWriter)(nil)
	_ usecase.ImageDataReader      = (*ImageDataReader)(nil)
)
