package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/mythsdao/myths-deploy/internal/domain"
	"github.com/mythsdao/myths-deploy/internal/domain/config"
	"github.com/mythsdao/myths-deploy/internal/domain/models"
	"github.com/mythsdao/myths-deploy/internal/usecase"
)

// RegistryStore keeps one registry file per chain under the deployments directory
type RegistryStore struct {
	projectRoot string
	dataDir     string
}

// NewRegistryStore creates a new registry store
func NewRegistryStore(cfg *config.RuntimeConfig) *RegistryStore {
	return &RegistryStore{projectRoot: cfg.ProjectRoot, dataDir: cfg.DataDir}
}

// Save writes deployments/<chainId>.json and returns its path.
func (s *RegistryStore) Save(ctx context.Context, chainID uint64, registry *models.Registry) (string, error) {
	path := filepath.Join(s.dataDir, strconv.FormatUint(chainID, 10)+".json")
	if err := writeJSON(path, registry); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a registry file. YAML files may map names to bare addresses.
func (s *RegistryStore) Load(ctx context.Context, path string) (*models.Registry, error) {
	path = resolve(s.projectRoot, path)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("contracts file %s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLRegistry(data)
	default:
		registry := models.NewRegistry()
		if err := registry.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return registry, nil
	}
}

type yamlContract struct {
	Address         string `yaml:"address"`
	TransactionHash string `yaml:"transactionHash"`
	BlockNumber     uint64 `yaml:"blockNumber"`
}

// parseYAMLRegistry keeps the document's key order.
func parseYAMLRegistry(data []byte) (*models.Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML registry: %w", err)
	}
	registry := models.NewRegistry()
	if len(doc.Content) == 0 {
		return registry, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML registry must be a mapping of contract names")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		value := root.Content[i+1]

		var entry yamlContract
		if value.Kind == yaml.ScalarNode {
			entry.Address = value.Value
		} else if err := value.Decode(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		if !common.IsHexAddress(entry.Address) {
			return nil, fmt.Errorf("%w for %s: %q", domain.ErrInvalidAddress, name, entry.Address)
		}

		addr := common.HexToAddress(entry.Address)
		instance := &models.Instance{Address: addr, BlockNumber: entry.BlockNumber}
		if entry.TransactionHash != "" {
			instance.TxHash = common.HexToHash(entry.TransactionHash)
		}
		if err := registry.Put(&models.DeployedContract{Name: name, Address: addr, Instance: instance}); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

var _ usecase.RegistryStore = (*RegistryStore)(nil)
