package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mythsdao/myths-deploy/internal/domain/config"
)

// AnvilDefaultKey is the first funded account of a fresh anvil node
const AnvilDefaultKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80" //nolint:gosec // public development key

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	profile, myths := profileSettings(foundryConfig, v.GetString("profile"))

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, "deployments"),
		ArtifactsDir:   resolvePath(projectRoot, firstNonEmpty(profile.OutPath, "out")),
		LogsDir:        filepath.Join(projectRoot, "logs"),
		ImageData:      resolvePath(projectRoot, firstNonEmpty(v.GetString("image_data"), myths.ImageData, "files/image-data.json")),
		SDKPath:        resolvePath(projectRoot, firstNonEmpty(v.GetString("sdk_path"), myths.SDKPath, "../myths-sdk")),
		SubgraphPath:   resolvePath(projectRoot, firstNonEmpty(v.GetString("subgraph_path"), myths.SubgraphPath, "../myths-subgraph")),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		FoundryConfig:  foundryConfig,
	}

	network, err := NewNetworkResolver(foundryConfig).Resolve(v.GetString("network"), v.GetString("rpc_url"))
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	// .env was loaded by loadFoundryConfig, so PRIVATE_KEY is visible here
	cfg.PrivateKey = firstNonEmpty(v.GetString("private_key"), os.Getenv("PRIVATE_KEY"))
	if cfg.PrivateKey == "" && network.IsLocal() {
		cfg.PrivateKey = AnvilDefaultKey
	}

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		foundryToml := filepath.Join(dir, "foundry.toml")
		if _, err := os.Stat(foundryToml); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding foundry.toml
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("MYTHS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("profile", "default")
	v.SetDefault("network", LocalNetwork)
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
