package config

// FoundryConfig represents the parts of foundry.toml the deployer reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig `toml:"profile"`
	RpcEndpoints map[string]string        `toml:"rpc_endpoints"`
}

// ProfileConfig represents a profile's foundry configuration
type ProfileConfig struct {
	SrcPath string       `toml:"src,omitempty"`
	OutPath string       `toml:"out,omitempty"`
	Myths   *MythsConfig `toml:"myths,omitempty"`
}

// MythsConfig is the [profile.<name>.myths] table
type MythsConfig struct {
	SDKPath      string `toml:"sdk_path,omitempty"`
	SubgraphPath string `toml:"subgraph_path,omitempty"`
	ImageData    string `toml:"image_data,omitempty"`
}
