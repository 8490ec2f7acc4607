package config

// FoundryConfig represents the parts of foundry.toml the deployer reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig   `toml:"profile"`
	RpcEndpoints map[string]string          `toml:"rpc_endpoints"`
	Etherscan    map[string]EtherscanConfig `toml:"etherscan,omitempty"`
}

// EtherscanConfig represents Etherscan configuration for a network
// This matches Foundry's expected structure
type EtherscanConfig struct {
	Key     string `toml:"key,omitempty"`
	URL     string `toml:"url,omitempty"`
	ChainID any    `toml:"chain,omitempty"`
}

// ProfileConfig represents a foundry profile; only output paths matter here
type ProfileConfig struct {
	SrcPath string `toml:"src,omitempty"`
	OutPath string `toml:"out,omitempty"`
}
