package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and adapters and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Network and signer
	Network    *Network
	PrivateKey string //nolint:gosec // resolved from env, never printed

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Artifact locations, relative to ProjectRoot
	ArtifactDirs []string

	// Resolved configurations
	FoundryConfig *FoundryConfig
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId,omitempty"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}
