package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

const (
	defaultFoundryOut = "out"
	hardhatArtifacts  = "artifacts"
)

// loadFoundryConfig loads .env files and parses foundry.toml when present.
// A project without foundry.toml gets an empty configuration.
func loadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	// Load .env files first for variable expansion
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		}
	}

	cfg := &config.FoundryConfig{
		Profile:      make(map[string]config.ProfileConfig),
		RpcEndpoints: make(map[string]string),
		Etherscan:    make(map[string]config.EtherscanConfig),
	}

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(foundryPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for name, url := range cfg.RpcEndpoints {
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}
	for name, ec := range cfg.Etherscan {
		ec.URL = os.ExpandEnv(ec.URL)
		ec.Key = os.ExpandEnv(ec.Key)
		cfg.Etherscan[name] = ec
	}

	return cfg, nil
}

// artifactDirs returns the directories searched for compiled artifacts:
// the foundry output directory of the active profile, then Hardhat's artifacts.
func artifactDirs(cfg *config.FoundryConfig, profile string) []string {
	if profile == "" {
		profile = "default"
	}

	out := defaultFoundryOut
	if p, ok := cfg.Profile[profile]; ok && p.OutPath != "" {
		out = p.OutPath
	} else if p, ok := cfg.Profile["default"]; ok && p.OutPath != "" {
		out = p.OutPath
	}

	return lo.Uniq([]string{filepath.Clean(out), hardhatArtifacts})
}
