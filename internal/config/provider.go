package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// projectMarkers identify the root of a Foundry or Hardhat project
var projectMarkers = []string{"foundry.toml", "hardhat.config.ts", "hardhat.config.js"}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			if projectRoot, err = os.Getwd(); err != nil {
				return nil, fmt.Errorf("failed to determine working directory: %w", err)
			}
		}
	}

	// Loads .env files as a side effect, so it must run before any env-backed key is read
	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".deployer"),
		PrivateKey:     strings.TrimSpace(v.GetString("private_key")),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		ArtifactDirs:   artifactDirs(foundryConfig, os.Getenv("FOUNDRY_PROFILE")),
		FoundryConfig:  foundryConfig,
	}

	resolver := NewNetworkResolver(foundryConfig)
	network, err := resolver.Resolve(v.GetString("network"), v.GetString("rpc_url"))
	if err != nil {
		return nil, err
	}
	network.ChainID = v.GetUint64("chain_id")
	if network.ChainID != 0 && network.ExplorerURL == "" {
		network.ExplorerURL = DefaultExplorerURL(network.ChainID)
	}
	cfg.Network = network

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find a project marker file
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry or Hardhat project (none of %s found)", strings.Join(projectMarkers, ", "))
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".deployer"))

	// Set up environment variables
	v.SetEnvPrefix("DEPLOYER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.FoundryConfig)
}
