package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/everdragons2/deployer/internal/domain/models"
)

// Sentinel errors for domain operations
var (
	// ErrContractNotFound is returned when no artifact exists for a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrNotCompiled is returned when an artifact carries no creation bytecode
	ErrNotCompiled = errors.New("contract has no creation bytecode")

	// ErrChainIDMismatch is returned when the RPC endpoint serves a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrMissingPrivateKey is returned when no deployer key is configured
	ErrMissingPrivateKey = errors.New("private key not configured")

	// ErrInvalidPrivateKey is returned when the configured key cannot be parsed
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrNetworkNotFound is returned when a network name is not configured
	ErrNetworkNotFound = errors.New("network not found")

	// ErrNotDeployed is returned when a confirmed transaction left no code behind
	ErrNotDeployed = errors.New("no contract code at deployed address")
)

// AmbiguousArtifactErr is returned when several artifacts share the requested
// contract name and no interactive selection is possible.
type AmbiguousArtifactErr struct {
	Name    string
	Matches []*models.Contract
}

func (e AmbiguousArtifactErr) Error() string {
	sorted := make([]*models.Contract, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ArtifactPath < sorted[j].ArtifactPath
	})

	var suggestions []string
	for _, contract := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s (%s)", contract.Name, contract.ArtifactPath))
	}

	return fmt.Sprintf("multiple artifacts found for contract %s:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
