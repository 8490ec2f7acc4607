package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/everdragons2/deployer/internal/domain"
	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/everdragons2/deployer/internal/domain/models"
	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/samber/lo"
)

// Repository finds compiled artifacts in the Foundry and Hardhat output directories
type Repository struct {
	config   *config.RuntimeConfig
	selector usecase.ContractSelector
	log      *slog.Logger
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, selector usecase.ContractSelector, log *slog.Logger) *Repository {
	return &Repository{
		config:   cfg,
		selector: selector,
		log:      log,
	}
}

// FindContract resolves a contract reference to a deployable artifact.
// The reference is either a contract name ("Token") or a source-qualified
// name ("contracts/Token.sol:Token").
func (r *Repository) FindContract(ctx context.Context, ref string) (*models.Contract, error) {
	source, name := splitRef(ref)

	candidates, err := r.scan(name)
	if err != nil {
		return nil, err
	}

	if source != "" {
		candidates = lo.Filter(candidates, func(c *models.Contract, _ int) bool {
			return strings.HasSuffix(c.Path, source) || filepath.Base(filepath.Dir(c.ArtifactPath)) == filepath.Base(source)
		})
	}

	var contract *models.Contract
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: no artifact for %s in %s, compile the project first",
			domain.ErrContractNotFound, ref, strings.Join(r.config.ArtifactDirs, ", "))
	case 1:
		contract = candidates[0]
	default:
		if r.selector == nil || r.config.NonInteractive {
			return nil, domain.AmbiguousArtifactErr{Name: ref, Matches: candidates}
		}
		contract, err = r.selector.SelectContract(ctx, candidates, fmt.Sprintf("Multiple artifacts found for '%s'. Select one:", ref))
		if err != nil {
			return nil, fmt.Errorf("contract selection failed: %w", err)
		}
	}

	if contract.Artifact.Bytecode.IsEmpty() {
		return nil, fmt.Errorf("%w: %s (%s) is abstract, an interface, or was not compiled",
			domain.ErrNotCompiled, contract.Name, contract.ArtifactPath)
	}
	if !contract.Artifact.Bytecode.IsLinked() {
		return nil, fmt.Errorf("%s (%s) references unlinked libraries", contract.Name, contract.ArtifactPath)
	}

	r.log.Debug("resolved artifact", "contract", contract.Name, "artifact", contract.ArtifactPath)
	return contract, nil
}

// scan walks every artifact directory collecting <Source>.sol/<name>.json files
func (r *Repository) scan(name string) ([]*models.Contract, error) {
	var found []*models.Contract

	for _, dir := range r.config.ArtifactDirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(r.config.ProjectRoot, dir)
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == "build-info" || d.Name() == "cache" {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Name() != name+".json" || !strings.HasSuffix(filepath.Dir(path), ".sol") {
				return nil
			}

			contract, err := r.load(path, name)
			if err != nil {
				return err
			}
			found = append(found, contract)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
	}

	return found, nil
}

func (r *Repository) load(path, name string) (*models.Contract, error) {
	data, err := os.ReadFile(path) //nolint:gosec // artifact path from project walk
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}

	rel, err := filepath.Rel(r.config.ProjectRoot, path)
	if err != nil {
		rel = path
	}

	source := artifact.SourceName
	if source == "" {
		source = filepath.Base(filepath.Dir(path))
	}

	return &models.Contract{
		Name:         name,
		Path:         source,
		ArtifactPath: rel,
		Artifact:     &artifact,
	}, nil
}

func splitRef(ref string) (source, name string) {
	if idx := strings.LastIndex(ref, ":"); idx != -1 {
		return ref[:idx], ref[idx+1:]
	}
	return "", ref
}

// Ensure the adapter implements the interface
var _ usecase.ContractRepository = (*Repository)(nil)
