package interactive

import (
	"context"
	"fmt"

	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/everdragons2/deployer/internal/domain/models"
	"github.com/everdragons2/deployer/internal/usecase"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter picks one artifact when several share a contract name
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectContract prompts for one of contracts
func (s *SelectorAdapter) SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}
	switch len(contracts) {
	case 0:
		return nil, fmt.Errorf("no contracts provided for selection")
	case 1:
		return contracts[0], nil
	}

	sel := promptui.Select{
		Label: prompt,
		Items: contracts,
		Templates: &promptui.SelectTemplates{
			Active:   "▸ {{ .Name | bold }} {{ .ArtifactPath | cyan }}",
			Inactive: "  {{ .Name }} {{ .ArtifactPath | faint }}",
			Selected: "✓ {{ .ArtifactPath | green }}",
		},
		Searcher: artifactSearcher(artifactList(contracts)),
	}

	index, _, err := sel.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return contracts[index], nil
}

// artifactList exposes artifacts to fuzzy matching by name and path
type artifactList []*models.Contract

func (l artifactList) String(i int) string {
	return l[i].Name + " " + l[i].ArtifactPath
}

func (l artifactList) Len() int {
	return len(l)
}

// artifactSearcher keeps the entries that fuzzy-match the typed input
func artifactSearcher(list artifactList) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}
		for _, match := range fuzzy.FindFrom(input, list) {
			if match.Index == index {
				return true
			}
		}
		return false
	}
}

var _ usecase.ContractSelector = (*SelectorAdapter)(nil)
