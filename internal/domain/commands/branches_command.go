package commands

import (
	"context"

	"github.com/rios0rios0/gitprobe/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gitprobe/internal/infrastructure/repositories"
)

// Branches is the interface for the branch listing command.
type Branches interface {
	Execute(ctx context.Context, opts BranchesOptions) ([]string, error)
}

// BranchesOptions holds runtime options for a branch listing.
type BranchesOptions struct {
	Source   entities.GitSource
	Secret   entities.RepoSecret
	Provider string // empty means auto-detect from the source URL
}

// BranchesCommand lists the branches of a remote repository.
type BranchesCommand struct {
	registry *infraRepos.ProviderRegistry
}

// NewBranchesCommand creates a new BranchesCommand with the given registry.
func NewBranchesCommand(registry *infraRepos.ProviderRegistry) *BranchesCommand {
	return &BranchesCommand{registry: registry}
}

// Execute returns the branch names of the repository. A remote failure yields
// an empty list; errors are returned only for configuration problems.
func (it *BranchesCommand) Execute(ctx context.Context, opts BranchesOptions) ([]string, error) {
	provider, err := resolveProvider(it.registry, opts.Provider, opts.Source, opts.Secret)
	if err != nil {
		return nil, err
	}
	return provider.ListBranches(ctx), nil
}
