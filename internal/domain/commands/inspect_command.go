package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitprobe/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitprobe/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/gitprobe/internal/infrastructure/repositories"
)

// Inspect is the interface for the full repository inspection command.
type Inspect interface {
	Execute(ctx context.Context, opts InspectOptions) (*entities.InspectionReport, error)
}

// InspectOptions holds runtime options for an inspection.
type InspectOptions struct {
	Source   entities.GitSource
	Secret   entities.RepoSecret
	Provider string // empty means auto-detect from the source URL
}

// InspectCommand runs a full repository probe: reachability first, then
// branches, languages, tags, and the well-known CI/CD artifacts. Remote
// failures never surface as errors; they degrade inside the adapter.
type InspectCommand struct {
	registry *infraRepos.ProviderRegistry
}

// NewInspectCommand creates a new InspectCommand with the given registry.
func NewInspectCommand(registry *infraRepos.ProviderRegistry) *InspectCommand {
	return &InspectCommand{registry: registry}
}

// Execute probes the repository and assembles the inspection report.
// Errors are returned only for configuration problems (unknown provider);
// a non-reachable repository still produces a report.
func (it *InspectCommand) Execute(
	ctx context.Context,
	opts InspectOptions,
) (*entities.InspectionReport, error) {
	provider, err := resolveProvider(it.registry, opts.Provider, opts.Source, opts.Secret)
	if err != nil {
		return nil, err
	}

	report := &entities.InspectionReport{
		Provider:   provider.Name(),
		Repository: opts.Source.FullName(),
	}

	report.Status = provider.CheckReachability(ctx)
	if report.Status != entities.StatusReachable {
		logger.Debugf("repository %s is not reachable: %s", opts.Source.FullName(), report.Status)
		return report, nil
	}

	report.Branches = provider.ListBranches(ctx)
	report.Languages = provider.ListLanguages(ctx)
	report.Tags = provider.ListTags(ctx)
	report.HasDockerfile = provider.FileExists(ctx, opts.Source.DockerfilePath)
	report.HasDevfile = provider.FileExists(ctx, opts.Source.DevfilePath)
	report.HasTektonFolder = provider.FolderExists(ctx, entities.TektonFolder)
	report.HasPackageManifest = provider.FileExists(ctx, entities.PackageManifest)
	report.Strategy = chooseStrategy(report)

	return report, nil
}

// chooseStrategy picks the import strategy from the detected artifacts:
// a Devfile wins over a Dockerfile, anything else imports as generic.
func chooseStrategy(report *entities.InspectionReport) entities.ImportStrategy {
	switch {
	case report.HasDevfile:
		return entities.StrategyDevfile
	case report.HasDockerfile:
		return entities.StrategyDockerfile
	default:
		return entities.StrategyGeneric
	}
}

// resolveProvider builds the provider adapter, auto-detecting the type from
// the source URL when none was chosen.
func resolveProvider(
	registry *infraRepos.ProviderRegistry,
	providerType string,
	source entities.GitSource,
	secret entities.RepoSecret,
) (domainRepos.ProviderRepository, error) {
	if providerType == "" {
		detected, err := infraRepos.DetectProviderType(source.URL)
		if err != nil {
			return nil, err
		}
		providerType = detected
	}

	provider, err := registry.Get(providerType, source, secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}
	return provider, nil
}
