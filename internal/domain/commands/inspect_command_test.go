package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitprobe/internal/domain/commands"
	"github.com/rios0rios0/gitprobe/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitprobe/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/gitprobe/internal/infrastructure/repositories"
	testdoubles "github.com/rios0rios0/gitprobe/test"
)

func newRegistryWith(name string, spy *testdoubles.SpyProvider) *infraRepos.ProviderRegistry {
	registry := infraRepos.NewProviderRegistry()
	registry.Register(name, func(
		source entities.GitSource, secret entities.RepoSecret,
	) domainRepos.ProviderRepository {
		spy.ProviderName = name
		spy.Source = source
		spy.Secret = secret
		return spy
	})
	return registry
}

func newSource(t *testing.T, url string) entities.GitSource {
	t.Helper()
	source, err := entities.NewGitSource(entities.SourceOptions{URL: url})
	require.NoError(t, err)
	return source
}

func TestInspectCommand(t *testing.T) {
	t.Parallel()

	t.Run("should assemble a full report for a reachable repository", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyProvider{
			Status:    entities.StatusReachable,
			Branches:  []string{"main", "dev"},
			Languages: []string{"Go", "Shell"},
			Tags:      []string{"2.0.0", "1.0.0"},
			Files:     map[string][]string{".tekton": {".tekton/pipeline.yaml"}},
			FileContents: map[string]string{
				"Dockerfile":   "FROM scratch",
				"package.json": "{}",
			},
		}
		registry := newRegistryWith("bitbucket", spy)
		command := commands.NewInspectCommand(registry)

		// when
		report, err := command.Execute(context.Background(), commands.InspectOptions{
			Source: newSource(t, "https://bitbucket.org/org/repo"),
			Secret: entities.AnonymousSecret(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "bitbucket", report.Provider)
		assert.Equal(t, "org/repo", report.Repository)
		assert.Equal(t, entities.StatusReachable, report.Status)
		assert.Equal(t, []string{"main", "dev"}, report.Branches)
		assert.Equal(t, []string{"Go", "Shell"}, report.Languages)
		assert.Equal(t, []string{"2.0.0", "1.0.0"}, report.Tags)
		assert.True(t, report.HasDockerfile)
		assert.False(t, report.HasDevfile)
		assert.True(t, report.HasTektonFolder)
		assert.True(t, report.HasPackageManifest)
	})

	t.Run("should short-circuit when the repository is not reachable", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyProvider{Status: entities.StatusPrivateRepo}
		registry := newRegistryWith("bitbucket", spy)
		command := commands.NewInspectCommand(registry)

		// when
		report, err := command.Execute(context.Background(), commands.InspectOptions{
			Source: newSource(t, "https://bitbucket.org/org/repo"),
			Secret: entities.AnonymousSecret(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StatusPrivateRepo, report.Status)
		assert.Equal(t, 1, spy.ReachabilityCalls)
		assert.Empty(t, report.Branches)
		assert.Empty(t, spy.CheckedPaths)
		assert.Empty(t, spy.ListedDirs)
	})

	t.Run("should prefer the devfile strategy over dockerfile", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyProvider{
			Status: entities.StatusReachable,
			FileContents: map[string]string{
				"Dockerfile":   "FROM scratch",
				"devfile.yaml": "schemaVersion: 2.2.0",
			},
		}
		registry := newRegistryWith("bitbucket", spy)
		command := commands.NewInspectCommand(registry)

		// when
		report, err := command.Execute(context.Background(), commands.InspectOptions{
			Source: newSource(t, "https://bitbucket.org/org/repo"),
			Secret: entities.AnonymousSecret(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StrategyDevfile, report.Strategy)
	})

	t.Run("should fall back to the dockerfile strategy", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyProvider{
			Status:       entities.StatusReachable,
			FileContents: map[string]string{"Dockerfile": "FROM scratch"},
		}
		registry := newRegistryWith("bitbucket", spy)
		command := commands.NewInspectCommand(registry)

		// when
		report, err := command.Execute(context.Background(), commands.InspectOptions{
			Source: newSource(t, "https://bitbucket.org/org/repo"),
			Secret: entities.AnonymousSecret(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StrategyDockerfile, report.Strategy)
	})

	t.Run("should import as generic without build artifacts", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyProvider{Status: entities.StatusReachable}
		registry := newRegistryWith("bitbucket", spy)
		command := commands.NewInspectCommand(registry)

		// when
		report, err := command.Execute(context.Background(), commands.InspectOptions{
			Source: newSource(t, "https://bitbucket.org/org/repo"),
			Secret: entities.AnonymousSecret(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.StrategyGeneric, report.Strategy)
	})

	t.Run("should auto-detect the provider from the source URL", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyProvider{Status: entities.StatusReachable}
		registry := newRegistryWith("github", spy)
		command := commands.NewInspectCommand(registry)

		// when
		report, err := command.Execute(context.Background(), commands.InspectOptions{
			Source: newSource(t, "https://github.com/org/repo"),
			Secret: entities.AnonymousSecret(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "github", report.Provider)
	})

	t.Run("should fail for an unknown provider type", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewProviderRegistry()
		command := commands.NewInspectCommand(registry)

		// when
		_, err := command.Execute(context.Background(), commands.InspectOptions{
			Source:   newSource(t, "https://bitbucket.org/org/repo"),
			Secret:   entities.AnonymousSecret(),
			Provider: "bitbucket",
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown provider type")
	})

	t.Run("should fail when the host is unknown and no provider was chosen", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewProviderRegistry()
		command := commands.NewInspectCommand(registry)

		// when
		_, err := command.Execute(context.Background(), commands.InspectOptions{
			Source: newSource(t, "https://git.example.com/org/repo"),
			Secret: entities.AnonymousSecret(),
		})

		// then
		require.Error(t, err)
	})
}

func TestBranchesCommand(t *testing.T) {
	t.Parallel()

	t.Run("should list the branch names", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyProvider{Branches: []string{"main", "release/1.x"}}
		registry := newRegistryWith("gitlab", spy)
		command := commands.NewBranchesCommand(registry)

		// when
		branches, err := command.Execute(context.Background(), commands.BranchesOptions{
			Source: newSource(t, "https://gitlab.com/group/repo"),
			Secret: entities.AnonymousSecret(),
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"main", "release/1.x"}, branches)
	})

	t.Run("should return an empty list when the provider has none", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &testdoubles.SpyProvider{}
		registry := newRegistryWith("gitlab", spy)
		command := commands.NewBranchesCommand(registry)

		// when
		branches, err := command.Execute(context.Background(), commands.BranchesOptions{
			Source: newSource(t, "https://gitlab.com/group/repo"),
			Secret: entities.AnonymousSecret(),
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, branches)
	})
}
