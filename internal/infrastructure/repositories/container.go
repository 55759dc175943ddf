package repositories

import (
	"go.uber.org/dig"

	bbRepo "github.com/rios0rios0/gitprobe/internal/infrastructure/repositories/bitbucket"
	ghRepo "github.com/rios0rios0/gitprobe/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/gitprobe/internal/infrastructure/repositories/gitlab"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register(TypeBitbucket, bbRepo.NewProviderRepository)
		reg.Register(TypeGitHub, ghRepo.NewProviderRepository)
		reg.Register(TypeGitLab, glRepo.NewProviderRepository)
		return reg
	})
}
