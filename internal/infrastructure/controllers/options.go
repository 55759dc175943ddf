package controllers

import (
	"github.com/spf13/cobra"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitprobe/config"
	"github.com/rios0rios0/gitprobe/internal/domain/entities"
	infraRepos "github.com/rios0rios0/gitprobe/internal/infrastructure/repositories"
)

// loadConfig loads the configuration file named by --config, falling back to
// the standard locations. A missing config file is not an error; probes can
// run anonymously or on flags alone.
func loadConfig(cmd *cobra.Command) *config.Config {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		found, err := config.FindConfigFile()
		if err != nil {
			return nil
		}
		path = found
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Warnf("Ignoring config file %q: %v", path, err)
		return nil
	}
	return cfg
}

// sourceFromFlags assembles the Git source descriptor from the URL argument,
// the probe flags, and the configured defaults.
func sourceFromFlags(cmd *cobra.Command, cfg *config.Config, rawURL string) (entities.GitSource, error) {
	opts := entities.SourceOptions{URL: rawURL}
	opts.Ref, _ = cmd.Flags().GetString("ref")
	opts.ContextDir, _ = cmd.Flags().GetString("context-dir")
	opts.DockerfilePath, _ = cmd.Flags().GetString("dockerfile")
	opts.DevfilePath, _ = cmd.Flags().GetString("devfile")

	if cfg != nil {
		if opts.Ref == "" {
			opts.Ref = cfg.Defaults.Ref
		}
		if opts.ContextDir == "" {
			opts.ContextDir = cfg.Defaults.ContextDir
		}
		if opts.DockerfilePath == "" {
			opts.DockerfilePath = cfg.Defaults.DockerfilePath
		}
		if opts.DevfilePath == "" {
			opts.DevfilePath = cfg.Defaults.DevfilePath
		}
	}

	return entities.NewGitSource(opts)
}

// secretFromFlags derives the repository secret from the credential flags,
// falling back to the credentials configured for the provider type.
func secretFromFlags(cmd *cobra.Command, cfg *config.Config, rawURL string) entities.RepoSecret {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	token, _ := cmd.Flags().GetString("token")

	switch {
	case username != "":
		return entities.NewBasicSecret(username, password)
	case token != "":
		return entities.NewTokenSecret(token)
	}

	if cfg != nil {
		providerType, _ := cmd.Flags().GetString("provider")
		if providerType == "" {
			providerType, _ = infraRepos.DetectProviderType(rawURL)
		}
		if block, ok := cfg.ProviderFor(providerType); ok {
			return block.Secret()
		}
	}

	return entities.AnonymousSecret()
}
