package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitprobe/internal/domain/entities"
)

// Config is the top-level configuration for gitprobe.
type Config struct {
	Providers []ProviderConfig `yaml:"providers"`
	Defaults  ProbeDefaults    `yaml:"defaults"`
}

// ProviderConfig holds the credentials for a single Git hosting provider.
// Username/password and token are mutually exclusive; values may be inline,
// ${ENV_VAR} references, or paths to token files.
type ProviderConfig struct {
	Type     string `yaml:"type"` // "bitbucket", "github", "gitlab"
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Token    string `yaml:"token"`
}

// ProbeDefaults holds fallback values applied to every probe.
type ProbeDefaults struct {
	Ref            string `yaml:"ref"`
	ContextDir     string `yaml:"context_dir"`
	DockerfilePath string `yaml:"dockerfile_path"`
	DevfilePath    string `yaml:"devfile_path"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding environment variables
// and resolving credential file paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	// Resolve credentials (env vars and file paths)
	for i := range cfg.Providers {
		cfg.Providers[i].Password = resolveCredential(cfg.Providers[i].Password)
		cfg.Providers[i].Token = resolveCredential(cfg.Providers[i].Token)
	}

	if validateErr := validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitprobe.yaml",
		".gitprobe.yml",
		"gitprobe.yaml",
		"gitprobe.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ProviderFor returns the credential block configured for the given provider
// type, if any.
func (c *Config) ProviderFor(providerType string) (ProviderConfig, bool) {
	for _, p := range c.Providers {
		if p.Type == providerType {
			return p, true
		}
	}
	return ProviderConfig{}, false
}

// Secret converts the credential block into a repository secret.
func (p ProviderConfig) Secret() entities.RepoSecret {
	switch {
	case p.Username != "":
		return entities.NewBasicSecret(p.Username, p.Password)
	case p.Token != "":
		return entities.NewTokenSecret(p.Token)
	default:
		return entities.AnonymousSecret()
	}
}

// resolveCredential expands environment variable references (${VAR}) and, if
// the resulting string is a path to an existing file, reads the value from
// the file.
func resolveCredential(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the value from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read credential file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read credential from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(cfg *Config) error {
	for i, p := range cfg.Providers {
		if p.Type == "" {
			return fmt.Errorf("providers[%d].type is required", i)
		}
		if p.Username != "" && p.Password == "" {
			return fmt.Errorf(
				"providers[%d].password is required when username is set",
				i,
			)
		}
		if p.Username == "" && p.Token == "" {
			return fmt.Errorf(
				"providers[%d] needs either username/password or a token",
				i,
			)
		}
	}

	return nil
}
