package repositories

import (
	"fmt"
	"strings"
)

// Hosted provider names as registered in the registry.
const (
	TypeGitHub    = "github"
	TypeGitLab    = "gitlab"
	TypeBitbucket = "bitbucket"
)

// DetectProviderType infers the provider type from a repository URL. Only the
// hosted SaaS hostnames are recognized; self-hosted instances cannot be told
// apart by URL alone, so unknown hosts require an explicit provider choice.
func DetectProviderType(rawURL string) (string, error) {
	switch {
	case strings.Contains(rawURL, "github.com"):
		return TypeGitHub, nil
	case strings.Contains(rawURL, "gitlab.com"):
		return TypeGitLab, nil
	case strings.Contains(rawURL, "bitbucket.org"):
		return TypeBitbucket, nil
	}
	return "", fmt.Errorf("cannot detect the provider for %q, pass it explicitly", rawURL)
}
