package entities

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Well-known repository artifacts probed during an inspection.
const (
	DefaultDockerfilePath = "Dockerfile"
	DefaultDevfilePath    = "devfile.yaml"
	TektonFolder          = ".tekton"
	PackageManifest       = "package.json"
)

// GitSource describes the remote repository a probe runs against.
// Host, Owner, and Name are derived once from the URL at construction
// and never change afterwards.
type GitSource struct {
	URL            string
	Ref            string // empty means the provider's default branch
	ContextDir     string
	DockerfilePath string
	DevfilePath    string

	Host  string
	Owner string
	Name  string
}

// SourceOptions holds the caller-supplied fields for a GitSource.
type SourceOptions struct {
	URL            string
	Ref            string
	ContextDir     string
	DockerfilePath string
	DevfilePath    string
}

// NewGitSource parses the repository URL and applies defaults for the
// Dockerfile and Devfile paths.
func NewGitSource(opts SourceOptions) (GitSource, error) {
	host, owner, name, err := ParseRepoURL(opts.URL)
	if err != nil {
		return GitSource{}, err
	}

	dockerfilePath := opts.DockerfilePath
	if dockerfilePath == "" {
		dockerfilePath = DefaultDockerfilePath
	}
	devfilePath := opts.DevfilePath
	if devfilePath == "" {
		devfilePath = DefaultDevfilePath
	}

	return GitSource{
		URL:            opts.URL,
		Ref:            opts.Ref,
		ContextDir:     strings.Trim(opts.ContextDir, "/"),
		DockerfilePath: dockerfilePath,
		DevfilePath:    devfilePath,
		Host:           host,
		Owner:          owner,
		Name:           name,
	}, nil
}

// ResolvePath joins a repository-relative path under the context directory,
// stripping any leading slash.
func (s GitSource) ResolvePath(p string) string {
	p = strings.TrimPrefix(p, "/")
	if s.ContextDir == "" {
		return p
	}
	if p == "" {
		return s.ContextDir
	}
	return path.Join(s.ContextDir, p)
}

// FullName returns the owner/name identifier of the repository.
func (s GitSource) FullName() string {
	return s.Owner + "/" + s.Name
}

// ParseRepoURL extracts host, owner, and repository name from an HTTPS or
// SSH remote URL. A trailing .git suffix is ignored. The owner keeps any
// intermediate path segments (GitLab subgroups, Bitbucket Server projects).
func ParseRepoURL(rawURL string) (string, string, string, error) {
	endpoint, err := transport.NewEndpoint(rawURL)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid repository URL %q: %w", rawURL, err)
	}
	// Local paths parse as file endpoints without a host.
	if endpoint.Host == "" {
		return "", "", "", fmt.Errorf("invalid repository URL %q: no host", rawURL)
	}

	cleaned := strings.Trim(strings.TrimSuffix(endpoint.Path, ".git"), "/")
	segments := strings.Split(cleaned, "/")
	if len(segments) < 2 || segments[0] == "" { //nolint:mnd // need owner + repo
		return "", "", "", fmt.Errorf("cannot extract owner/repo from URL: %s", rawURL)
	}

	owner := strings.Join(segments[:len(segments)-1], "/")
	name := segments[len(segments)-1]

	return endpoint.Host, owner, name, nil
}
