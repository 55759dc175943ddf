package gitlab

import (
	"context"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/gitprobe/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitprobe/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	publicHost   = "gitlab.com"
	perPage      = 50
)

// ProviderRepository implements repositories.ProviderRepository for GitLab.
// A source host other than gitlab.com points the client at a self-managed
// instance's API base, fixed at construction.
type ProviderRepository struct {
	source entities.GitSource
	client *gl.Client
}

// NewProviderRepository creates a GitLab adapter for the given source and
// credentials. GitLab authenticates with a personal access token; for basic
// secrets the password field is used as the token.
func NewProviderRepository(
	source entities.GitSource,
	secret entities.RepoSecret,
) domainRepos.ProviderRepository {
	token, ok := secret.Token()
	if !ok {
		_, password, hasBasic := secret.BasicCredentials()
		if hasBasic {
			token = password
		}
	}

	opts := []gl.ClientOptionFunc{gl.WithCustomRetryMax(0)}
	if !strings.EqualFold(source.Host, publicHost) {
		opts = append(opts, gl.WithBaseURL("https://"+source.Host+"/api/v4"))
	}

	client, err := gl.NewClient(token, opts...)
	if err != nil {
		// Degrade to a client-less adapter rather than failing construction;
		// every operation returns its empty value.
		logger.Debugf("gitlab: client construction failed for %s: %v", source.Host, err)
		return &ProviderRepository{source: source, client: nil}
	}

	return &ProviderRepository{source: source, client: client}
}

func (p *ProviderRepository) Name() string { return providerName }

// projectID returns the URL-encoded-ready project identifier.
func (p *ProviderRepository) projectID() string {
	return p.source.FullName()
}

// ref returns a pointer to the source ref, or nil for the default branch.
func (p *ProviderRepository) ref() *string {
	if p.source.Ref == "" {
		return nil
	}
	return gl.Ptr(p.source.Ref)
}

// CheckReachability probes the project resource and classifies the outcome.
func (p *ProviderRepository) CheckReachability(ctx context.Context) entities.RepoStatus {
	if p.client == nil {
		return entities.StatusUnreachable
	}

	project, resp, err := p.client.Projects.GetProject(p.projectID(), nil, gl.WithContext(ctx))
	if err != nil {
		if resp != nil {
			return entities.StatusFromHTTPCode(resp.StatusCode)
		}
		logger.Debugf("gitlab: reachability probe failed for %s: %v", p.source.FullName(), err)
		return entities.StatusUnreachable
	}

	if strings.EqualFold(project.Path, p.source.Name) || strings.EqualFold(project.Name, p.source.Name) {
		return entities.StatusReachable
	}
	return entities.StatusUnreachable
}

// ListBranches returns the branch names, or an empty list on any failure.
func (p *ProviderRepository) ListBranches(ctx context.Context) []string {
	if p.client == nil {
		return []string{}
	}

	opts := &gl.ListBranchesOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}
	branches, _, err := p.client.Branches.ListBranches(p.projectID(), opts, gl.WithContext(ctx))
	if err != nil {
		logger.Debugf("gitlab: branch listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	names := make([]string, 0, len(branches))
	for _, branch := range branches {
		names = append(names, branch.Name)
	}
	return names
}

// ListFiles returns the flat paths under dir, relative to the context
// directory, or an empty list on any failure.
func (p *ProviderRepository) ListFiles(ctx context.Context, dir string) []string {
	if p.client == nil {
		return []string{}
	}

	target := p.source.ResolvePath(dir)
	opts := &gl.ListTreeOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Ref:         p.ref(),
	}
	if target != "" {
		opts.Path = gl.Ptr(target)
	}

	nodes, _, err := p.client.Repositories.ListTree(p.projectID(), opts, gl.WithContext(ctx))
	if err != nil {
		logger.Debugf("gitlab: file listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	paths := make([]string, 0, len(nodes))
	for _, node := range nodes {
		paths = append(paths, node.Path)
	}
	return paths
}

// ListLanguages returns the project languages, largest share first.
func (p *ProviderRepository) ListLanguages(ctx context.Context) []string {
	if p.client == nil {
		return []string{}
	}

	languages, _, err := p.client.Projects.GetProjectLanguages(p.projectID(), gl.WithContext(ctx))
	if err != nil || languages == nil {
		logger.Debugf("gitlab: language listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	shares := *languages
	names := make([]string, 0, len(shares))
	for name := range shares {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if shares[names[i]] != shares[names[j]] {
			return shares[names[i]] > shares[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// ListTags returns the project tags sorted by semantic version, newest
// first, or an empty list on any failure.
func (p *ProviderRepository) ListTags(ctx context.Context) []string {
	if p.client == nil {
		return []string{}
	}

	opts := &gl.ListTagsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}
	tags, _, err := p.client.Tags.ListTags(p.projectID(), opts, gl.WithContext(ctx))
	if err != nil {
		logger.Debugf("gitlab: tag listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	sortVersionsDescending(names)
	return names
}

// FileExists reports whether the raw content at path can be fetched.
func (p *ProviderRepository) FileExists(ctx context.Context, path string) bool {
	_, ok := p.GetFileContent(ctx, path)
	return ok
}

// FolderExists reports whether the directory at path has any entries.
func (p *ProviderRepository) FolderExists(ctx context.Context, path string) bool {
	return len(p.ListFiles(ctx, path)) > 0
}

// GetFileContent fetches the raw content at path as text.
func (p *ProviderRepository) GetFileContent(ctx context.Context, path string) (string, bool) {
	if p.client == nil {
		return "", false
	}

	target := p.source.ResolvePath(path)
	opts := &gl.GetRawFileOptions{Ref: p.ref()}

	raw, _, err := p.client.RepositoryFiles.GetRawFile(p.projectID(), target, opts, gl.WithContext(ctx))
	if err != nil {
		logger.Debugf("gitlab: content fetch failed for %s:%s: %v", p.source.FullName(), path, err)
		return "", false
	}
	return string(raw), true
}

// --- version sorting ---

func sortVersionsDescending(versions []string) {
	sort.Slice(versions, func(i, j int) bool {
		v1 := normalizeVersion(versions[i])
		v2 := normalizeVersion(versions[j])
		if semver.IsValid(v1) && semver.IsValid(v2) {
			return semver.Compare(v1, v2) > 0
		}
		return versions[i] > versions[j]
	})
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
