package github

import (
	"context"
	"net/http"
	"sort"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/gitprobe/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitprobe/internal/domain/repositories"
)

const (
	providerName = "github"
	publicHost   = "github.com"
	perPage      = 50
)

// ProviderRepository implements repositories.ProviderRepository for GitHub.
// A source host other than github.com switches the client to the GitHub
// Enterprise API layout, fixed at construction.
type ProviderRepository struct {
	source entities.GitSource
	client *gh.Client
}

// NewProviderRepository creates a GitHub adapter for the given source and
// credentials.
func NewProviderRepository(
	source entities.GitSource,
	secret entities.RepoSecret,
) domainRepos.ProviderRepository {
	var httpClient *http.Client
	if username, password, ok := secret.BasicCredentials(); ok {
		transport := &gh.BasicAuthTransport{Username: username, Password: password}
		httpClient = transport.Client()
	}

	client := gh.NewClient(httpClient)
	if token, ok := secret.Token(); ok {
		client = client.WithAuthToken(token)
	}

	if !strings.EqualFold(source.Host, publicHost) {
		base := "https://" + source.Host + "/api/v3/"
		upload := "https://" + source.Host + "/api/uploads/"
		enterprise, err := client.WithEnterpriseURLs(base, upload)
		if err != nil {
			logger.Debugf("github: invalid enterprise host %q: %v", source.Host, err)
		} else {
			client = enterprise
		}
	}

	return &ProviderRepository{source: source, client: client}
}

func (p *ProviderRepository) Name() string { return providerName }

// CheckReachability probes the repository resource and classifies the outcome.
func (p *ProviderRepository) CheckReachability(ctx context.Context) entities.RepoStatus {
	repo, resp, err := p.client.Repositories.Get(ctx, p.source.Owner, p.source.Name)
	if err != nil {
		if resp != nil {
			return entities.StatusFromHTTPCode(resp.StatusCode)
		}
		logger.Debugf("github: reachability probe failed for %s: %v", p.source.FullName(), err)
		return entities.StatusUnreachable
	}

	if strings.EqualFold(repo.GetName(), p.source.Name) {
		return entities.StatusReachable
	}
	return entities.StatusUnreachable
}

// ListBranches returns the branch names, or an empty list on any failure.
func (p *ProviderRepository) ListBranches(ctx context.Context) []string {
	opts := &gh.BranchListOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
	branches, _, err := p.client.Repositories.ListBranches(ctx, p.source.Owner, p.source.Name, opts)
	if err != nil {
		logger.Debugf("github: branch listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	names := make([]string, 0, len(branches))
	for _, branch := range branches {
		names = append(names, branch.GetName())
	}
	return names
}

// ListFiles returns the flat paths under dir, relative to the context
// directory, or an empty list on any failure.
func (p *ProviderRepository) ListFiles(ctx context.Context, dir string) []string {
	target := p.source.ResolvePath(dir)
	opts := &gh.RepositoryContentGetOptions{Ref: p.source.Ref}

	file, directory, _, err := p.client.Repositories.GetContents(
		ctx, p.source.Owner, p.source.Name, target, opts,
	)
	if err != nil {
		logger.Debugf("github: file listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	if file != nil {
		return []string{file.GetPath()}
	}

	paths := make([]string, 0, len(directory))
	for _, entry := range directory {
		paths = append(paths, entry.GetPath())
	}
	return paths
}

// ListLanguages returns the repository languages, largest share first.
func (p *ProviderRepository) ListLanguages(ctx context.Context) []string {
	languages, _, err := p.client.Repositories.ListLanguages(ctx, p.source.Owner, p.source.Name)
	if err != nil {
		logger.Debugf("github: language listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// ListTags returns the repository tags sorted by semantic version, newest
// first, or an empty list on any failure.
func (p *ProviderRepository) ListTags(ctx context.Context) []string {
	opts := &gh.ListOptions{PerPage: perPage}
	tags, _, err := p.client.Repositories.ListTags(ctx, p.source.Owner, p.source.Name, opts)
	if err != nil {
		logger.Debugf("github: tag listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.GetName())
	}

	sortVersionsDescending(names)
	return names
}

// FileExists reports whether the content at path can be fetched.
func (p *ProviderRepository) FileExists(ctx context.Context, path string) bool {
	_, ok := p.GetFileContent(ctx, path)
	return ok
}

// FolderExists reports whether the directory at path has any entries.
func (p *ProviderRepository) FolderExists(ctx context.Context, path string) bool {
	return len(p.ListFiles(ctx, path)) > 0
}

// GetFileContent fetches the decoded content at path.
func (p *ProviderRepository) GetFileContent(ctx context.Context, path string) (string, bool) {
	target := p.source.ResolvePath(path)
	opts := &gh.RepositoryContentGetOptions{Ref: p.source.Ref}

	file, _, _, err := p.client.Repositories.GetContents(
		ctx, p.source.Owner, p.source.Name, target, opts,
	)
	if err != nil || file == nil {
		logger.Debugf("github: content fetch failed for %s:%s: %v", p.source.FullName(), path, err)
		return "", false
	}

	content, err := file.GetContent()
	if err != nil {
		logger.Debugf("github: content decode failed for %s:%s: %v", p.source.FullName(), path, err)
		return "", false
	}
	return content, true
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
