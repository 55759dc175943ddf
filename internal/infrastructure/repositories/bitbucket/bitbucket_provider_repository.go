package bitbucket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/gitprobe/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitprobe/internal/domain/repositories"
)

const (
	providerName = "bitbucket"

	cloudHost    = "bitbucket.org"
	cloudAPIBase = "https://api.bitbucket.org/2.0"

	pageLen        = 50
	requestTimeout = 30 * time.Second
)

// ProviderRepository implements repositories.ProviderRepository against the
// Bitbucket REST API. A source host other than bitbucket.org switches the
// adapter into self-hosted (Bitbucket Server) mode, which uses a different
// API base and endpoint shapes. The decision is made once, at construction,
// and drives every URL built afterwards.
type ProviderRepository struct {
	source     entities.GitSource
	secret     entities.RepoSecret
	selfHosted bool
	baseURL    string
	httpClient *http.Client
}

// NewProviderRepository creates a Bitbucket adapter for the given source
// and credentials.
func NewProviderRepository(
	source entities.GitSource,
	secret entities.RepoSecret,
) domainRepos.ProviderRepository {
	selfHosted := !strings.EqualFold(source.Host, cloudHost)
	baseURL := cloudAPIBase
	if selfHosted {
		baseURL = "https://" + source.Host + "/rest/api/1.0"
	}

	return &ProviderRepository{
		source:     source,
		secret:     secret,
		selfHosted: selfHosted,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (p *ProviderRepository) Name() string { return providerName }

// CheckReachability probes the repository resource and classifies the outcome.
func (p *ProviderRepository) CheckReachability(ctx context.Context) entities.RepoStatus {
	var repo struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := p.fetchJSON(ctx, p.repoURL(), &repo); err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) {
			return entities.StatusFromHTTPCode(statusErr.code)
		}
		logger.Debugf("bitbucket: reachability probe failed for %s: %v", p.source.FullName(), err)
		return entities.StatusUnreachable
	}

	if strings.EqualFold(repo.Name, p.source.Name) || strings.EqualFold(repo.Slug, p.source.Name) {
		return entities.StatusReachable
	}
	return entities.StatusUnreachable
}

// ListBranches returns the branch names, or an empty list on any failure.
func (p *ProviderRepository) ListBranches(ctx context.Context) []string {
	var page struct {
		Values []struct {
			Name      string `json:"name"`
			DisplayID string `json:"displayId"`
		} `json:"values"`
	}
	if err := p.fetchJSON(ctx, p.branchesURL(), &page); err != nil {
		logger.Debugf("bitbucket: branch listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	branches := make([]string, 0, len(page.Values))
	for _, value := range page.Values {
		name := value.Name
		if p.selfHosted {
			name = value.DisplayID
		}
		if name != "" {
			branches = append(branches, name)
		}
	}
	return branches
}

// ListFiles returns the flat paths under dir, relative to the context
// directory, or an empty list on any failure. Cloud responses carry objects
// with a path field; Server responses carry plain path strings.
func (p *ProviderRepository) ListFiles(ctx context.Context, dir string) []string {
	target := p.source.ResolvePath(dir)

	if p.selfHosted {
		var page struct {
			Values []string `json:"values"`
		}
		if err := p.fetchJSON(ctx, p.filesURL(target), &page); err != nil {
			logger.Debugf("bitbucket: file listing failed for %s: %v", p.source.FullName(), err)
			return []string{}
		}
		return append([]string{}, page.Values...)
	}

	var page struct {
		Values []struct {
			Path string `json:"path"`
		} `json:"values"`
	}
	if err := p.fetchJSON(ctx, p.filesURL(target), &page); err != nil {
		logger.Debugf("bitbucket: file listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	files := make([]string, 0, len(page.Values))
	for _, value := range page.Values {
		files = append(files, value.Path)
	}
	return files
}

// ListLanguages wraps the repository resource's single language field as a
// one-element list. Bitbucket Server has no language field, so self-hosted
// mode always yields an empty list.
func (p *ProviderRepository) ListLanguages(ctx context.Context) []string {
	var repo struct {
		Language string `json:"language"`
	}
	if err := p.fetchJSON(ctx, p.repoURL(), &repo); err != nil {
		logger.Debugf("bitbucket: language lookup failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}
	if repo.Language == "" {
		return []string{}
	}
	return []string{repo.Language}
}

// ListTags returns the repository tags sorted by semantic version, newest
// first, or an empty list on any failure.
func (p *ProviderRepository) ListTags(ctx context.Context) []string {
	var page struct {
		Values []struct {
			Name      string `json:"name"`
			DisplayID string `json:"displayId"`
		} `json:"values"`
	}
	if err := p.fetchJSON(ctx, p.tagsURL(), &page); err != nil {
		logger.Debugf("bitbucket: tag listing failed for %s: %v", p.source.FullName(), err)
		return []string{}
	}

	tags := make([]string, 0, len(page.Values))
	for _, value := range page.Values {
		name := value.Name
		if p.selfHosted {
			name = value.DisplayID
		}
		if name != "" {
			tags = append(tags, name)
		}
	}

	sortVersionsDescending(tags)
	return tags
}

// FileExists reports whether the raw content at path can be fetched.
func (p *ProviderRepository) FileExists(ctx context.Context, path string) bool {
	_, err := p.fetch(ctx, p.rawFileURL(path))
	return err == nil
}

// FolderExists reports whether the directory at path has any entries.
func (p *ProviderRepository) FolderExists(ctx context.Context, path string) bool {
	return len(p.ListFiles(ctx, path)) > 0
}

// GetFileContent fetches the raw content at path as text.
func (p *ProviderRepository) GetFileContent(ctx context.Context, path string) (string, bool) {
	body, err := p.fetch(ctx, p.rawFileURL(path))
	if err != nil {
		logger.Debugf("bitbucket: content fetch failed for %s:%s: %v", p.source.FullName(), path, err)
		return "", false
	}
	return string(body), true
}

// --- URL construction ---

func (p *ProviderRepository) repoURL() string {
	if p.selfHosted {
		return fmt.Sprintf("%s/projects/%s/repos/%s", p.baseURL, p.source.Owner, p.source.Name)
	}
	return fmt.Sprintf("%s/repositories/%s/%s", p.baseURL, p.source.Owner, p.source.Name)
}

func (p *ProviderRepository) branchesURL() string {
	if p.selfHosted {
		return p.repoURL() + "/branches?limit=" + strconv.Itoa(pageLen)
	}
	return p.repoURL() + "/refs/branches?pagelen=" + strconv.Itoa(pageLen)
}

func (p *ProviderRepository) tagsURL() string {
	if p.selfHosted {
		return p.repoURL() + "/tags?limit=" + strconv.Itoa(pageLen)
	}
	return p.repoURL() + "/refs/tags?pagelen=" + strconv.Itoa(pageLen)
}

func (p *ProviderRepository) filesURL(dir string) string {
	if p.selfHosted {
		target := fmt.Sprintf("%s/files/%s?limit=%d", p.repoURL(), dir, pageLen)
		if p.source.Ref != "" {
			target += "&at=" + url.QueryEscape(p.source.Ref)
		}
		return target
	}
	return fmt.Sprintf("%s/src/%s/%s?pagelen=%d", p.repoURL(), p.ref(), dir, pageLen)
}

func (p *ProviderRepository) rawFileURL(path string) string {
	target := p.source.ResolvePath(path)
	if p.selfHosted {
		rawURL := fmt.Sprintf("%s/raw/%s", p.repoURL(), target)
		if p.source.Ref != "" {
			rawURL += "?at=" + url.QueryEscape(p.source.Ref)
		}
		return rawURL
	}
	return fmt.Sprintf("%s/src/%s/%s", p.repoURL(), p.ref(), target)
}

// ref returns the source ref, falling back to HEAD for the cloud source
// endpoints, which require a ref path segment.
func (p *ProviderRepository) ref() string {
	if p.source.Ref == "" {
		return "HEAD"
	}
	return p.source.Ref
}

// --- network primitive ---

// statusError carries a non-2xx response so callers can branch on the code.
type statusError struct {
	code int
	body []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, string(e.body))
}

// fetch is the single I/O primitive every operation is built on: a GET with
// the derived auth headers and a JSON accept header. Non-2xx responses come
// back as a statusError; the raw body is returned otherwise.
func (p *ProviderRepository) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if header, ok := authorizationHeader(p.secret); ok {
		req.Header.Set("Authorization", header)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &statusError{code: resp.StatusCode, body: body}
	}

	return body, nil
}

func (p *ProviderRepository) fetchJSON(ctx context.Context, rawURL string, out any) error {
	body, err := p.fetch(ctx, rawURL)
	if err != nil {
		return err
	}
	if unmarshalErr := json.Unmarshal(body, out); unmarshalErr != nil {
		return fmt.Errorf("failed to parse response: %w", unmarshalErr)
	}
	return nil
}

// authorizationHeader derives the Authorization header value from the secret.
// Basic secrets store their fields base64-encoded; they are decoded and
// re-encoded as a single user:pass token. Unknown kinds produce no header.
func authorizationHeader(secret entities.RepoSecret) (string, bool) {
	switch secret.Kind {
	case entities.SecretKindBasic:
		username, password, ok := secret.BasicCredentials()
		if !ok {
			return "", false
		}
		token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		return "Basic " + token, true
	case entities.SecretKindToken:
		token, ok := secret.Token()
		if !ok {
			return "", false
		}
		return "Bearer " + token, true
	default:
		return "", false
	}
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
