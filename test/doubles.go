// Package testdoubles provides hand-crafted test doubles (spies, stubs,
// dummies) for the domain interfaces.
package testdoubles

import (
	"context"
	"strings"

	"github.com/rios0rios0/gitprobe/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitprobe/internal/domain/repositories"
)

// SpyProvider implements repositories.ProviderRepository as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyProvider struct {
	// --- identity ---
	ProviderName string
	Source       entities.GitSource
	Secret       entities.RepoSecret

	// --- CheckReachability ---
	Status entities.RepoStatus
	// spy: number of probes issued
	ReachabilityCalls int

	// --- ListBranches ---
	Branches []string

	// --- ListFiles ---
	Files map[string][]string // dir -> paths
	// spy: dirs that were listed
	ListedDirs []string

	// --- ListLanguages ---
	Languages []string

	// --- ListTags ---
	Tags []string

	// --- FileExists / GetFileContent ---
	FileContents map[string]string // path -> content
	// spy: paths checked for existence
	CheckedPaths []string
}

var _ domainRepos.ProviderRepository = (*SpyProvider)(nil)

func (p *SpyProvider) Name() string { return p.ProviderName }

func (p *SpyProvider) CheckReachability(_ context.Context) entities.RepoStatus {
	p.ReachabilityCalls++
	return p.Status
}

func (p *SpyProvider) ListBranches(_ context.Context) []string {
	if p.Branches == nil {
		return []string{}
	}
	return p.Branches
}

func (p *SpyProvider) ListFiles(_ context.Context, dir string) []string {
	p.ListedDirs = append(p.ListedDirs, dir)
	files, ok := p.Files[dir]
	if !ok {
		return []string{}
	}
	return files
}

func (p *SpyProvider) ListLanguages(_ context.Context) []string {
	if p.Languages == nil {
		return []string{}
	}
	return p.Languages
}

func (p *SpyProvider) ListTags(_ context.Context) []string {
	if p.Tags == nil {
		return []string{}
	}
	return p.Tags
}

func (p *SpyProvider) FileExists(ctx context.Context, path string) bool {
	_, ok := p.GetFileContent(ctx, path)
	return ok
}

func (p *SpyProvider) FolderExists(ctx context.Context, path string) bool {
	return len(p.ListFiles(ctx, path)) > 0
}

func (p *SpyProvider) GetFileContent(_ context.Context, path string) (string, bool) {
	p.CheckedPaths = append(p.CheckedPaths, strings.TrimPrefix(path, "/"))
	content, ok := p.FileContents[path]
	return content, ok
}
