package repositories

import (
	"context"

	"github.com/rios0rios0/gitprobe/internal/domain/entities"
)

// ProviderRepository abstracts a Git hosting service (Bitbucket, GitHub,
// GitLab) behind a uniform repository-metadata contract.
//
// Every operation degrades instead of failing: transport and HTTP errors are
// captured inside the adapter and surface either as a RepoStatus (reachability
// only) or as an empty/negative result. Callers never receive an error for a
// remote failure. List results are never nil.
type ProviderRepository interface {
	// Name returns the provider identifier, e.g. "bitbucket".
	Name() string

	// CheckReachability probes the repository resource. HTTP failures map to
	// {429: RateLimitExceeded, 403: PrivateRepo, 404: ResourceNotFound,
	// other: InvalidSelection}; a successful probe whose repository name does
	// not match the source, or any unmodeled outcome, yields Unreachable.
	CheckReachability(ctx context.Context) entities.RepoStatus

	// ListBranches returns the branch names of the repository.
	ListBranches(ctx context.Context) []string

	// ListFiles returns the flat paths under dir, relative to the source's
	// context directory.
	ListFiles(ctx context.Context, dir string) []string

	// ListLanguages returns the languages the provider reports for the
	// repository, most prominent first.
	ListLanguages(ctx context.Context) []string

	// ListTags returns the repository tags sorted by semantic version,
	// newest first.
	ListTags(ctx context.Context) []string

	// FileExists reports whether the raw content at path (context-directory
	// relative, leading slash ignored) can be fetched.
	FileExists(ctx context.Context, path string) bool

	// FolderExists reports whether the directory at path has any entries.
	FolderExists(ctx context.Context, path string) bool

	// GetFileContent fetches the raw content at path. The second return
	// value is false when the file could not be fetched.
	GetFileContent(ctx context.Context, path string) (string, bool)
}
