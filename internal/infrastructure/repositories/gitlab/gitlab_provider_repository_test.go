//nolint:testpackage // exercises the adapter against a local HTTP double
package gitlab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/gitprobe/internal/domain/entities"
)

func newSource(t *testing.T, rawURL string, opts entities.SourceOptions) entities.GitSource {
	t.Helper()
	opts.URL = rawURL
	source, err := entities.NewGitSource(opts)
	require.NoError(t, err)
	return source
}

// newTestProvider points the client-go instance at the test server.
// Retries stay disabled so failures surface on the first response.
func newTestProvider(t *testing.T, srv *httptest.Server, source entities.GitSource) *ProviderRepository {
	t.Helper()

	client, err := gl.NewClient(
		"",
		gl.WithBaseURL(srv.URL+"/api/v4"),
		gl.WithHTTPClient(srv.Client()),
		gl.WithCustomRetryMax(0),
	)
	require.NoError(t, err)

	return &ProviderRepository{source: source, client: client}
}

func TestCheckReachability(t *testing.T) {
	t.Parallel()

	t.Run("should report reachable when the project path matches", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v4/projects/group/repo", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id": 1, "name": "Repo", "path": "repo"}`))
		}))
		defer srv.Close()
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := newTestProvider(t, srv, source)

		// when
		status := provider.CheckReachability(context.Background())

		// then
		assert.Equal(t, entities.StatusReachable, status)
	})

	t.Run("should map HTTP error codes to statuses", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			code     int
			expected entities.RepoStatus
		}{
			{name: "rate limited", code: http.StatusTooManyRequests, expected: entities.StatusRateLimitExceeded},
			{name: "forbidden", code: http.StatusForbidden, expected: entities.StatusPrivateRepo},
			{name: "not found", code: http.StatusNotFound, expected: entities.StatusResourceNotFound},
			{name: "server error", code: http.StatusInternalServerError, expected: entities.StatusInvalidSelection},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(tt.code)
					_, _ = w.Write([]byte(`{"message": "nope"}`))
				}))
				defer srv.Close()
				source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
				provider := newTestProvider(t, srv, source)

				// when
				status := provider.CheckReachability(context.Background())

				// then
				assert.Equal(t, tt.expected, status)
			})
		}
	})

	t.Run("should report unreachable on transport failure", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := newTestProvider(t, srv, source)
		srv.Close()

		// when
		status := provider.CheckReachability(context.Background())

		// then
		assert.Equal(t, entities.StatusUnreachable, status)
	})

	t.Run("should report unreachable without a client", func(t *testing.T) {
		t.Parallel()

		// given
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := &ProviderRepository{source: source, client: nil}

		// when / then
		assert.Equal(t, entities.StatusUnreachable, provider.CheckReachability(context.Background()))
		assert.Empty(t, provider.ListBranches(context.Background()))
		assert.Empty(t, provider.ListLanguages(context.Background()))
		assert.False(t, provider.FileExists(context.Background(), "Dockerfile"))
	})
}

func TestListBranches(t *testing.T) {
	t.Parallel()

	t.Run("should return the branch names", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v4/projects/group/repo/repository/branches", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name": "main"}, {"name": "dev"}]`))
		}))
		defer srv.Close()
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := newTestProvider(t, srv, source)

		// when
		branches := provider.ListBranches(context.Background())

		// then
		assert.Equal(t, []string{"main", "dev"}, branches)
	})

	t.Run("should return an empty list on failure", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := newTestProvider(t, srv, source)

		// when
		branches := provider.ListBranches(context.Background())

		// then
		assert.Empty(t, branches)
	})
}

func TestListFiles(t *testing.T) {
	t.Parallel()

	t.Run("should list the tree under the context directory", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v4/projects/group/repo/repository/tree", r.URL.Path)
			assert.Equal(t, "svc", r.URL.Query().Get("path"))
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"path": "svc/Dockerfile", "type": "blob"},
				{"path": "svc/main.go", "type": "blob"}
			]`))
		}))
		defer srv.Close()
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{
			Ref:        "main",
			ContextDir: "svc",
		})
		provider := newTestProvider(t, srv, source)

		// when
		files := provider.ListFiles(context.Background(), "")

		// then
		assert.Equal(t, []string{"svc/Dockerfile", "svc/main.go"}, files)
	})

	t.Run("should omit the ref for the default branch", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("ref"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := newTestProvider(t, srv, source)

		// when
		files := provider.ListFiles(context.Background(), "")

		// then
		assert.Empty(t, files)
	})
}

func TestListLanguages(t *testing.T) {
	t.Parallel()

	t.Run("should sort languages by share descending", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v4/projects/group/repo/languages", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"Go": 82.5, "Shell": 12.5, "Makefile": 5.0}`))
		}))
		defer srv.Close()
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := newTestProvider(t, srv, source)

		// when
		languages := provider.ListLanguages(context.Background())

		// then
		assert.Equal(t, []string{"Go", "Shell", "Makefile"}, languages)
	})
}

func TestListTags(t *testing.T) {
	t.Parallel()

	t.Run("should sort tags by semantic version descending", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name": "1.2.0"}, {"name": "2.0.0"}, {"name": "1.10.0"}]`))
		}))
		defer srv.Close()
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := newTestProvider(t, srv, source)

		// when
		tags := provider.ListTags(context.Background())

		// then
		assert.Equal(t, []string{"2.0.0", "1.10.0", "1.2.0"}, tags)
	})
}

func TestFileOperations(t *testing.T) {
	t.Parallel()

	rawHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v4/projects/group/repo/repository/files/Dockerfile/raw" {
			_, _ = w.Write([]byte("FROM scratch"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "404 File Not Found"}`))
	}

	t.Run("should fetch the raw file content", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(rawHandler))
		defer srv.Close()
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := newTestProvider(t, srv, source)

		// when
		content, ok := provider.GetFileContent(context.Background(), "Dockerfile")

		// then
		require.True(t, ok)
		assert.Equal(t, "FROM scratch", content)
	})

	t.Run("should report existence from the raw content probe", func(t *testing.T) {
		t.Parallel()

		// given
		srv := httptest.NewServer(http.HandlerFunc(rawHandler))
		defer srv.Close()
		source := newSource(t, "https://gitlab.com/group/repo", entities.SourceOptions{})
		provider := newTestProvider(t, srv, source)

		// when / then
		assert.True(t, provider.FileExists(context.Background(), "Dockerfile"))
		assert.False(t, provider.FileExists(context.Background(), "missing.txt"))
	})
}
