package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/compozy/rcbot/internal/domain"
	"github.com/google/go-github/v74/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestRepository creates a githubRepository that talks to a mock HTTP server.
func setupTestRepository(t *testing.T, handler http.Handler) *githubRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	return newGithubRepository(client, GithubOptions{RetryCount: 2, RetryDelay: time.Millisecond}, zap.NewNop())
}

func TestNewGithubRepository(t *testing.T) {
	t.Run("Should fail without a token", func(t *testing.T) {
		repo, err := NewGithubRepository("  ", GithubOptions{}, nil)
		require.ErrorIs(t, err, ErrGithubTokenRequired)
		assert.Nil(t, repo)
	})
	t.Run("Should reject a malformed token", func(t *testing.T) {
		_, err := NewGithubRepository("not-a-token", GithubOptions{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid GitHub token")
	})
	t.Run("Should accept an app token", func(t *testing.T) {
		repo, err := NewGithubRepository("ghs_"+"abcdefghijklmnopqrstuvwxyz0123456789", GithubOptions{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, repo)
	})
}

func TestGithubRepository_ListOrganizationRepos(t *testing.T) {
	t.Run("Should follow every page", func(t *testing.T) {
		var serverURL string
		mux := http.NewServeMux()
		mux.HandleFunc("/orgs/marvel/repos", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, `[{"name":"typescript","owner":{"login":"microsoft"},"archived":true}]`)
				return
			}
			w.Header().Set("Link", fmt.Sprintf(`<%s/orgs/marvel/repos?page=2&per_page=100>; rel="next"`, serverURL))
			fmt.Fprint(w, `[{"name":"react","owner":{"login":"facebook"}}]`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()
		serverURL = server.URL
		client := github.NewClient(server.Client())
		baseURL, err := url.Parse(server.URL + "/")
		require.NoError(t, err)
		client.BaseURL = baseURL
		repo := newGithubRepository(client, GithubOptions{RetryDelay: time.Millisecond}, nil)

		repos, err := repo.ListOrganizationRepos(context.Background(), "marvel")
		require.NoError(t, err)
		assert.Equal(t, []domain.Repository{
			{Name: "react", OwnerLogin: "facebook"},
			{Name: "typescript", OwnerLogin: "microsoft", Archived: true},
		}, repos)
	})
	t.Run("Should retry transient failures", func(t *testing.T) {
		var calls atomic.Int32
		repo := setupTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				fmt.Fprint(w, `{"message":"bad gateway"}`)
				return
			}
			fmt.Fprint(w, `[{"name":"react","owner":{"login":"facebook"}}]`)
		}))
		repos, err := repo.ListOrganizationRepos(context.Background(), "marvel")
		require.NoError(t, err)
		assert.Len(t, repos, 1)
		assert.Equal(t, int32(2), calls.Load())
	})
	t.Run("Should not retry client errors", func(t *testing.T) {
		var calls atomic.Int32
		repo := setupTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		}))
		_, err := repo.ListOrganizationRepos(context.Background(), "marvel")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list repositories of marvel")
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestGithubRepository_CompareBranches(t *testing.T) {
	t.Run("Should map files and commits in order", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/facebook/react/compare/develop...master", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{
				"files": [{"filename": "some.js"}],
				"commits": [
					{"author": {"login": "Iron Man"}, "commit": {"committer": {"name": "Tony", "date": "2026-10-06T10:00:00Z"}}},
					{"commit": {"committer": {"name": "Github"}}}
				]
			}`)
		})
		repo := setupTestRepository(t, mux)

		got, err := repo.CompareBranches(context.Background(), domain.CompareRequest{
			Owner: "facebook", Repo: "react", Base: "develop", Head: "master",
		})
		require.NoError(t, err)
		date := time.Date(2026, 10, 6, 10, 0, 0, 0, time.UTC)
		require.Len(t, got.Commits, 2)
		assert.Equal(t, []string{"some.js"}, got.ChangedFiles)
		assert.Equal(t, "Iron Man", got.Commits[0].AuthorLogin)
		assert.Equal(t, "Tony", got.Commits[0].CommitterName)
		require.NotNil(t, got.Commits[0].CommitterDate)
		assert.True(t, date.Equal(*got.Commits[0].CommitterDate))
		assert.Equal(t, domain.Commit{CommitterName: "Github"}, got.Commits[1])
	})
	t.Run("Should wrap errors with the repository", func(t *testing.T) {
		repo := setupTestRepository(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"No common ancestor"}`)
		}))
		got, err := repo.CompareBranches(context.Background(), domain.CompareRequest{
			Owner: "facebook", Repo: "react", Base: "develop", Head: "master",
		})
		require.Error(t, err)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), "failed to compare develop...master in facebook/react")
	})
}
