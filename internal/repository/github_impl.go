package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/compozy/rcbot/internal/config"
	"github.com/compozy/rcbot/internal/domain"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v74/github"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ErrGithubTokenRequired is returned when no access token is configured.
var ErrGithubTokenRequired = errors.New("accessToken is empty :(")

const (
	// DefaultPerPage is the page size used for listing endpoints.
	DefaultPerPage = 100
	// MaxRateLimitSleep bounds a single wait on a secondary rate limit.
	MaxRateLimitSleep = 15 * time.Minute
)

// GithubOptions tunes the GitHub transport.
type GithubOptions struct {
	Timeout    time.Duration
	RetryCount uint64
	RetryDelay time.Duration
}

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	client     *github.Client
	retryCount uint64
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewGithubRepository creates a new GithubRepository with validation.
func NewGithubRepository(token string, opts GithubOptions, logger *zap.Logger) (GithubRepository, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrGithubTokenRequired
	}
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	waiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(MaxRateLimitSleep, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{
		Timeout: opts.Timeout,
		Transport: &oauth2.Transport{
			Base:   waiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		},
	}
	return newGithubRepository(github.NewClient(httpClient), opts, logger), nil
}

func newGithubRepository(client *github.Client, opts GithubOptions, logger *zap.Logger) *githubRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = time.Second
	}
	return &githubRepository{
		client:     client,
		retryCount: opts.RetryCount,
		retryDelay: delay,
		logger:     logger,
	}
}

// ListOrganizationRepos lists all repositories of org.
func (r *githubRepository) ListOrganizationRepos(ctx context.Context, org string) ([]domain.Repository, error) {
	opt := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: DefaultPerPage},
	}
	var repos []domain.Repository
	for {
		var page []*github.Repository
		var resp *github.Response
		err := r.withRetry(ctx, "list organization repos", func(ctx context.Context) (*github.Response, error) {
			var err error
			page, resp, err = r.client.Repositories.ListByOrg(ctx, org, opt)
			return resp, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories of %s: %w", org, err)
		}
		for _, repo := range page {
			repos = append(repos, domain.Repository{
				Name:       repo.GetName(),
				OwnerLogin: repo.GetOwner().GetLogin(),
				Archived:   repo.GetArchived(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
		r.logger.Debug("fetching next page of repositories", zap.String("org", org), zap.Int("page", opt.Page))
	}
	return repos, nil
}

// CompareBranches compares req.Head against req.Base. Commits from every
// page are kept in host order; files are only listed on the first page.
func (r *githubRepository) CompareBranches(
	ctx context.Context,
	req domain.CompareRequest,
) (*domain.BranchComparison, error) {
	opts := &github.ListOptions{PerPage: DefaultPerPage}
	out := &domain.BranchComparison{}
	for first := true; ; first = false {
		var cmp *github.CommitsComparison
		var resp *github.Response
		err := r.withRetry(ctx, "compare branches", func(ctx context.Context) (*github.Response, error) {
			var err error
			cmp, resp, err = r.client.Repositories.CompareCommits(ctx, req.Owner, req.Repo, req.Base, req.Head, opts)
			return resp, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to compare %s...%s in %s/%s: %w", req.Base, req.Head, req.Owner, req.Repo, err)
		}
		if first {
			for _, f := range cmp.Files {
				out.ChangedFiles = append(out.ChangedFiles, f.GetFilename())
			}
		}
		for _, c := range cmp.Commits {
			out.Commits = append(out.Commits, toDomainCommit(c))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func toDomainCommit(c *github.RepositoryCommit) domain.Commit {
	commit := domain.Commit{
		AuthorLogin:   c.GetAuthor().GetLogin(),
		CommitterName: c.GetCommit().GetCommitter().GetName(),
	}
	if date := c.GetCommit().GetCommitter().Date; date != nil {
		t := date.Time
		commit.CommitterDate = &t
	}
	return commit
}

// withRetry runs call with exponential backoff on transient failures.
func (r *githubRepository) withRetry(
	ctx context.Context,
	op string,
	call func(ctx context.Context) (*github.Response, error),
) error {
	backoff := retry.WithMaxRetries(r.retryCount, retry.NewExponential(r.retryDelay))
	return retry.Do(ctx, backoff, func(retryCtx context.Context) error {
		resp, err := call(retryCtx)
		if err == nil {
			return nil
		}
		if isTransient(retryCtx, resp, err) {
			r.logger.Debug("retrying GitHub call", zap.String("op", op), zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
}

func isTransient(ctx context.Context, resp *github.Response, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return false
	}
	if resp == nil || resp.Response == nil {
		return true
	}
	return resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
}
