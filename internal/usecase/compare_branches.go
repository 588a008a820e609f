package usecase

import (
	"context"
	"time"

	"github.com/compozy/rcbot/internal/domain"
	"github.com/compozy/rcbot/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CompareBranchesUseCase compares head against base in every repository and
// returns the repositories with pending commits.
type CompareBranchesUseCase struct {
	GithubRepo repository.GithubRepository
	// Concurrency caps in-flight comparisons. Zero or less means no cap.
	Concurrency int
	Now         func() time.Time
	Logger      *zap.Logger
}

// Execute compares every repository, archived ones included, and waits for
// all comparisons to settle. The result keeps the order of repos.
func (uc *CompareBranchesUseCase) Execute(ctx context.Context, repos []domain.Repository, base, head string) []domain.RepoInfo {
	now := uc.now()
	logger := uc.logger()
	entries := make([]*domain.RepoInfo, len(repos))

	var g errgroup.Group
	if uc.Concurrency > 0 {
		g.SetLimit(uc.Concurrency)
	}
	for i, repo := range repos {
		g.Go(func() error {
			res := domain.Capture(func() (*domain.BranchComparison, error) {
				return uc.GithubRepo.CompareBranches(ctx, domain.CompareRequest{
					Owner: repo.OwnerLogin,
					Repo:  repo.Name,
					Base:  base,
					Head:  head,
				})
			})
			if !res.Ok() {
				logger.Warn("branch comparison failed",
					zap.String("repo", repo.Name), zap.String("error", res.Err))
			}
			if info, ok := BuildRepoInfo(repo, res, now); ok {
				entries[i] = &info
			}
			return nil
		})
	}
	_ = g.Wait()

	infos := make([]domain.RepoInfo, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			infos = append(infos, *e)
		}
	}
	return infos
}

func (uc *CompareBranchesUseCase) now() time.Time {
	if uc.Now == nil {
		return time.Now()
	}
	return uc.Now()
}

func (uc *CompareBranchesUseCase) logger() *zap.Logger {
	if uc.Logger == nil {
		return zap.NewNop()
	}
	return uc.Logger
}
