package repository

import (
	"context"

	"github.com/compozy/rcbot/internal/domain"
)

// GithubRepository defines the GitHub operations the reminder needs.

type GithubRepository interface {
	// ListOrganizationRepos returns every repository of org, across all pages.
	ListOrganizationRepos(ctx context.Context, org string) ([]domain.Repository, error)
	// CompareBranches compares req.Head against req.Base in one repository.
	CompareBranches(ctx context.Context, req domain.CompareRequest) (*domain.BranchComparison, error)
}
