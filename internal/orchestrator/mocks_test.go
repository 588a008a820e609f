package orchestrator

import (
	"context"

	"github.com/compozy/rcbot/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) ListOrganizationRepos(ctx context.Context, org string) ([]domain.Repository, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Repository), args.Error(1)
}

func (m *mockGithubRepository) CompareBranches(
	ctx context.Context,
	req domain.CompareRequest,
) (*domain.BranchComparison, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchComparison), args.Error(1)
}

// Mock for SlackService
type mockSlackService struct{ mock.Mock }

func (m *mockSlackService) PostMessage(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}
