package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/compozy/rcbot/internal/domain"
	"github.com/compozy/rcbot/internal/repository"
	"github.com/compozy/rcbot/internal/service"
	"github.com/compozy/rcbot/internal/usecase"
	"go.uber.org/zap"
)

// ReminderConfig contains configuration for the reminder workflow.
type ReminderConfig struct {
	Organization                   string
	BaseBranch                     string
	HeadBranch                     string
	SendNotificationEvenAllSuccess bool
}

// NewReminderConfig returns a ReminderConfig that reports successful passes too.
func NewReminderConfig(organization, baseBranch, headBranch string) ReminderConfig {
	return ReminderConfig{
		Organization:                   organization,
		BaseBranch:                     baseBranch,
		HeadBranch:                     headBranch,
		SendNotificationEvenAllSuccess: true,
	}
}

// Validate returns the first configuration problem in priority order.
func (c ReminderConfig) Validate() error {
	if msg, failed := domain.FirstTrue(
		domain.Check{Message: MessageEmptyOrganization, Failed: c.Organization == ""},
		domain.Check{Message: MessageEmptyHeadBranch, Failed: c.HeadBranch == ""},
		domain.Check{Message: MessageEmptyBaseBranch, Failed: c.BaseBranch == ""},
	); failed {
		return errors.New(msg)
	}
	if err := ValidateBranchName("head", c.HeadBranch); err != nil {
		return err
	}
	return ValidateBranchName("base", c.BaseBranch)
}

// Option customizes a ReminderOrchestrator.
type Option func(*ReminderOrchestrator)

// WithClock sets the source of the current time used for delays.
func WithClock(now func() time.Time) Option {
	return func(o *ReminderOrchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *ReminderOrchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency caps the number of comparisons in flight.
func WithConcurrency(n int) Option {
	return func(o *ReminderOrchestrator) {
		o.concurrency = n
	}
}

// ReminderOrchestrator checks every repository of an organization for
// commits pending between two branches and reports them to the channel.
type ReminderOrchestrator struct {
	cfg         ReminderConfig
	githubRepo  repository.GithubRepository
	slackSvc    service.SlackService
	logger      *zap.Logger
	now         func() time.Time
	concurrency int
}

// NewReminderOrchestrator creates a new reminder orchestrator.
func NewReminderOrchestrator(
	cfg ReminderConfig,
	githubRepo repository.GithubRepository,
	slackSvc service.SlackService,
	opts ...Option,
) (*ReminderOrchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := &ReminderOrchestrator{
		cfg:        cfg,
		githubRepo: githubRepo,
		slackSvc:   slackSvc,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Execute runs one reminder pass. The returned error only reports a failed
// delivery; collaborator failures are turned into channel messages. The pass
// has no deadline of its own, requests are bounded by their transports.
func (o *ReminderOrchestrator) Execute(ctx context.Context) error {
	logger := o.logger.With(
		zap.String("organization", o.cfg.Organization),
		zap.String("base", o.cfg.BaseBranch),
		zap.String("head", o.cfg.HeadBranch),
	)
	logger.Info("start checking branches")

	repos := domain.Capture(func() ([]domain.Repository, error) {
		return o.githubRepo.ListOrganizationRepos(ctx, o.cfg.Organization)
	})
	if msg, failed := domain.FirstTrue(
		domain.Check{Message: MessageFetchReposFailed, Failed: !repos.Ok()},
		domain.Check{Message: MessageNoRepos, Failed: len(repos.Value) == 0},
	); failed {
		logger.Warn("stopping before comparing branches", zap.String("reason", msg), zap.String("error", repos.Err))
		return o.notify(ctx, msg)
	}

	compare := &usecase.CompareBranchesUseCase{
		GithubRepo:  o.githubRepo,
		Concurrency: o.concurrency,
		Now:         o.now,
		Logger:      logger,
	}
	infos := compare.Execute(ctx, repos.Value, o.cfg.BaseBranch, o.cfg.HeadBranch)
	summary := usecase.SummarizeDelays(infos)
	logger.Info("branches compared",
		zap.Int("repos", len(repos.Value)),
		zap.Int("not_updated", summary.Repos),
		zap.Float64("max_delay_days", summary.Max),
		zap.Float64("mean_delay_days", summary.Mean),
		zap.Float64("median_delay_days", summary.Median),
	)

	if len(infos) > 0 {
		prepare := &usecase.PrepareReminderUseCase{}
		msg, err := prepare.Execute(ctx, o.cfg.HeadBranch, o.cfg.BaseBranch, infos)
		if err != nil {
			return fmt.Errorf("failed to prepare reminder: %w", err)
		}
		return o.notify(ctx, msg)
	}
	if !o.cfg.SendNotificationEvenAllSuccess {
		logger.Info("all repositories are up to date, nothing to send")
		return nil
	}
	return o.notify(ctx, usecase.AllSuccessMessage)
}

func (o *ReminderOrchestrator) notify(ctx context.Context, text string) error {
	if err := o.slackSvc.PostMessage(ctx, text); err != nil {
		o.logger.Error("failed to post message", zap.Error(err))
		return fmt.Errorf("failed to post message: %w", err)
	}
	return nil
}
