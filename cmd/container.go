package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/compozy/rcbot/internal/config"
	"github.com/compozy/rcbot/internal/repository"
	"github.com/compozy/rcbot/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	logger *zap.Logger

	githubRepo repository.GithubRepository
	slackSvc   service.SlackService
}

// containerOptions carries what the command line decides before loading config.
type containerOptions struct {
	configFile string
	verbose    bool
	logJSON    bool
	// override runs after the config is loaded and before it is validated
	override func(*config.Config)
	out      io.Writer
}

// newContainer creates a new container with all the dependencies.
func newContainer(opts containerOptions) (*container, error) {
	var overrides []func(*config.Config)
	if opts.override != nil {
		overrides = append(overrides, opts.override)
	}
	cfg, err := config.LoadConfig(repository.NewOSFileSystem(), opts.configFile, overrides...)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel, opts.verbose, opts.logJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger = logger.With(zap.String("run_id", uuid.New().String()))
	logger.Debug("configuration loaded", zap.Bool("production", cfg.Production))

	githubRepo, err := repository.NewGithubRepository(cfg.GithubToken, repository.GithubOptions{
		Timeout:    cfg.RequestTimeout,
		RetryCount: uint64(cfg.RetryCount),
		RetryDelay: cfg.RetryDelay,
	}, logger.Named("github"))
	if err != nil {
		return nil, err
	}

	slackSvc, err := service.NewSlackService(service.SlackOptions{
		WebhookURL: cfg.SlackWebhookURL,
		Production: cfg.Production,
		Output:     opts.out,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		RetryCount: uint64(cfg.RetryCount),
		RetryDelay: cfg.RetryDelay,
	}, logger.Named("slack"))
	if err != nil {
		return nil, err
	}

	return &container{
		cfg:        cfg,
		logger:     logger,
		githubRepo: githubRepo,
		slackSvc:   slackSvc,
	}, nil
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(newVersionCmd())
	return nil
}
