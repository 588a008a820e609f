package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Organization                   string        `mapstructure:"organization"`
	BaseBranch                     string        `mapstructure:"base_branch"`
	HeadBranch                     string        `mapstructure:"head_branch"`
	GithubToken                    string        `mapstructure:"github_token"`
	SlackWebhookURL                string        `mapstructure:"slack_webhook_url"`
	SendNotificationEvenAllSuccess bool          `mapstructure:"send_notification_even_all_success"`
	Production                     bool          `mapstructure:"production"`
	Concurrency                    int           `mapstructure:"concurrency"`
	RetryCount                     int           `mapstructure:"retry_count"`
	RetryDelay                     time.Duration `mapstructure:"retry_delay"`
	RequestTimeout                 time.Duration `mapstructure:"request_timeout"`
	LogLevel                       string        `mapstructure:"log_level"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		SendNotificationEvenAllSuccess: true,
		RetryCount:                     3,
		RetryDelay:                     time.Second,
		RequestTimeout:                 30 * time.Second,
		LogLevel:                       "info",
	}
}

// Validate validates the configuration. Empty organization and branch names
// are reported by the reminder itself, in its own priority order.
func (c *Config) Validate() error {
	// GitHub token is validated here only when provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
	}
	if c.Organization != "" {
		if err := ValidateGitHubOwner(c.Organization); err != nil {
			return fmt.Errorf("invalid organization: %w", err)
		}
	}
	if c.Production && c.SlackWebhookURL == "" {
		return fmt.Errorf("slack_webhook_url is required in production")
	}
	if c.SlackWebhookURL != "" {
		if err := ValidateWebhookURL(c.SlackWebhookURL); err != nil {
			return fmt.Errorf("invalid slack_webhook_url: %w", err)
		}
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency cannot be negative")
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("retry_count cannot be negative")
	}
	if c.RetryDelay <= 0 {
		return fmt.Errorf("retry_delay must be positive")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout cannot be negative")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

var (
	classicToken  = regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	prefixedToken = regexp.MustCompile(`^(ghp|gho|ghu|ghs|ghr)_[a-zA-Z0-9]{20,}$`)
	fineGrained   = regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{20,}$`)
)

// ValidateGitHubToken checks the token looks like one GitHub issues. Lengths
// are not pinned, GitHub may change them; the API rejects bad tokens anyway.
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if !classicToken.MatchString(token) &&
		!prefixedToken.MatchString(token) &&
		!fineGrained.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

var ownerName = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

// ValidateGitHubOwner validates a GitHub user or organization login.
func ValidateGitHubOwner(owner string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !ownerName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	return nil
}

// ValidateWebhookURL checks that raw is an absolute http(s) URL.
func ValidateWebhookURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// LoadConfig reads configuration from file, environment and defaults.
// configFile may be empty, in which case .rc-bot.yaml is looked up in the
// working directory and is optional. Overrides run before validation.
func LoadConfig(fs afero.Fs, configFile string, overrides ...func(*Config)) (*Config, error) {
	if err := loadDotEnv(fs, DotEnvFile); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetFs(fs)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".rc-bot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	// Configure environment variables
	v.SetEnvPrefix("RC_BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// BindEnv checks the variables in order; INPUT_* are GitHub Actions inputs
	bindings := map[string][]string{
		"organization":      {"RC_BOT_ORGANIZATION", "ORGANIZATION_NAME", "INPUT_ORGANIZATION_NAME"},
		"base_branch":       {"RC_BOT_BASE_BRANCH", "BASE_BRANCH", "INPUT_BASE_BRANCH"},
		"head_branch":       {"RC_BOT_HEAD_BRANCH", "HEAD_BRANCH", "INPUT_HEAD_BRANCH"},
		"github_token":      {"RC_BOT_GITHUB_TOKEN", "GH_ACCESS_TOKEN", "INPUT_GH_ACCESS_TOKEN", "GITHUB_TOKEN"},
		"slack_webhook_url": {"RC_BOT_SLACK_WEBHOOK_URL", "SLACK_CHANNEL_WEBHOOK_URL", "INPUT_SLACK_CHANNEL_WEBHOOK_URL"},
		"send_notification_even_all_success": {
			"RC_BOT_SEND_NOTIFICATION_EVEN_ALL_SUCCESS",
			"SEND_NOTIFICATION_EVEN_ALL_SUCCESS",
			"INPUT_SEND_NOTIFICATION_EVEN_ALL_SUCCESS",
		},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("send_notification_even_all_success", defaults.SendNotificationEvenAllSuccess)
	v.SetDefault("production", runningInProduction())
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("retry_count", defaults.RetryCount)
	v.SetDefault("retry_delay", defaults.RetryDelay)
	v.SetDefault("request_timeout", defaults.RequestTimeout)
	v.SetDefault("log_level", defaults.LogLevel)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if config.Organization == "" {
		populateOrganizationDefault(&config)
	}
	for _, override := range overrides {
		override(&config)
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// runningInProduction reports whether the bot runs inside GitHub Actions or
// was explicitly started in production mode.
func runningInProduction() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true" || os.Getenv("NODE_ENV") == "production"
}
