package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// ErrWebhookURLRequired is returned when a production service has no webhook.
var ErrWebhookURLRequired = errors.New("webHookURL is empty :(")

// SlackOptions configures the Slack service.
type SlackOptions struct {
	WebhookURL string
	// Production posts to the webhook; otherwise messages go to Output.
	Production bool
	Output     io.Writer
	HTTPClient *http.Client
	RetryCount uint64
	RetryDelay time.Duration
}

// slackService is the implementation of the SlackService interface.
type slackService struct {
	webhookURL string
	production bool
	out        io.Writer
	client     *http.Client
	retryCount uint64
	retryDelay time.Duration
	logger     *zap.Logger
}

type slackPayload struct {
	Text string `json:"text"`
}

// NewSlackService creates a new SlackService.
func NewSlackService(opts SlackOptions, logger *zap.Logger) (SlackService, error) {
	webhookURL := strings.TrimSpace(opts.WebhookURL)
	if opts.Production && webhookURL == "" {
		return nil, ErrWebhookURLRequired
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultWebhookTimeout}
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = DefaultWebhookRetryDelay
	}
	return &slackService{
		webhookURL: webhookURL,
		production: opts.Production,
		out:        out,
		client:     client,
		retryCount: opts.RetryCount,
		retryDelay: delay,
		logger:     logger,
	}, nil
}

// PostMessage sends text to the reminder channel wrapped in a code block.
// Outside production the plain text is written to the configured output.
func (s *slackService) PostMessage(ctx context.Context, text string) error {
	s.logger.Info("sending the message to the channel", zap.Bool("production", s.production))
	if !s.production {
		if _, err := fmt.Fprintln(s.out, text); err != nil {
			return fmt.Errorf("failed to write message: %w", err)
		}
		return nil
	}
	body, err := json.Marshal(slackPayload{Text: "```" + text + "```"})
	if err != nil {
		return fmt.Errorf("failed to encode slack payload: %w", err)
	}
	backoff := retry.WithMaxRetries(s.retryCount, retry.NewExponential(s.retryDelay))
	return retry.Do(ctx, backoff, func(retryCtx context.Context) error {
		return s.post(retryCtx, body)
	})
}

func (s *slackService) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("failed to post message: %w", err)
		}
		return retry.RetryableError(fmt.Errorf("failed to post message: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err = fmt.Errorf("webhook returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		s.logger.Debug("retrying webhook post", zap.Int("status", resp.StatusCode))
		return retry.RetryableError(err)
	}
	return err
}
