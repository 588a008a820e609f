package service

import "time"

// Timeout constants for service operations
const (
	// DefaultWebhookTimeout is the timeout for a single webhook request
	DefaultWebhookTimeout = 30 * time.Second
	// DefaultWebhookRetryDelay is the initial delay between webhook retries
	DefaultWebhookRetryDelay = time.Second
)
