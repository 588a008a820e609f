package service

import "context"

// SlackService defines the interface for posting to the reminder channel.

type SlackService interface {
	PostMessage(ctx context.Context, text string) error
}
