package core

import (
	"context"
	"time"
)

// ReplyClient defines the interface for remote reply generation.
// Implementations live under internal/adapters and wrap a generative
// AI provider. A nil client is a valid configuration and means the
// service always answers with the local template.
type ReplyClient interface {
	// GenerateReply produces a suggested answer for a classified email.
	GenerateReply(ctx context.Context, result *ClassificationResult, input *EmailInput) (string, error)
}

// ReplyCache memoizes generated replies so identical requests within
// the TTL window skip the remote call. Implementations must be safe
// for concurrent use.
type ReplyCache interface {
	Get(key string) (*ReplySuggestion, bool)
	Set(key string, reply *ReplySuggestion, ttl time.Duration)
}
