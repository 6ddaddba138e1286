package ports

import (
	"context"

	"github.com/sayahatkz/sayahat/internal/core/domain"
)

// ChatCompleter talks to an OpenAI-compatible chat completion endpoint.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []domain.ChatMessage, temperature float64, maxTokens int) (string, error)
}

// EventPublisher publishes safety events to a message broker.
type EventPublisher interface {
	PublishSOS(ctx context.Context, alert *domain.SOSAlert) error
	PublishLocation(ctx context.Context, ownerID string, loc domain.LastLocation) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
