package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MatchCache is the slice of the Redis cache the matching usecases need.
// Implementations degrade to a bypass when the backend is unavailable.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

func matchGroupCacheKey(solicitationID uuid.UUID) string {
	return "matches:groups:" + solicitationID.String()
}
