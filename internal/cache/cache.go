package cache

import (
	"context"
	"time"
)

// TopicCache remembers which topics have already been turned into posts so
// repeat generation cycles skip them.
type TopicCache interface {
	Seen(ctx context.Context, hash string) (bool, error)
	Mark(ctx context.Context, hash string, ttl time.Duration) error
	Clear(ctx context.Context) error
	Close() error
}
