package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// replayTTL must outlive the widget's accepted payload age so a hash cannot
// expire from the guard while still fresh enough to log in.
const replayTTL = 10 * time.Minute

// ReplayGuard remembers widget payload hashes so a captured login payload
// cannot be submitted twice.
// Key format: login:replay:<hash>
type ReplayGuard struct {
	client *redis.Client
}

func NewReplayGuard(client *redis.Client) *ReplayGuard {
	return &ReplayGuard{client: client}
}

// Seen reports whether this payload hash was already accepted.
func (g *ReplayGuard) Seen(ctx context.Context, hash string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(hash)).Result()
	if err != nil {
		return false, fmt.Errorf("replay check: %w", err)
	}
	return n > 0, nil
}

// Mark records an accepted payload hash (expires after replayTTL).
func (g *ReplayGuard) Mark(ctx context.Context, hash string) error {
	return g.client.Set(ctx, g.key(hash), "1", replayTTL).Err()
}

func (g *ReplayGuard) key(hash string) string {
	return "login:replay:" + hash
}
