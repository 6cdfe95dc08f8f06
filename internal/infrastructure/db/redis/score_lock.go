package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lockTTL = 15 * time.Second

// ScoreLock serializes compute-and-persist scoring runs per client, backed by
// Redis SETNX. Two concurrent runs for the same client would race on the
// credit score write (lost update); the lock makes the second run fail fast.
// Key format: scorelock:<client_id>
type ScoreLock struct {
	client *redis.Client
}

// NewScoreLock creates a ScoreLock wrapping the given Redis client.
func NewScoreLock(client *redis.Client) *ScoreLock {
	return &ScoreLock{client: client}
}

// Acquire takes the per-client lock. Returns false when another scoring run
// currently holds it. The lock self-expires after lockTTL so a crashed run
// cannot wedge the client forever.
func (l *ScoreLock) Acquire(ctx context.Context, clientID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(clientID), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("acquire score lock: %w", err)
	}
	return ok, nil
}

// Release frees the per-client lock.
func (l *ScoreLock) Release(ctx context.Context, clientID string) error {
	return l.client.Del(ctx, l.key(clientID)).Err()
}

func (l *ScoreLock) key(clientID string) string {
	return fmt.Sprintf("scorelock:%s", clientID)
}
