package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker provides idempotency checks for settlement callbacks backed by
// Redis. Key format: settlement:<task_title>:<username>:<status>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact callback has already been processed.
func (d *DedupChecker) IsDuplicate(ctx context.Context, taskTitle, username, status string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(taskTitle, username, status)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this callback has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, taskTitle, username, status string) error {
	return d.client.Set(ctx, d.key(taskTitle, username, status), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(taskTitle, username, status string) string {
	return fmt.Sprintf("settlement:%s:%s:%s", taskTitle, username, status)
}
