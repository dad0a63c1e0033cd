package cache

import (
	"context"
	"time"

	"TripPlanner/storage/redis"
)

const lockPrefix = "lock"

// TryLock takes a best-effort distributed lock via SetNX. Used by queue
// consumers to deduplicate redelivered messages across worker instances.
func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullKey := redis.Key(lockPrefix, key)

	result, err := redis.Client().SetNX(ctx, fullKey, 1, ttl).Result()
	if err != nil {
		return false, err
	}

	return result, nil
}

func Unlock(ctx context.Context, key string) error {
	fullKey := redis.Key(lockPrefix, key)

	return redis.Client().Del(ctx, fullKey).Err()
}
