package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/gatehouse/authengine/domain"
	"github.com/gatehouse/authengine/repository"
)

type permissionCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewPermissionCache creates a Redis-backed read-through cache for effective
// permission sets. The TTL bounds staleness independently of session expiry;
// the facade additionally invalidates on session death.
func NewPermissionCache(client *redislib.Client, ttl time.Duration) repository.PermissionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &permissionCache{
		client: client,
		prefix: "perm:",
		ttl:    ttl,
	}
}

func (r *permissionCache) Get(ctx context.Context, userID string) (domain.PermissionSet, bool, error) {
	result, err := r.client.Get(ctx, r.key(userID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, false, nil
		}
		return nil, false, domain.StorageFailure("permission_cache.get", err)
	}

	var set domain.PermissionSet
	if err := json.Unmarshal([]byte(result), &set); err != nil {
		return nil, false, domain.StorageFailure("permission_cache.decode", err)
	}
	if set.IsEmpty() {
		// An empty entry is indistinguishable from "never resolved".
		return nil, false, nil
	}
	return set, true, nil
}

func (r *permissionCache) Set(ctx context.Context, userID string, set domain.PermissionSet, ttl time.Duration) error {
	if userID == "" {
		return domain.ErrInvalidPayload
	}
	if ttl <= 0 || ttl > r.ttl {
		ttl = r.ttl
	}

	payload, err := json.Marshal(set)
	if err != nil {
		return domain.StorageFailure("permission_cache.encode", err)
	}
	if err := r.client.Set(ctx, r.key(userID), payload, ttl).Err(); err != nil {
		return domain.StorageFailure("permission_cache.set", err)
	}
	return nil
}

func (r *permissionCache) Invalidate(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, r.key(userID)).Err(); err != nil {
		return domain.StorageFailure("permission_cache.invalidate", err)
	}
	return nil
}

func (r *permissionCache) key(userID string) string {
	return fmt.Sprintf("%s%s", r.prefix, userID)
}
