// file: service/cache.go

package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ICacheClient defines the contract for a cache client.
// This abstraction decouples the WalletService from a concrete Redis
// implementation, enabling easier testing and future flexibility. The cache
// is advisory only: it sits in front of unlocked balance reads and is never
// consulted by the balance engine, which always reads the authoritative row
// under lock.
type ICacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
