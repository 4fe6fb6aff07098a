package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"wedding-voucher/voucher-svc/internal/service"
)

// RedisMarker remembers recently dispatched guests so duplicate requests do not queue twice.
type RedisMarker struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMarker(client *redis.Client, ttl time.Duration) *RedisMarker {
	return &RedisMarker{Client: client, TTL: ttl}
}

func (m *RedisMarker) DispatchKey(guestID int64) string {
	return "voucher:dispatch:" + strconv.FormatInt(guestID, 10)
}

func (m *RedisMarker) Acquire(ctx context.Context, guestID int64) (bool, error) {
	return m.Client.SetNX(ctx, m.DispatchKey(guestID), "1", m.TTL).Result()
}

func (m *RedisMarker) Release(ctx context.Context, guestID int64) error {
	return m.Client.Del(ctx, m.DispatchKey(guestID)).Err()
}

var _ service.DispatchMarker = (*RedisMarker)(nil)
