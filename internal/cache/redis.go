package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/hoteldesk/config"
	"github.com/Domenick1991/hoteldesk/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisCache struct {
	client       *redis.Client
	dashboardTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, dashboardTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		dashboardTTL: dashboardTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// AcquireRoomLock takes the short-lived booking lock of a room. The returned
// token must be passed to ReleaseRoomLock.
func (c *RedisCache) AcquireRoomLock(ctx context.Context, roomID int64, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := c.client.SetNX(ctx, roomLockKey(roomID), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (c *RedisCache) ReleaseRoomLock(ctx context.Context, roomID int64, token string) error {
	return releaseScript.Run(ctx, c.client, []string{roomLockKey(roomID)}, token).Err()
}

func (c *RedisCache) GetDashboard(ctx context.Context, role domain.StaffRole) (*domain.Dashboard, error) {
	data, err := c.client.Get(ctx, dashboardKey(role)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var d domain.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *RedisCache) SetDashboard(ctx context.Context, role domain.StaffRole, d *domain.Dashboard) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dashboardKey(role), payload, c.dashboardTTL).Err()
}

func dashboardKey(role domain.StaffRole) string {
	return "cache:dashboard:" + string(role)
}

func roomLockKey(roomID int64) string {
	return fmt.Sprintf("lock:room:%d", roomID)
}
