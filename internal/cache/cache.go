package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventpulse/eventpulse-api/internal/config"
	"github.com/eventpulse/eventpulse-api/internal/models"
)

const eventTTL = 60 * time.Second

// EventCache is a small read-through cache for anonymous event detail
// lookups. A nil *EventCache is valid and disables caching, so callers
// degrade gracefully when Redis is absent or unreachable.
type EventCache struct {
	rdb *redis.Client
}

// New connects to Redis using the application config. It returns nil when no
// address is configured or the server does not answer a ping.
func New(cfg *config.Config) *EventCache {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return &EventCache{rdb: client}
}

func eventKey(id uint64) string {
	return fmt.Sprintf("event:%d", id)
}

// GetEvent returns the cached event or (nil, false) on a miss.
func (c *EventCache) GetEvent(ctx context.Context, id uint64) (*models.Event, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		return nil, false
	}

	var event models.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, false
	}

	return &event, true
}

// SetEvent stores an event for the cache TTL. Failures are ignored; the
// cache is an optimization, never a source of truth.
func (c *EventCache) SetEvent(ctx context.Context, event *models.Event) {
	if c == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	_ = c.rdb.Set(ctx, eventKey(event.ID), data, eventTTL).Err()
}

// InvalidateEvent drops a cached event after a mutation.
func (c *EventCache) InvalidateEvent(ctx context.Context, id uint64) {
	if c == nil {
		return
	}

	_ = c.rdb.Del(ctx, eventKey(id)).Err()
}
