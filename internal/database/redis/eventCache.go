package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eventhub/eventhub-api/internal/entity"

	"github.com/go-redis/redis/v8"
)

// EventCache is a read-through cache in front of event-by-id lookups.
// Entries are invalidated on update and delete; a miss is not an error.
type EventCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventCache(client *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{
		client: client,
		ttl:    ttl,
	}
}

func eventKey(id int64) string {
	return fmt.Sprintf("event:%d", id)
}

func (c *EventCache) Get(ctx context.Context, id int64) (*entity.Event, error) {
	data, err := c.client.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var event entity.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *EventCache) Set(ctx context.Context, event *entity.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, eventKey(event.ID), data, c.ttl).Err()
}

func (c *EventCache) Delete(ctx context.Context, id int64) error {
	return c.client.Del(ctx, eventKey(id)).Err()
}
