package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"ceremo/models"
	"ceremo/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// channelPrefix namespaces change-feed channels per entity kind, so clients
// subscribe to e.g. "changes:booking".
const channelPrefix = "changes:"

// Publisher pushes "data changed, re-fetch" events to interested clients.
// The payload carries identifiers only; the authoritative state must always
// be re-read from the store, never trusted from the push.
type Publisher interface {
	Publish(ctx context.Context, event models.ChangeEvent)
}

// RedisPublisher implements Publisher over Redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish fans the event out on the entity's channel. Failures are logged
// and swallowed; the feed is best-effort by contract.
func (p *RedisPublisher) Publish(ctx context.Context, event models.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		utils.GetLogger().Warn("change feed: failed to marshal event", zap.Error(err))
		return
	}

	channel := fmt.Sprintf("%s%s", channelPrefix, event.Entity)
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		utils.GetLogger().Warn("change feed: publish failed",
			zap.String("channel", channel), zap.String("id", event.ID), zap.Error(err))
	}
}
