package broadcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

// Channel carries board events between instances over a single redis
// pub/sub channel and hands received events to the local broker. With a
// nil redis client it degrades to local-only delivery, which is enough
// for a single instance and for tests.
type Channel struct {
	broker *Broker
	redis  *redis.Client
	name   string
	logger *log.Logger
}

// NewChannel wires a channel over the broker and optional redis client.
func NewChannel(broker *Broker, rc *redis.Client, name string, logger *log.Logger) *Channel {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Channel{broker: broker, redis: rc, name: name, logger: logger}
}

// Publish delivers the event to the board's subscriber group. Failures
// are logged and swallowed; the originating mutation already succeeded.
func (c *Channel) Publish(ctx context.Context, ev domain.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		c.logger.WithError(err).Error("marshal board event")
		return
	}
	if c.redis == nil {
		c.broker.publish(ev.BoardID, data)
		return
	}
	if err := c.redis.Publish(ctx, c.name, data).Err(); err != nil {
		c.logger.WithError(err).WithField("board", ev.BoardID).Warn("publish board event; delivering locally")
		c.broker.publish(ev.BoardID, data)
	}
}

// Listen consumes the redis channel and fans received events out to local
// subscribers. It reconnects on channel closure and returns when ctx is
// cancelled. No-op without a redis client.
func (c *Channel) Listen(ctx context.Context) {
	if c.redis == nil {
		return
	}
	for {
		sub := c.redis.Subscribe(ctx, c.name)
		ch := sub.Channel()
	recv:
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					break recv
				}
				var ev domain.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					c.logger.WithError(err).Error("unable to parse board event")
					continue
				}
				c.broker.publish(ev.BoardID, []byte(msg.Payload))
			}
		}
		_ = sub.Close()
		if ctx.Err() != nil {
			return
		}
		c.logger.Error("pubsub channel closed, reconnecting")
		time.Sleep(time.Second)
	}
}
