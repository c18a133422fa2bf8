package event

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hinderhq/hinder/pkg/logger"
	"github.com/hinderhq/hinder/pkg/progress"
)

const progressChannel = "profile.progress"

type progressMessage struct {
	Key    string `json:"key"`
	Status string `json:"status"`
}

// RedisProgressPublisher mirrors every progress event onto a Redis channel so
// stream subscribers in other processes see transitions published by the
// worker. Local delivery happens first and is never blocked by Redis.
type RedisProgressPublisher struct {
	rdb   *redis.Client
	local progress.Publisher
	log   logger.Logger
}

func NewRedisProgressPublisher(rdb *redis.Client, local progress.Publisher, log logger.Logger) *RedisProgressPublisher {
	return &RedisProgressPublisher{rdb: rdb, local: local, log: log}
}

func (p *RedisProgressPublisher) Publish(key string, ev progress.Event) {
	p.local.Publish(key, ev)

	payload, err := json.Marshal(progressMessage{Key: key, Status: ev.Status})
	if err != nil {
		return
	}
	if err := p.rdb.Publish(context.Background(), progressChannel, payload).Err(); err != nil {
		p.log.Warn("failed to relay progress event", zap.String("key", key), zap.Error(err))
	}
}

// StartProgressForwarder pumps relayed progress events from Redis into the
// local bus until ctx is cancelled. Malformed messages are skipped.
func StartProgressForwarder(ctx context.Context, rdb *redis.Client, bus *progress.Bus, log logger.Logger) {
	pubsub := rdb.Subscribe(ctx, progressChannel)

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var m progressMessage
				if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
					log.Warn("skipping malformed progress message", zap.Error(err))
					continue
				}
				bus.Publish(m.Key, progress.Event{Status: m.Status})
			}
		}
	}()
}
