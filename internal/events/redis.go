package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisChannel is the channel prefix used when none is configured.
const DefaultRedisChannel = "cf.events"

// RedisConfig configures RedisSink.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
	Channel string `yaml:"channel"`
	// PerEvent publishes each event on "<channel>:<event name>" so
	// subscribers can PSUBSCRIBE to the events they care about.
	PerEvent bool `yaml:"per_event"`
}

// RedisSink publishes custom field events via Redis Pub/Sub.
type RedisSink struct {
	Client   *redis.Client
	Channel  string
	PerEvent bool
}

// NewRedisSink returns a RedisSink based on config, or nil when disabled.
func NewRedisSink(c RedisConfig) (*RedisSink, error) {
	if !c.Enabled || c.DSN == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(c.DSN)
	if err != nil {
		return nil, err
	}
	ch := c.Channel
	if ch == "" {
		ch = DefaultRedisChannel
	}
	return &RedisSink{Client: redis.NewClient(opt), Channel: ch, PerEvent: c.PerEvent}, nil
}

// ChannelFor returns the channel an event with the given name is published on.
func (s *RedisSink) ChannelFor(name string) string {
	if s.PerEvent && name != "" {
		return s.Channel + ":" + name
	}
	return s.Channel
}

func (s *RedisSink) Emit(ctx context.Context, e Event) error {
	if s == nil || s.Client == nil {
		return nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.Client.Publish(ctx, s.ChannelFor(e.Name), data).Err()
}
