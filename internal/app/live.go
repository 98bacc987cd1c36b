// internal/app/live.go
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shrimpsizemoose/nuitfeedback/internal/models"
)

var ErrLiveDisabled = errors.New("live feed is disabled")

// LivePublisher relays newly stored feedback over a Redis channel so the
// display screens can update without polling.
type LivePublisher struct {
	enabled bool
	redis   *redis.Client
	channel string
}

func NewLivePublisher(config *Config) (*LivePublisher, error) {
	if config.Live.RedisURL == "" {
		return &LivePublisher{enabled: false}, nil
	}

	opt, err := redis.ParseURL(config.Live.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &LivePublisher{
		enabled: true,
		redis:   client,
		channel: config.Live.Channel,
	}, nil
}

func (p *LivePublisher) Enabled() bool {
	return p != nil && p.enabled
}

func (p *LivePublisher) Close() error {
	if p != nil && p.redis != nil {
		return p.redis.Close()
	}
	return nil
}

func (p *LivePublisher) Publish(ctx context.Context, feedback *models.Feedback) error {
	if !p.Enabled() {
		return nil
	}

	payload, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	if err := p.redis.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish feedback: %w", err)
	}
	return nil
}

// Subscribe returns a subscription to the feedback channel that is ready to
// receive. The caller closes it.
func (p *LivePublisher) Subscribe(ctx context.Context) (*redis.PubSub, error) {
	if !p.Enabled() {
		return nil, ErrLiveDisabled
	}

	sub := p.redis.Subscribe(ctx, p.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", p.channel, err)
	}
	return sub, nil
}
