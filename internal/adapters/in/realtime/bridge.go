package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

// BridgeTopic is the Redis pub/sub channel shared by every instance.
const BridgeTopic = "dispatch:realtime"

type bridgeMessage struct {
	Channel string          `json:"channel"`
	Message json.RawMessage `json:"message"`
}

var _ ports.Publisher = (*RedisBridge)(nil)

// RedisBridge publishes events through Redis so that every instance delivers
// them to its own local hub members. Run must be started for inbound delivery.
type RedisBridge struct {
	client goredis.UniversalClient
	hub    *Hub
	logger *slog.Logger
}

func NewRedisBridge(client goredis.UniversalClient, hub *Hub, logger *slog.Logger) *RedisBridge {
	return &RedisBridge{
		client: client,
		hub:    hub,
		logger: logger.With("component", "RealtimeBridge"),
	}
}

// Publish falls back to local delivery when Redis is unreachable.
func (b *RedisBridge) Publish(ctx context.Context, channel, event string, payload any) error {
	msg, err := Encode(event, payload)
	if err != nil {
		return err
	}

	body, err := json.Marshal(bridgeMessage{Channel: channel, Message: msg})
	if err != nil {
		return fmt.Errorf("encode bridge message: %w", err)
	}

	if err = b.client.Publish(ctx, BridgeTopic, body).Err(); err != nil {
		b.hub.Deliver(channel, msg)
		return errs.NewDependencyErrorWithCause("realtime bridge unavailable, delivered locally", err)
	}
	return nil
}

// Run subscribes to the bridge topic and delivers messages until ctx is cancelled.
func (b *RedisBridge) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, BridgeTopic)
	defer func() {
		_ = sub.Close()
	}()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", BridgeTopic, err)
	}
	b.logger.Info("subscribed", "topic", BridgeTopic)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-messages:
			if !ok {
				return nil
			}
			var bm bridgeMessage
			if err := json.Unmarshal([]byte(m.Payload), &bm); err != nil {
				b.logger.Warn("skipping malformed bridge message", "error", err)
				continue
			}
			b.hub.Deliver(bm.Channel, bm.Message)
		}
	}
}
