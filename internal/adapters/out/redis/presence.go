package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const (
	presenceKeyPrefix = "socket:rider:"
	PresenceTTL       = 24 * time.Hour
)

var compareAndDelete = goredis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`)

var _ ports.PresenceRegistry = (*PresenceRegistry)(nil)

type PresenceRegistry struct {
	client goredis.UniversalClient
}

func NewPresenceRegistry(client goredis.UniversalClient) *PresenceRegistry {
	return &PresenceRegistry{client: client}
}

func presenceKey(courierID kernel.UUID) string {
	return presenceKeyPrefix + courierID.String()
}

func (r *PresenceRegistry) Register(ctx context.Context, courierID kernel.UUID, connID string) error {
	if err := r.client.Set(ctx, presenceKey(courierID), connID, PresenceTTL).Err(); err != nil {
		return fmt.Errorf("register presence: %w", err)
	}
	return nil
}

func (r *PresenceRegistry) Remove(ctx context.Context, courierID kernel.UUID, connID string) (bool, error) {
	n, err := compareAndDelete.Run(ctx, r.client, []string{presenceKey(courierID)}, connID).Int()
	if err != nil {
		return false, fmt.Errorf("remove presence: %w", err)
	}
	return n == 1, nil
}

func (r *PresenceRegistry) Lookup(ctx context.Context, courierID kernel.UUID) (string, bool, error) {
	connID, err := r.client.Get(ctx, presenceKey(courierID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup presence: %w", err)
	}
	return connID, true, nil
}
