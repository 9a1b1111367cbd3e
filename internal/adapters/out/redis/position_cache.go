package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const (
	positionKeyPrefix = "rider:last:"
	PositionTTL       = 24 * time.Hour
)

// putIfNewer writes the hash unless the stored recorded_at (unix µs) is
// strictly newer than the incoming one. Equal timestamps go to the later write.
var putIfNewer = goredis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'recorded_at')
if cur and tonumber(cur) > tonumber(ARGV[4]) then
  return 0
end
redis.call('HSET', KEYS[1], 'lat', ARGV[1], 'lng', ARGV[2], 'accuracy', ARGV[3], 'recorded_at', ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
return 1
`)

var _ ports.PositionCache = (*PositionCache)(nil)

type PositionCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewPositionCache(client goredis.UniversalClient) *PositionCache {
	return &PositionCache{client: client, ttl: PositionTTL}
}

func positionKey(courierID kernel.UUID) string {
	return positionKeyPrefix + courierID.String()
}

func (c *PositionCache) Get(ctx context.Context, courierID kernel.UUID) (*position.LastKnown, error) {
	fields, err := c.client.HGetAll(ctx, positionKey(courierID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read cached position: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	p, err := decodePosition(courierID, fields)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *PositionCache) GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]position.LastKnown, error) {
	out := make(map[kernel.UUID]position.LastKnown, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cmds := make([]*goredis.MapStringStringCmd, len(ids))
	_, err := c.client.Pipelined(ctx, func(pipe goredis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, positionKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read cached positions: %w", err)
	}

	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		p, err := decodePosition(ids[i], fields)
		if err != nil {
			return nil, err
		}
		out[ids[i]] = p
	}
	return out, nil
}

func (c *PositionCache) Put(ctx context.Context, p position.LastKnown) (bool, error) {
	written, err := putIfNewer.Run(ctx, c.client,
		[]string{positionKey(p.CourierID)},
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
		strconv.FormatFloat(p.Lng, 'f', -1, 64),
		strconv.FormatFloat(p.Accuracy, 'f', -1, 64),
		p.RecordedAt.UnixMicro(),
		c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("write cached position: %w", err)
	}
	return written == 1, nil
}

func decodePosition(courierID kernel.UUID, fields map[string]string) (position.LastKnown, error) {
	lat, latErr := strconv.ParseFloat(fields["lat"], 64)
	lng, lngErr := strconv.ParseFloat(fields["lng"], 64)
	recordedAt, tsErr := strconv.ParseInt(fields["recorded_at"], 10, 64)
	if latErr != nil || lngErr != nil || tsErr != nil {
		return position.LastKnown{}, fmt.Errorf("malformed cached position for %s", courierID)
	}
	// accuracy is optional in entries written by older clients
	accuracy, _ := strconv.ParseFloat(fields["accuracy"], 64)

	return position.LastKnown{
		CourierID:  courierID,
		Lat:        lat,
		Lng:        lng,
		Accuracy:   accuracy,
		RecordedAt: time.UnixMicro(recordedAt).UTC(),
	}, nil
}
