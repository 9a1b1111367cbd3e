package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
)

// PositionCache holds the last known position per courier. It is a projection of
// the location reports and may be stale or empty at any time.
type PositionCache interface {
	// Get returns nil without error on a miss.
	Get(ctx context.Context, courierID kernel.UUID) (*position.LastKnown, error)

	// GetMany returns the cached entries of ids; misses are simply absent from the map.
	GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]position.LastKnown, error)

	// Put stores p unless the cached entry has a strictly newer RecordedAt.
	// A report with the same RecordedAt replaces the cached one.
	// Returns true when p was written.
	Put(ctx context.Context, p position.LastKnown) (bool, error)
}

// PresenceRegistry maps couriers to their live real-time connection.
type PresenceRegistry interface {
	Register(ctx context.Context, courierID kernel.UUID, connID string) error

	// Remove deletes the mapping only if it still names connID.
	// Removing twice, or after a newer connection took over, is a no-op.
	Remove(ctx context.Context, courierID kernel.UUID, connID string) (bool, error)

	// Lookup returns the connection id and whether one is registered.
	Lookup(ctx context.Context, courierID kernel.UUID) (string, bool, error)
}

// CodeStore keeps one-time login codes.
type CodeStore interface {
	// Save replaces any code previously stored for phone.
	Save(ctx context.Context, phone kernel.Phone, code string, ttl time.Duration) error

	// Consume atomically deletes the stored code if it equals code.
	// A code can therefore verify at most once.
	Consume(ctx context.Context, phone kernel.Phone, code string) (bool, error)
}

// RateLimiter counts events per key in fixed windows.
type RateLimiter interface {
	// Allow records one event for key and reports whether it is within limit for the current window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
