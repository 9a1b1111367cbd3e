package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Real-time event names.
const (
	EventLocationUpdate = "location:update"
	EventTaskAssign     = "task:assign"
	EventTaskAccept     = "task:accept"
	EventTaskAccepted   = "task:accepted"
	EventTaskStatus     = "task:status"
	EventPing           = "ping"
)

// AdminChannel is the dispatch-console channel every admin connection joins.
const AdminChannel = "admin"

// CourierChannel returns the private channel of one courier.
func CourierChannel(courierID kernel.UUID) string {
	return "rider:" + courierID.String()
}

// Publisher delivers events to channel members at most once.
// Publish never blocks on slow receivers; an event with no live receiver is dropped.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}
