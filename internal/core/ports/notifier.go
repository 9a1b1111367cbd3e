package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// CodeSender delivers one-time codes (SMS provider).
type CodeSender interface {
	SendCode(ctx context.Context, phone kernel.Phone, code string) error
}

// PushNotification is a message for a courier's mobile devices.
type PushNotification struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushNotifier delivers notifications to the registered devices of a courier.
type PushNotifier interface {
	Notify(ctx context.Context, courierID kernel.UUID, tokens []string, n PushNotification) error
}
