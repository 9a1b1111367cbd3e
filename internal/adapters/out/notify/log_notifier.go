package notify

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

var (
	_ ports.PushNotifier = LogNotifier{}
	_ ports.CodeSender   = LogNotifier{}
)

// LogNotifier writes notifications to the log instead of delivering them.
// It is used when no queues are configured, e.g. in local development.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) LogNotifier {
	return LogNotifier{logger: logger.With("component", "LogNotifier")}
}

func (n LogNotifier) Notify(ctx context.Context, courierID kernel.UUID, tokens []string, msg ports.PushNotification) error {
	n.logger.InfoContext(ctx, "push notification",
		"courier_id", courierID.String(),
		"devices", len(tokens),
		"title", msg.Title,
		"body", msg.Body,
	)
	return nil
}

func (n LogNotifier) SendCode(ctx context.Context, phone kernel.Phone, code string) error {
	n.logger.InfoContext(ctx, "one-time code", "phone", phone.String(), "code", code)
	return nil
}
