package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/ports"
)

// Ping is the payload of the ping event.
type Ping struct {
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt"`
}

// PingCourierCommandHandler delivers a console message over the courier's
// real-time channel and as a push notification. Both deliveries are best effort.
// The real-time event is skipped when presence shows no live connection.
type PingCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	presence   ports.PresenceRegistry
	publisher  ports.Publisher
	notifier   ports.PushNotifier
	logger     *slog.Logger
	now        func() time.Time
}

func NewPingCourierCommandHandler(
	uowFactory CourierUoWFactory,
	presence ports.PresenceRegistry,
	publisher ports.Publisher,
	notifier ports.PushNotifier,
	logger *slog.Logger,
) PingCourierCommandHandler {
	return PingCourierCommandHandler{
		uowFactory: uowFactory,
		presence:   presence,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger.With("component", "ping-courier"),
		now:        time.Now,
	}
}

func (h PingCourierCommandHandler) Handle(ctx context.Context, command PingCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	devices, err := h.loadDevices(ctx, command)
	if err != nil {
		return err
	}

	if h.connected(ctx, command) {
		ping := Ping{Message: command.Message(), SentAt: h.now().UTC()}
		if err = h.publisher.Publish(ctx, ports.CourierChannel(command.CourierID()), ports.EventPing, ping); err != nil {
			h.logger.Warn("failed to publish ping", "courierId", command.CourierID().String(), "error", err)
		}
	} else {
		h.logger.Info("courier is offline, ping sent as push only", "courierId", command.CourierID().String())
	}

	if len(devices) == 0 {
		return nil
	}

	n := ports.PushNotification{Title: "Dispatch", Body: command.Message(), Data: map[string]string{"type": "ping"}}
	if err = h.notifier.Notify(ctx, command.CourierID(), pushTokens(devices), n); err != nil {
		h.logger.Warn("failed to push ping", "courierId", command.CourierID().String(), "error", err)
	}
	return nil
}

// connected treats a presence lookup failure as online so the event is still attempted.
func (h PingCourierCommandHandler) connected(ctx context.Context, command PingCourierCommand) bool {
	_, ok, err := h.presence.Lookup(ctx, command.CourierID())
	if err != nil {
		h.logger.Warn("presence lookup failed", "courierId", command.CourierID().String(), "error", err)
		return true
	}
	return ok
}

func (h PingCourierCommandHandler) loadDevices(ctx context.Context, command PingCourierCommand) ([]courier.Device, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()
	if _, err := repo.Get(ctx, command.CourierID()); err != nil {
		return nil, err
	}
	return repo.ListDevices(ctx, command.CourierID())
}

func pushTokens(devices []courier.Device) []string {
	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.PushToken)
	}
	return tokens
}
