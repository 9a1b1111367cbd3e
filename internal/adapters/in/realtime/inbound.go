package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// EventError is sent back to a connection whose inbound message failed.
const EventError = "error"

type LocationReporter interface {
	Handle(ctx context.Context, command commands.ReportLocationCommand) (position.Report, error)
}

type TaskAccepter interface {
	Handle(ctx context.Context, command commands.AcceptTaskCommand) (*task.Task, error)
}

type CourierPinger interface {
	Handle(ctx context.Context, command commands.PingCourierCommand) error
}

type locationMessage struct {
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	Accuracy   float64    `json:"accuracy"`
	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}

type acceptMessage struct {
	TaskID string `json:"taskId"`
}

type pingMessage struct {
	RiderID string `json:"riderId"`
	Message string `json:"message"`
}

// ErrorPayload mirrors the HTTP error body.
type ErrorPayload struct {
	Event   string `json:"event,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Inbound routes client messages to the command handlers allowed for the sender's role.
// Results reach subscribers through the handlers' own publishing; only failures
// are answered on the sender's connection.
type Inbound struct {
	locations LocationReporter
	accepter  TaskAccepter
	pinger    CourierPinger
	logger    *slog.Logger
}

func NewInbound(locations LocationReporter, accepter TaskAccepter, pinger CourierPinger, logger *slog.Logger) Inbound {
	return Inbound{
		locations: locations,
		accepter:  accepter,
		pinger:    pinger,
		logger:    logger.With("component", "RealtimeInbound"),
	}
}

// Handle processes one raw frame from c.
func (in Inbound) Handle(ctx context.Context, c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
		in.replyError(c, "", errs.NewValueIsInvalidError("message"))
		return
	}

	if c.ListenOnly() {
		in.replyError(c, env.Event, errs.NewUnauthorizedError("listen-only connection cannot send events"))
		return
	}

	if err := in.dispatch(ctx, c.Principal(), env); err != nil {
		kind := errs.KindOf(err)
		if kind == errs.KindInternal {
			in.logger.Error("inbound event failed", "event", env.Event, "connId", c.ID(), "error", err)
		}
		in.replyError(c, env.Event, err)
	}
}

func (in Inbound) dispatch(ctx context.Context, p ports.Principal, env Envelope) error {
	switch env.Event {
	case ports.EventLocationUpdate:
		if p.Role != kernel.RoleCourier {
			return errs.NewForbiddenError("only couriers report locations")
		}
		var m locationMessage
		if err := decode(env.Data, &m); err != nil {
			return err
		}
		var recordedAt time.Time
		if m.RecordedAt != nil {
			recordedAt = *m.RecordedAt
		}
		cmd, err := commands.NewReportLocationCommand(p.Subject, m.Lat, m.Lng, m.Accuracy, recordedAt)
		if err != nil {
			return err
		}
		_, err = in.locations.Handle(ctx, cmd)
		return err

	case ports.EventTaskAccept:
		if p.Role != kernel.RoleCourier {
			return errs.NewForbiddenError("only couriers accept tasks")
		}
		var m acceptMessage
		if err := decode(env.Data, &m); err != nil {
			return err
		}
		taskID, err := kernel.UUIDFromString(m.TaskID)
		if err != nil {
			return err
		}
		cmd, err := commands.NewAcceptTaskCommand(taskID, p.Subject)
		if err != nil {
			return err
		}
		_, err = in.accepter.Handle(ctx, cmd)
		return err

	case ports.EventPing:
		if p.Role != kernel.RoleAdmin {
			return errs.NewForbiddenError("only admins ping couriers")
		}
		var m pingMessage
		if err := decode(env.Data, &m); err != nil {
			return err
		}
		courierID, err := kernel.UUIDFromString(m.RiderID)
		if err != nil {
			return err
		}
		cmd, err := commands.NewPingCourierCommand(courierID, m.Message)
		if err != nil {
			return err
		}
		return in.pinger.Handle(ctx, cmd)

	default:
		return errs.NewValueIsInvalidErrorWithCause("event", errors.New("unsupported event "+env.Event))
	}
}

func (in Inbound) replyError(c *Client, event string, err error) {
	msg, encErr := Encode(EventError, ErrorPayload{Event: event, Kind: errs.KindOf(err), Message: err.Error()})
	if encErr != nil {
		return
	}
	if !c.Reply(msg) {
		in.logger.Debug("dropped error reply", "connId", c.ID())
	}
}

func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return errs.NewValueIsRequiredError("data")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("data", err)
	}
	return nil
}
