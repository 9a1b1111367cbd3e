package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/position"
	"dispatch/internal/core/ports"
)

// LocationUpdate is the payload of the location:update event.
type LocationUpdate struct {
	RiderID    string    `json:"riderId"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   float64   `json:"accuracy"`
	RecordedAt time.Time `json:"recordedAt"`
}

// ReportLocationCommandHandler stores a location report and refreshes the live view.
//
// The report row is the source of truth and is committed first. Refreshing the
// position cache and notifying the dispatch console are best effort: their
// failures are logged and never fail the request.
type ReportLocationCommandHandler struct {
	uowFactory LocationUoWFactory
	cache      ports.PositionCache
	publisher  ports.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewReportLocationCommandHandler(
	uowFactory LocationUoWFactory,
	cache ports.PositionCache,
	publisher ports.Publisher,
	logger *slog.Logger,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		publisher:  publisher,
		logger:     logger.With("component", "report-location"),
		now:        time.Now,
	}
}

func (h ReportLocationCommandHandler) Handle(ctx context.Context, command ReportLocationCommand) (position.Report, error) {
	if err := command.Validate(); err != nil {
		return position.Report{}, err
	}

	report, err := position.NewReport(
		command.CourierID(),
		command.Point(),
		command.Accuracy(),
		command.RecordedAt(),
		h.now(),
	)
	if err != nil {
		return position.Report{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return position.Report{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return position.Report{}, err
	}
	if err = c.EnsureActive(); err != nil {
		return position.Report{}, err
	}

	if err = uow.LocationRepository().Append(ctx, report); err != nil {
		return position.Report{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return position.Report{}, err
	}

	last := report.LastKnown()
	if _, err = h.cache.Put(ctx, last); err != nil {
		h.logger.Warn("failed to refresh position cache", "courierId", last.CourierID.String(), "error", err)
	}

	update := LocationUpdate{
		RiderID:    last.CourierID.String(),
		Lat:        last.Lat,
		Lng:        last.Lng,
		Accuracy:   last.Accuracy,
		RecordedAt: last.RecordedAt,
	}
	if err = h.publisher.Publish(ctx, ports.AdminChannel, ports.EventLocationUpdate, update); err != nil {
		h.logger.Warn("failed to publish location update", "courierId", update.RiderID, "error", err)
	}

	return report, nil
}
