package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand is one location sample from a courier app.
// A zero recordedAt means the device did not send its clock.
type ReportLocationCommand struct {
	courierID  kernel.UUID
	point      kernel.GeoPoint
	accuracy   float64
	recordedAt time.Time

	guard guard.ConstructorGuard
}

func NewReportLocationCommand(
	courierID kernel.UUID,
	lat, lng, accuracy float64,
	recordedAt time.Time,
) (ReportLocationCommand, error) {
	point, pointErr := kernel.NewGeoPoint(lat, lng)

	var accuracyErr error
	if accuracy < 0 {
		accuracyErr = errs.NewValueIsOutOfRangeError("accuracy", accuracy, 0, "unbounded")
	}

	if err := errors.Join(courierID.Validate(), pointErr, accuracyErr); err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		courierID:  courierID,
		point:      point,
		accuracy:   accuracy,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

func (c ReportLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c ReportLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c ReportLocationCommand) Accuracy() float64 {
	return c.accuracy
}

func (c ReportLocationCommand) RecordedAt() time.Time {
	return c.recordedAt
}
