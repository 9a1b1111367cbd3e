// Package position models courier location reports and the last-known-position projection.
package position

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Report is one append-only location sample sent by a courier app.
// RecordedAt is the device clock when supplied, otherwise the receive time;
// freshness is always decided by RecordedAt, never by arrival order.
type Report struct {
	ID         kernel.UUID
	CourierID  kernel.UUID
	Point      kernel.GeoPoint
	Accuracy   float64
	RecordedAt time.Time
	ReceivedAt time.Time
}

// NewReport validates a sample. A zero recordedAt defaults to receivedAt.
func NewReport(courierID kernel.UUID, point kernel.GeoPoint, accuracy float64, recordedAt, receivedAt time.Time) (Report, error) {
	var accuracyErr error
	if accuracy < 0 {
		accuracyErr = errs.NewValueIsOutOfRangeError("accuracy", accuracy, 0, "unbounded")
	}
	if err := errors.Join(courierID.Validate(), point.Validate(), accuracyErr); err != nil {
		return Report{}, err
	}

	if recordedAt.IsZero() {
		recordedAt = receivedAt
	}

	return Report{
		ID:         kernel.NewUUID(),
		CourierID:  courierID,
		Point:      point,
		Accuracy:   accuracy,
		RecordedAt: recordedAt.UTC(),
		ReceivedAt: receivedAt.UTC(),
	}, nil
}

// LastKnown is the cached projection of a courier's freshest report.
// It is non-authoritative and may be missing without error.
type LastKnown struct {
	CourierID  kernel.UUID
	Lat        float64
	Lng        float64
	Accuracy   float64
	RecordedAt time.Time
}

func (r Report) LastKnown() LastKnown {
	return LastKnown{
		CourierID:  r.CourierID,
		Lat:        r.Point.Lat(),
		Lng:        r.Point.Lng(),
		Accuracy:   r.Accuracy,
		RecordedAt: r.RecordedAt,
	}
}

// Candidate is a courier's freshest position as seen by the matcher.
type Candidate struct {
	CourierID kernel.UUID
	Point     kernel.GeoPoint
}
