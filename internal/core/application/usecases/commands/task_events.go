package commands

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
)

// PlacePayload is the wire form of a pickup or drop-off.
type PlacePayload struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// TaskPayload is the task snapshot sent with real-time task events.
type TaskPayload struct {
	ID            string       `json:"id"`
	Status        string       `json:"status"`
	Pickup        PlacePayload `json:"pickup"`
	Dropoff       PlacePayload `json:"dropoff"`
	RiderID       *string      `json:"riderId,omitempty"`
	IsChargeable  bool         `json:"isChargeable"`
	Price         int64        `json:"price"`
	PaymentStatus string       `json:"paymentStatus"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// TaskEvent wraps a snapshot as {"task": {...}}.
type TaskEvent struct {
	Task TaskPayload `json:"task"`
}

func newTaskEvent(t *task.Task) TaskEvent {
	return TaskEvent{Task: TaskPayload{
		ID:            t.ID().String(),
		Status:        t.Status().String(),
		Pickup:        newPlacePayload(t.Pickup()),
		Dropoff:       newPlacePayload(t.Dropoff()),
		RiderID:       uuidString(t.CourierID()),
		IsChargeable:  t.IsChargeable(),
		Price:         t.Price(),
		PaymentStatus: string(t.PaymentStatus()),
		UpdatedAt:     t.UpdatedAt(),
	}}
}

func newPlacePayload(p kernel.Place) PlacePayload {
	return PlacePayload{Address: p.Address(), Lat: p.Point().Lat(), Lng: p.Point().Lng()}
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
