package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrGetTaskQueryIsNotConstructed = errors.New(
	"GetTaskQuery must be created via NewGetTaskQuery constructor",
)

// GetTaskQuery reads one task on behalf of viewer. Admins see every task,
// couriers the tasks assigned to them, customers the tasks they created.
type GetTaskQuery struct {
	taskID kernel.UUID
	viewer ports.Principal

	guard guard.ConstructorGuard
}

func NewGetTaskQuery(taskID kernel.UUID, viewer ports.Principal) (GetTaskQuery, error) {
	if err := errors.Join(taskID.Validate(), viewer.Subject.Validate()); err != nil {
		return GetTaskQuery{}, err
	}
	return GetTaskQuery{taskID: taskID, viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTaskQuery) Validate() error {
	return q.guard.Validate(ErrGetTaskQueryIsNotConstructed)
}

func (q GetTaskQuery) TaskID() kernel.UUID {
	return q.taskID
}

func (q GetTaskQuery) Viewer() ports.Principal {
	return q.viewer
}

type PlaceView struct {
	Address string
	Lat     float64
	Lng     float64
}

// TaskView is the read model shared by GetTask and ListTasks.
type TaskView struct {
	ID            kernel.UUID
	Status        string
	Pickup        PlaceView
	Dropoff       PlaceView
	CreatedByType string
	CustomerID    *kernel.UUID
	CourierID     *kernel.UUID
	IsChargeable  bool
	Price         int64
	PaymentStatus string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
