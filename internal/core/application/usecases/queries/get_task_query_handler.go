package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const taskColumns = `
	id,
	status,
	pickup_address, pickup_lat, pickup_lng,
	dropoff_address, dropoff_lat, dropoff_lng,
	created_by_type,
	customer_id,
	courier_id,
	is_chargeable,
	price,
	payment_status,
	created_at,
	updated_at`

type GetTaskQueryHandler struct {
	db *gorm.DB
}

func NewGetTaskQueryHandler(db *gorm.DB) GetTaskQueryHandler {
	return GetTaskQueryHandler{db: db}
}

func (h GetTaskQueryHandler) Handle(ctx context.Context, query GetTaskQuery) (TaskView, error) {
	if err := query.Validate(); err != nil {
		return TaskView{}, err
	}

	row := h.db.WithContext(ctx).
		Raw("SELECT "+taskColumns+" FROM tasks WHERE id = ?", query.TaskID().Bytes()).
		Row()

	view, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TaskView{}, errs.NewObjectNotFoundError("task", query.TaskID().String())
	}
	if err != nil {
		return TaskView{}, err
	}

	if !canView(view, query.Viewer().Subject, query.Viewer().Role) {
		return TaskView{}, errs.NewForbiddenError(fmt.Sprintf("task %s is not visible to %s", view.ID, query.Viewer().Role))
	}
	return view, nil
}

func canView(view TaskView, subject kernel.UUID, role kernel.Role) bool {
	switch role {
	case kernel.RoleAdmin:
		return true
	case kernel.RoleCourier:
		return view.CourierID != nil && view.CourierID.IsEqual(subject)
	case kernel.RoleCustomer:
		return view.CustomerID != nil && view.CustomerID.IsEqual(subject)
	default:
		return false
	}
}

func scanTask(row scanner) (TaskView, error) {
	var (
		view                  TaskView
		id                    uuid.UUID
		customerID, courierID *uuid.UUID
	)

	err := row.Scan(
		&id,
		&view.Status,
		&view.Pickup.Address, &view.Pickup.Lat, &view.Pickup.Lng,
		&view.Dropoff.Address, &view.Dropoff.Lat, &view.Dropoff.Lng,
		&view.CreatedByType,
		&customerID,
		&courierID,
		&view.IsChargeable,
		&view.Price,
		&view.PaymentStatus,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return TaskView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return TaskView{}, err
	}
	if view.CustomerID, err = optionalUUID(customerID); err != nil {
		return TaskView{}, err
	}
	if view.CourierID, err = optionalUUID(courierID); err != nil {
		return TaskView{}, err
	}
	return view, nil
}
