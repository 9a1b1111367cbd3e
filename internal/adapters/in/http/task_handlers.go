package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateTask godoc
//
//	@Summary		Create a task and try to assign the nearest courier
//	@Description	Customers always create tasks for themselves. Admins create admin tasks,
//	@Description	or customer tasks on behalf of customer_id.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		CreateTaskRequest	true	"task"
//	@Success		201		{object}	CreateTaskResponse
//	@Failure		400		{object}	Error
//	@Failure		403		{object}	Error
//	@Router			/api/tasks [post]
func (s *Server) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	creator, err := creatorFor(principalFrom(c), req)
	if err != nil {
		return err
	}

	pickup, err := toKernelPlace(req.Pickup)
	if err != nil {
		return err
	}
	dropoff, err := toKernelPlace(req.Dropoff)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateTaskCommand(pickup, dropoff, creator)
	if err != nil {
		return err
	}

	result, err := s.handlers.CreateTask.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreateTaskResponse{Task: toTask(result.Task), Assigned: result.Assigned})
}

func creatorFor(p ports.Principal, req CreateTaskRequest) (task.Creator, error) {
	if p.Role == kernel.RoleCustomer {
		if req.CustomerId != nil {
			id, err := fromOpenAPIUUID("customer_id", *req.CustomerId)
			if err != nil {
				return task.Creator{}, err
			}
			if !id.IsEqual(p.Subject) {
				return task.Creator{}, errs.NewForbiddenError("customers create tasks only for themselves")
			}
		}
		return task.NewCustomerCreator(p.Subject)
	}

	kind := task.CreatedByAdmin
	if req.CreatedByType != "" {
		parsed, err := task.ParseCreatorKind(req.CreatedByType)
		if err != nil {
			return task.Creator{}, err
		}
		kind = parsed
	}
	if kind == task.CreatedByAdmin {
		return task.NewAdminCreator(), nil
	}

	if req.CustomerId == nil {
		return task.Creator{}, errs.NewValueIsRequiredError("customer_id")
	}
	id, err := fromOpenAPIUUID("customer_id", *req.CustomerId)
	if err != nil {
		return task.Creator{}, err
	}
	return task.NewCustomerCreator(id)
}

func toKernelPlace(p Place) (kernel.Place, error) {
	point, err := kernel.NewGeoPoint(p.Lat, p.Lng)
	if err != nil {
		return kernel.Place{}, err
	}
	return kernel.NewPlace(p.Address, point)
}

// GetTask godoc
//
//	@Summary	Task details
//	@Tags		tasks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"task id"	format(uuid)
//	@Success	200	{object}	Task
//	@Failure	403	{object}	Error
//	@Failure	404	{object}	Error
//	@Router		/api/tasks/{id} [get]
func (s *Server) GetTask(c echo.Context) error {
	taskID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetTaskQuery(taskID, principalFrom(c))
	if err != nil {
		return err
	}

	view, err := s.handlers.GetTask.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskFromView(view))
}

// AcceptTask godoc
//
//	@Summary		Accept a task assigned to the caller
//	@Description	Chargeable tasks are settled before the status changes.
//	@Tags			tasks
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"task id"	format(uuid)
//	@Success		200	{object}	Task
//	@Failure		402	{object}	Error	"customer cannot pay"
//	@Failure		403	{object}	Error	"assigned to another courier"
//	@Failure		409	{object}	Error	"already accepted or not assigned"
//	@Router			/api/tasks/{id}/accept [post]
func (s *Server) AcceptTask(c echo.Context) error {
	taskID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptTaskCommand(taskID, principalFrom(c).Subject)
	if err != nil {
		return err
	}

	accepted, err := s.handlers.AcceptTask.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTask(accepted))
}

// UpdateTaskStatus godoc
//
//	@Summary	Move a task along its lifecycle
//	@Tags		tasks
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"task id"	format(uuid)
//	@Param		body	body		UpdateTaskStatusRequest	true	"next status"
//	@Success	200		{object}	Task
//	@Failure	409		{object}	Error	"illegal transition"
//	@Router		/api/tasks/{id}/status [post]
func (s *Server) UpdateTaskStatus(c echo.Context) error {
	taskID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTaskStatusRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateTaskStatusCommand(taskID, req.Status, principalFrom(c))
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateTaskStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTask(updated))
}
