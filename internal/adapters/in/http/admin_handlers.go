package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListCouriers godoc
//
//	@Summary	All couriers, newest first
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query	int	false	"page size"
//	@Success	200		{array}	Courier
//	@Router		/api/admin/riders [get]
func (s *Server) ListCouriers(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	query, err := queries.NewGetAllCouriersQuery(limit)
	if err != nil {
		return err
	}

	views, err := s.handlers.GetAllCouriers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCouriers(views))
}

// DeactivateCourier godoc
//
//	@Summary	Take a courier out of dispatch
//	@Tags		admin
//	@Security	BearerAuth
//	@Param		id	path	string	true	"courier id"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	Error
//	@Router		/api/admin/riders/{id}/deactivate [post]
func (s *Server) DeactivateCourier(c echo.Context) error {
	return s.setCourierActive(c, false)
}

// ActivateCourier godoc
//
//	@Summary	Return a courier to dispatch
//	@Tags		admin
//	@Security	BearerAuth
//	@Param		id	path	string	true	"courier id"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	Error
//	@Router		/api/admin/riders/{id}/activate [post]
func (s *Server) ActivateCourier(c echo.Context) error {
	return s.setCourierActive(c, true)
}

func (s *Server) setCourierActive(c echo.Context, active bool) error {
	courierID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewSetCourierActiveCommand(courierID, active)
	if err != nil {
		return err
	}

	if err = s.handlers.SetCourierActive.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PingCourier godoc
//
//	@Summary		Send a message to a courier
//	@Description	Delivered over the socket and as a push notification.
//	@Tags			admin
//	@Accept			json
//	@Security		BearerAuth
//	@Param			body	body	PingRequest	true	"ping"
//	@Success		204
//	@Router			/api/admin/ping [post]
func (s *Server) PingCourier(c echo.Context) error {
	var req PingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	courierID, err := fromOpenAPIUUID("riderId", req.RiderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewPingCourierCommand(courierID, req.Message)
	if err != nil {
		return err
	}

	if err = s.handlers.PingCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignTask godoc
//
//	@Summary	Assign a task to a specific courier
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		AssignTaskRequest	true	"assignment"
//	@Success	200		{object}	AssignTaskResponse
//	@Failure	409		{object}	Error	"task already accepted"
//	@Router		/api/admin/assign-task [post]
func (s *Server) AssignTask(c echo.Context) error {
	var req AssignTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	taskID, err := fromOpenAPIUUID("taskId", req.TaskId)
	if err != nil {
		return err
	}
	courierID, err := fromOpenAPIUUID("riderId", req.RiderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignTaskCommand(taskID, courierID)
	if err != nil {
		return err
	}

	result, err := s.handlers.AssignTask.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AssignTaskResponse{Task: toTask(result.Task), Changed: result.Changed})
}

// ListTasks godoc
//
//	@Summary	Tasks, newest first
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		status	query	string	false	"filter by status"
//	@Param		limit	query	int		false	"page size"
//	@Success	200		{array}	Task
//	@Router		/api/admin/tasks [get]
func (s *Server) ListTasks(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	query, err := queries.NewListTasksQuery(c.QueryParam("status"), limit)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListTasks.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	out := make([]Task, 0, len(views))
	for _, v := range views {
		out = append(out, toTaskFromView(v))
	}
	return c.JSON(http.StatusOK, out)
}
