package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ReportLocation godoc
//
//	@Summary	Report the caller's current position
//	@Tags		riders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		ReportLocationRequest	true	"position"
//	@Success	200		{object}	Location
//	@Failure	400		{object}	Error
//	@Router		/api/riders/location [post]
func (s *Server) ReportLocation(c echo.Context) error {
	var req ReportLocationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Lat == nil || req.Lng == nil {
		return errors.Join(
			requiredIfNil("lat", req.Lat),
			requiredIfNil("lng", req.Lng),
		)
	}

	var recordedAt time.Time
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	cmd, err := commands.NewReportLocationCommand(principalFrom(c).Subject, *req.Lat, *req.Lng, req.Accuracy, recordedAt)
	if err != nil {
		return err
	}

	report, err := s.handlers.ReportLocation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	last := report.LastKnown()
	return c.JSON(http.StatusOK, toLocation(&last))
}

func requiredIfNil(name string, v *float64) error {
	if v == nil {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

// RegisterDevice godoc
//
//	@Summary	Register a push token for the caller
//	@Tags		riders
//	@Accept		json
//	@Security	BearerAuth
//	@Param		body	body	RegisterDeviceRequest	true	"device"
//	@Success	204
//	@Router		/api/riders/register-device [post]
func (s *Server) RegisterDevice(c echo.Context) error {
	var req RegisterDeviceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterDeviceCommand(principalFrom(c).Subject, req.PushToken, req.Platform)
	if err != nil {
		return err
	}

	if err = s.handlers.RegisterDevice.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAvailableCouriers godoc
//
//	@Summary	Active couriers with their cached positions
//	@Tags		riders
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	Courier
//	@Router		/api/riders/available [get]
func (s *Server) GetAvailableCouriers(c echo.Context) error {
	views, err := s.handlers.GetAvailableCouriers.Handle(c.Request().Context(), queries.NewGetAvailableCouriersQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCouriers(views))
}

// GetCourierLocation godoc
//
//	@Summary	Last known position of a courier
//	@Tags		riders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"courier id"	format(uuid)
//	@Success	200	{object}	Location
//	@Failure	404	{object}	Error	"never reported"
//	@Router		/api/riders/{id}/location [get]
func (s *Server) GetCourierLocation(c echo.Context) error {
	courierID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetLastKnownPositionQuery(courierID)
	if err != nil {
		return err
	}

	last, err := s.handlers.GetLastKnownPosition.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if last == nil {
		return errs.NewObjectNotFoundError("location", courierID)
	}
	return c.JSON(http.StatusOK, toLocation(last))
}

func toCouriers(views []queries.CourierView) []Courier {
	out := make([]Courier, 0, len(views))
	for _, v := range views {
		out = append(out, toCourierFromView(v))
	}
	return out
}
