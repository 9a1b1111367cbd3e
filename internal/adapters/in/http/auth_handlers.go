package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// RequestCode godoc
//
//	@Summary	Send a one-time login code by SMS
//	@Tags		auth
//	@Accept		json
//	@Param		body	body	RequestCodeRequest	true	"phone"
//	@Success	204
//	@Failure	400	{object}	Error
//	@Failure	429	{object}	Error
//	@Failure	503	{object}	Error
//	@Router		/api/auth/otp [post]
func (s *Server) RequestCode(c echo.Context) error {
	var req RequestCodeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRequestCodeCommand(req.Phone)
	if err != nil {
		return err
	}

	if err = s.handlers.RequestCode.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// VerifyCode godoc
//
//	@Summary		Exchange a one-time code for a token
//	@Description	Creates the courier or customer on first login.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		VerifyCodeRequest	true	"phone, code and optional role"
//	@Success		200		{object}	Session
//	@Failure		401		{object}	Error
//	@Failure		403		{object}	Error
//	@Router			/api/auth/verify [post]
func (s *Server) VerifyCode(c echo.Context) error {
	var req VerifyCodeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewVerifyCodeCommand(req.Phone, req.Code, req.Role)
	if err != nil {
		return err
	}

	result, err := s.handlers.VerifyCode.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, Session{
		Token:    result.Token,
		Role:     result.Role.String(),
		Courier:  toCourier(result.Courier),
		Customer: toCustomer(result.Customer),
	})
}

// AdminLogin godoc
//
//	@Summary	Admin e-mail and password login
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body		AdminLoginRequest	true	"credentials"
//	@Success	200		{object}	TokenResponse
//	@Failure	401		{object}	Error
//	@Router		/api/admin/login [post]
func (s *Server) AdminLogin(c echo.Context) error {
	var req AdminLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAdminLoginCommand(req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := s.handlers.AdminLogin.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// RegisterCustomer godoc
//
//	@Summary	Register a customer ahead of the first login
//	@Tags		customers
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RegisterCustomerRequest	true	"name and phone"
//	@Success	201		{object}	Customer
//	@Failure	409		{object}	Error
//	@Router		/api/customers/register [post]
func (s *Server) RegisterCustomer(c echo.Context) error {
	var req RegisterCustomerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterCustomerCommand(req.Name, req.Phone)
	if err != nil {
		return err
	}

	created, err := s.handlers.RegisterCustomer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCustomer(created))
}
