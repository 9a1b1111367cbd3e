package http

import (
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// GetMyWallet godoc
//
//	@Summary	The caller's wallet with recent transactions
//	@Tags		wallets
//	@Produce	json
//	@Security	BearerAuth
//	@Param		history	query		int	false	"transactions to include"
//	@Success	200		{object}	Wallet
//	@Failure	404		{object}	Error
//	@Router		/api/wallets/me [get]
func (s *Server) GetMyWallet(c echo.Context) error {
	history, err := queryInt(c, "history")
	if err != nil {
		return err
	}

	p := principalFrom(c)
	query, err := queries.NewGetWalletQuery(p.Subject, string(p.Role), history)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetWallet.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWalletFromView(view))
}

// CreditWallet godoc
//
//	@Summary	Credit a wallet
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		WalletMovementRequest	true	"credit"
//	@Success	200		{object}	WalletMovement
//	@Router		/api/admin/wallets/credit [post]
func (s *Server) CreditWallet(c echo.Context) error {
	var req WalletMovementRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ownerID, err := fromOpenAPIUUID("ownerId", req.OwnerId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreditWalletCommand(ownerID, req.OwnerKind, req.Amount, req.Type, req.Note)
	if err != nil {
		return err
	}

	movement, err := s.handlers.CreditWallet.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWalletMovement(movement))
}

// CaptureWallet godoc
//
//	@Summary	Debit a wallet
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		WalletMovementRequest	true	"capture"
//	@Success	200		{object}	WalletMovement
//	@Failure	402		{object}	Error	"insufficient balance"
//	@Router		/api/admin/wallets/capture [post]
func (s *Server) CaptureWallet(c echo.Context) error {
	var req WalletMovementRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ownerID, err := fromOpenAPIUUID("ownerId", req.OwnerId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCaptureWalletCommand(ownerID, req.OwnerKind, req.Amount, req.Note)
	if err != nil {
		return err
	}

	movement, err := s.handlers.CaptureWallet.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWalletMovement(movement))
}

// ReconcileWallets godoc
//
//	@Summary	Compare cached balances with the ledger
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	ReconcileReport
//	@Router		/api/admin/wallets/reconcile [get]
func (s *Server) ReconcileWallets(c echo.Context) error {
	report, err := s.handlers.ReconcileWallets.Handle(c.Request().Context(), queries.NewReconcileWalletsQuery())
	if err != nil {
		return err
	}

	out := ReconcileReport{Checked: report.Checked, Mismatches: make([]WalletMismatch, 0, len(report.Mismatches))}
	for _, m := range report.Mismatches {
		out.Mismatches = append(out.Mismatches, WalletMismatch{
			WalletId:  toOpenAPIUUID(m.WalletID),
			OwnerId:   toOpenAPIUUID(m.OwnerID),
			OwnerKind: m.OwnerKind,
			Balance:   m.Balance,
			Ledger:    m.Ledger,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func toWalletMovement(m commands.WalletMovement) WalletMovement {
	return WalletMovement{
		Wallet:      toWallet(m.Wallet),
		Transaction: toTransaction(m.Transaction),
	}
}

// queryInt returns zero when the parameter is absent.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return n, nil
}
