package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-portal/internal/domain/apperr"
	"loan-portal/internal/domain/transaction"
	"loan-portal/internal/usecase/payment"
)

type PaymentHandler struct {
	uc  *payment.Usecase
	log *zap.Logger
}

func NewPaymentHandler(uc *payment.Usecase, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, log: log}
}

// Amount is ignored for full payments.
type payReq struct {
	Amount      decimal.Decimal `json:"amount"       validate:"omitempty,gt=0,dec2"`
	PaymentType string          `json:"payment_type" validate:"required,oneof=partial full"`
}

func (h *PaymentHandler) Pay(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	loanID, ok, err := pathID(c, "loan_id")
	if !ok {
		return err
	}
	var req payReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	rc, err := h.uc.Pay(c.Request().Context(), payment.PayInput{
		UserID:      s.UserID,
		LoanID:      loanID,
		Amount:      req.Amount,
		PaymentType: transaction.PaymentType(req.PaymentType),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, rc)
}

func (h *PaymentHandler) LoanTransactions(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	loanID, ok, err := pathID(c, "loan_id")
	if !ok {
		return err
	}
	out, err := h.uc.ListTransactions(c.Request().Context(), s, loanID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) ListMine(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	out, err := h.uc.ListMine(c.Request().Context(), s.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Reconcile reports a mismatch with the figures and a 500 status.
func (h *PaymentHandler) Reconcile(c echo.Context) error {
	loanID, ok, err := pathID(c, "loan_id")
	if !ok {
		return err
	}
	rec, err := h.uc.Reconcile(c.Request().Context(), loanID)
	if errors.Is(err, apperr.ErrReconciliation) && rec != nil {
		h.log.Error("reconciliation failure", zap.String("loan_id", loanID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error":          err.Error(),
			"reconciliation": rec,
		})
	}
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, rec)
}
