package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-portal/internal/usecase/approval"
)

type ApprovalHandler struct {
	uc  *approval.Usecase
	log *zap.Logger
}

func NewApprovalHandler(uc *approval.Usecase, log *zap.Logger) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, log: log}
}

type rejectLoanReq struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

func (h *ApprovalHandler) Approve(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	loanID, ok, err := pathID(c, "loan_id")
	if !ok {
		return err
	}
	dto, err := h.uc.Approve(c.Request().Context(), approval.ApproveInput{LoanID: loanID, ReviewerID: s.UserID})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) Reject(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	loanID, ok, err := pathID(c, "loan_id")
	if !ok {
		return err
	}
	var req rejectLoanReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Reject(c.Request().Context(), approval.RejectInput{
		LoanID:     loanID,
		ReviewerID: s.UserID,
		Reason:     req.Reason,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
