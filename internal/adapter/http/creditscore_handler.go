package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"loan-portal/internal/usecase/creditscore"
)

type CreditScoreHandler struct {
	uc  *creditscore.Usecase
	log *zap.Logger
}

func NewCreditScoreHandler(uc *creditscore.Usecase, log *zap.Logger) *CreditScoreHandler {
	return &CreditScoreHandler{uc: uc, log: log}
}

func (h *CreditScoreHandler) Get(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	cs, err := h.uc.Get(c.Request().Context(), s.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *CreditScoreHandler) Recompute(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	b, err := h.uc.Recompute(c.Request().Context(), s.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, b)
}
