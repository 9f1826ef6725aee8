package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-portal/internal/domain/product"
	"loan-portal/pkg/emi"
)

type CalculatorHandler struct{ log *zap.Logger }

func NewCalculatorHandler(log *zap.Logger) *CalculatorHandler { return &CalculatorHandler{log: log} }

type emiReq struct {
	Principal  decimal.Decimal `json:"principal"   validate:"required,gt=0,dec2"`
	Rate       decimal.Decimal `json:"rate"        validate:"gte=0,lte=100"`
	TermMonths int             `json:"term_months" validate:"required,gte=1,lte=600"`
}

type scheduleReq struct {
	emiReq
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *CalculatorHandler) EMI(c echo.Context) error {
	var req emiReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	res, err := emi.Calculate(req.Principal, req.Rate, req.TermMonths)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CalculatorHandler) Schedule(c echo.Context) error {
	var req scheduleReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	start := time.Now().UTC()
	if req.StartDate != "" {
		start, _ = time.Parse(time.DateOnly, req.StartDate)
	}
	rows, err := emi.Schedule(req.Principal, req.Rate, req.TermMonths, start)
	if err != nil {
		return respondError(c, h.log, err)
	}
	sum, _ := emi.Calculate(req.Principal, req.Rate, req.TermMonths)
	return c.JSON(http.StatusOK, map[string]any{
		"summary":  sum,
		"schedule": rows,
	})
}

func (h *CalculatorHandler) Products(c echo.Context) error {
	return c.JSON(http.StatusOK, product.All())
}
