package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-portal/internal/domain/loan"
	loanUC "loan-portal/internal/usecase/loan"
)

type LoanHandler struct {
	uc  *loanUC.Usecase
	log *zap.Logger
}

func NewLoanHandler(uc *loanUC.Usecase, log *zap.Logger) *LoanHandler {
	return &LoanHandler{uc: uc, log: log}
}

type submitLoanReq struct {
	LoanType     string           `json:"loan_type"     validate:"required,loantype"`
	LoanAmount   decimal.Decimal  `json:"loan_amount"   validate:"required,gt=0,dec2"`
	TermMonths   int              `json:"term_months"   validate:"required,gte=1,lte=480"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"omitempty,gte=0,lte=100,dec2"`
	Purpose      string           `json:"purpose"       validate:"required,max=1000"`

	FirstName        string          `json:"first_name"        validate:"required,max=100"`
	LastName         string          `json:"last_name"         validate:"required,max=100"`
	Email            string          `json:"email"             validate:"required,email"`
	Phone            string          `json:"phone"             validate:"required,max=32"`
	Address          string          `json:"address"           validate:"max=255"`
	City             string          `json:"city"              validate:"max=100"`
	State            string          `json:"state"             validate:"max=100"`
	ZipCode          string          `json:"zip_code"          validate:"max=16"`
	EmploymentStatus string          `json:"employment_status" validate:"required,max=32"`
	EmployerName     string          `json:"employer_name"     validate:"max=255"`
	MonthlyIncome    decimal.Decimal `json:"monthly_income"    validate:"required,gt=0,dec2"`
	YearsEmployed    int             `json:"years_employed"    validate:"gte=0,lte=80"`
}

func (h *LoanHandler) Submit(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	var req submitLoanReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Submit(c.Request().Context(), loanUC.SubmitInput{
		UserID:       s.UserID,
		LoanType:     loan.Type(req.LoanType),
		LoanAmount:   req.LoanAmount,
		TermMonths:   req.TermMonths,
		InterestRate: req.InterestRate,
		Purpose:      req.Purpose,
		Applicant: loan.Applicant{
			FirstName:        req.FirstName,
			LastName:         req.LastName,
			Email:            req.Email,
			Phone:            req.Phone,
			Address:          req.Address,
			City:             req.City,
			State:            req.State,
			ZipCode:          req.ZipCode,
			EmploymentStatus: req.EmploymentStatus,
			EmployerName:     req.EmployerName,
			MonthlyIncome:    req.MonthlyIncome,
			YearsEmployed:    req.YearsEmployed,
		},
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListMine(c echo.Context) error {
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

func (h *LoanHandler) Get(c echo.Context) error {
	s, ok, err := session(c)
	if !ok {
		return err
	}
	loanID, ok, err := pathID(c, "loan_id")
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), s, loanID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListForReview lists loans filtered by ?status=, all when absent. Staff only.
func (h *LoanHandler) ListForReview(c echo.Context) error {
	out, err := h.uc.ListForReview(c.Request().Context(), loan.Status(c.QueryParam("status")))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Report(c echo.Context) error {
	r, err := h.uc.Report(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, r)
}
