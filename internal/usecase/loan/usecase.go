package loan

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-portal/internal/domain/apperr"
	"loan-portal/internal/domain/identity"
	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/product"
	"loan-portal/pkg/emi"
	"loan-portal/pkg/id"
)

type Usecase struct {
	repo loan.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewUsecase(r loan.Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log.Named("loan"), now: func() time.Time { return time.Now().UTC() }}
}

func validateSubmit(in SubmitInput) (product.Product, error) {
	p, ok := product.Lookup(in.LoanType)
	if !ok {
		return product.Product{}, apperr.Validation("unknown loan type %q", in.LoanType)
	}
	a := in.Applicant
	required := []struct{ field, value string }{
		{"user_id", in.UserID},
		{"purpose", in.Purpose},
		{"first_name", a.FirstName},
		{"last_name", a.LastName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"employment_status", a.EmploymentStatus},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return p, apperr.Validation("%s is required", r.field)
		}
	}
	switch {
	case !in.LoanAmount.IsPositive():
		return p, apperr.Validation("loan_amount must be positive")
	case in.TermMonths <= 0:
		return p, apperr.Validation("term_months must be positive")
	case !a.MonthlyIncome.IsPositive():
		return p, apperr.Validation("monthly_income must be positive")
	case a.YearsEmployed < 0:
		return p, apperr.Validation("years_employed must not be negative")
	case in.InterestRate != nil && in.InterestRate.IsNegative():
		return p, apperr.Validation("interest_rate must not be negative")
	case !p.InRange(in.LoanAmount):
		return p, apperr.Validation("%s loans must be between %s and %s",
			p.Type, p.MinAmount.StringFixed(0), p.MaxAmount.StringFixed(0))
	}
	return p, nil
}

// Submit creates a new application in the waiting state.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*LoanDTO, error) {
	p, err := validateSubmit(in)
	if err != nil {
		return nil, err
	}
	rate := p.Rate
	if in.InterestRate != nil {
		rate = *in.InterestRate
	}

	now := u.now()
	l := &loan.Loan{
		LoanID:          id.NewID32(),
		UserID:          in.UserID,
		LoanType:        in.LoanType,
		LoanAmount:      in.LoanAmount.Round(2),
		TermMonths:      in.TermMonths,
		InterestRate:    rate.Round(2),
		Purpose:         strings.TrimSpace(in.Purpose),
		Applicant:       in.Applicant,
		Status:          loan.StatusWaiting,
		PaidAmount:      decimal.Zero,
		SubmittedAt:     now,
		StatusUpdatedAt: now,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	u.log.Info("loan submitted",
		zap.String("loan_id", l.LoanID), zap.String("user_id", l.UserID),
		zap.String("type", string(l.LoanType)), zap.String("amount", l.LoanAmount.String()))
	return toDTO(l), nil
}

// Get returns one loan if the caller owns it or is staff. Foreign loans
// are reported as not found.
func (u *Usecase) Get(ctx context.Context, s identity.Session, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !s.CanAccess(l.UserID) {
		return nil, apperr.ErrNotFound
	}
	return toDTO(l), nil
}

func (u *Usecase) ListMine(ctx context.Context, userID string) ([]LoanDTO, error) {
	ls, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

// ListForReview is the staff queue; an empty status lists everything.
func (u *Usecase) ListForReview(ctx context.Context, status loan.Status) ([]LoanDTO, error) {
	if status != "" && !validStatus(status) {
		return nil, apperr.Validation("unknown status %q", status)
	}
	ls, err := u.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return toDTOs(ls), nil
}

func (u *Usecase) Report(ctx context.Context) (*Report, error) {
	stats, err := u.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	r := &Report{ByStatus: stats, TotalRequested: decimal.Zero, TotalDisbursed: decimal.Zero, TotalRepaid: decimal.Zero}
	for _, s := range stats {
		r.TotalApplications += s.Count
		r.TotalRequested = r.TotalRequested.Add(s.TotalAmount)
		r.TotalRepaid = r.TotalRepaid.Add(s.TotalPaid)
		switch s.Status {
		case loan.StatusWaiting:
			r.Waiting = s.Count
		case loan.StatusAccepted:
			r.Accepted = s.Count
			r.TotalDisbursed = r.TotalDisbursed.Add(s.TotalAmount)
		case loan.StatusRejected:
			r.Rejected = s.Count
		case loan.StatusPaid:
			r.Paid = s.Count
			r.TotalDisbursed = r.TotalDisbursed.Add(s.TotalAmount)
		}
	}
	return r, nil
}

func validStatus(s loan.Status) bool {
	switch s {
	case loan.StatusWaiting, loan.StatusAccepted, loan.StatusRejected, loan.StatusPaid:
		return true
	}
	return false
}

func toDTO(l *loan.Loan) *LoanDTO {
	dto := &LoanDTO{Loan: *l, Outstanding: l.Outstanding()}
	if r, err := emi.Calculate(l.LoanAmount, l.InterestRate, l.TermMonths); err == nil {
		dto.MonthlyPayment = r.MonthlyPayment
		dto.TotalPayment = r.TotalPayment
		dto.TotalInterest = r.TotalInterest
	}
	return dto
}

func toDTOs(ls []loan.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out
}
