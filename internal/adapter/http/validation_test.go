package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		LoanID string `json:"loan_id" validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{LoanID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		"deadbeef",
		strings.Repeat("g", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x",
	} {
		err := cv.Validate(P{LoanID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "loan_id", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestDecimalFields(t *testing.T) {
	type P struct {
		Amount decimal.Decimal  `json:"amount" validate:"required,gt=0,dec2"`
		Rate   *decimal.Decimal `json:"rate"   validate:"omitempty,gte=0,lte=100,dec2"`
	}
	cv := NewValidator()
	d := decimal.RequireFromString

	rate := d("8.99")
	if err := cv.Validate(P{Amount: d("15000.50"), Rate: &rate}); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if err := cv.Validate(P{Amount: d("1")}); err != nil {
		t.Fatalf("nil optional rate should pass, got %v", err)
	}

	tests := []struct {
		name  string
		in    P
		field string
		msg   string
	}{
		{"zero amount", P{Amount: decimal.Zero}, "amount", "is required"},
		{"negative amount", P{Amount: d("-5")}, "amount", "greater than 0"},
		{"three decimals", P{Amount: d("10.005")}, "amount", "at most 2 decimal places"},
		{"rate above 100", P{Amount: d("1"), Rate: func() *decimal.Decimal { r := d("120"); return &r }()}, "rate", "less than or equal to 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(tt.in)
			if err == nil {
				t.Fatalf("expected error")
			}
			if fe := ToFieldErrors(err); !containsFieldMsg(fe, tt.field, tt.msg) {
				t.Fatalf("want %s %q, got %+v", tt.field, tt.msg, fe)
			}
		})
	}
}

func TestLoanTypeValidation(t *testing.T) {
	type P struct {
		LoanType string `json:"loan_type" validate:"required,loantype"`
	}
	cv := NewValidator()
	for _, v := range []string{"personal", "business", "home", "auto"} {
		if err := cv.Validate(P{LoanType: v}); err != nil {
			t.Fatalf("expected %q valid, got %v", v, err)
		}
	}
	err := cv.Validate(P{LoanType: "boat"})
	if err == nil {
		t.Fatalf("expected error for boat")
	}
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "loan_type", "one of personal") {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name  string `json:"name"         validate:"required"`
		Term  int    `json:"term_months"  validate:"gte=1"`
		Years int    `json:"years"        validate:"lte=80"`
		Type  string `json:"payment_type" validate:"oneof=partial full"`
		Email string `json:"email"        validate:"email"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Term: 0, Years: 81, Type: "bulk", Email: "nope"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	checks := []struct{ field, msg string }{
		{"name", "is required"},
		{"term_months", "greater than or equal to 1"},
		{"years", "less than or equal to 80"},
		{"payment_type", "one of partial full"},
		{"email", "valid email"},
	}
	for _, c := range checks {
		if !containsFieldMsg(fe, c.field, c.msg) {
			t.Fatalf("missing %q for %s: %+v", c.msg, c.field, fe)
		}
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
