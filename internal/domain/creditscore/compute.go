package creditscore

import (
	"math"
	"time"

	"loan-portal/internal/domain/loan"
	"loan-portal/internal/domain/transaction"
)

// Breakdown is the per-component contribution of a recompute.
type Breakdown struct {
	PaymentHistory float64 `json:"payment_history"`
	Utilization    float64 `json:"utilization"`
	HistoryLength  float64 `json:"history_length"`
	CreditMix      float64 `json:"credit_mix"`
	Score          int     `json:"score"`
}

// Compute derives a score from the user's loans and transactions as of now.
// It has no side effects.
func Compute(loans []loan.Loan, txs []transaction.Transaction, now time.Time, p Params) Breakdown {
	b := Breakdown{
		PaymentHistory: paymentHistory(txs, now, p),
		Utilization:    utilization(loans, p),
		HistoryLength:  historyLength(loans, len(txs), now, p),
		CreditMix:      creditMix(loans, p),
	}
	raw := p.Base + b.PaymentHistory + b.Utilization + b.HistoryLength + b.CreditMix
	b.Score = p.Clamp(int(math.Round(raw)))
	return b
}

func paymentHistory(txs []transaction.Transaction, now time.Time, p Params) float64 {
	if len(txs) == 0 {
		return 0
	}
	recent := now.AddDate(0, -p.RecentMonths, 0)
	mid := now.AddDate(0, -p.MidMonths, 0)

	var weighted, total float64
	for _, t := range txs {
		w := p.OldWeight
		switch {
		case !t.CreatedAt.Before(recent):
			w = p.RecentWeight
		case !t.CreatedAt.Before(mid):
			w = p.MidWeight
		}
		punctuality := p.OnTimeWeight
		if t.IsLate {
			punctuality = p.LateWeight
		}
		weighted += w * punctuality
		total += w
	}
	return weighted/total*p.HistoryScale - p.HistoryCenter
}

func utilization(loans []loan.Loan, p Params) float64 {
	var sum float64
	active := 0
	for i := range loans {
		l := &loans[i]
		if l.Status != loan.StatusAccepted || !l.LoanAmount.IsPositive() {
			continue
		}
		ratio, _ := l.PaidAmount.Div(l.LoanAmount).Float64()
		sum += ratio * p.UtilizationScale
		active++
	}
	if active == 0 {
		return 0
	}
	return sum/float64(active) - p.UtilizationCenter
}

func historyLength(loans []loan.Loan, txCount int, now time.Time, p Params) float64 {
	if len(loans) == 0 {
		return 0
	}
	oldest := loans[0].SubmittedAt
	for _, l := range loans[1:] {
		if l.SubmittedAt.Before(oldest) {
			oldest = l.SubmittedAt
		}
	}
	months := monthsBetween(oldest, now)
	if months > p.LengthMonthsCap {
		months = p.LengthMonthsCap
	}
	txPoints := math.Min(float64(txCount)*p.LengthTxPoints, p.LengthTxCap)
	return float64(months)/float64(p.LengthMonthsCap)*p.LengthScale + txPoints - p.LengthCenter
}

func creditMix(loans []loan.Loan, p Params) float64 {
	if len(loans) == 0 {
		return 0
	}
	types := make(map[loan.Type]struct{}, p.MixTypeCount)
	paidUp := 0
	for i := range loans {
		l := &loans[i]
		types[l.LoanType] = struct{}{}
		if !l.LoanAmount.IsPositive() {
			continue
		}
		ratio, _ := l.PaidAmount.Div(l.LoanAmount).Float64()
		if ratio >= p.MixPaidThreshold {
			paidUp++
		}
	}
	diversity := float64(len(types)) / float64(p.MixTypeCount) * p.MixScale
	paid := math.Min(float64(paidUp)*p.MixPaidPoints, p.MixPaidCap)
	return diversity + paid - p.MixCenter
}

// monthsBetween counts whole calendar months from a to b; negative spans are 0.
func monthsBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	m := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		m--
	}
	if m < 0 {
		return 0
	}
	return m
}
