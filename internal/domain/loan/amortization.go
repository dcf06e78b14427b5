package loan

import (
	"math"
	"time"
)

// Installment due dates advance in fixed 30-day steps, not calendar
// months. Downstream bookkeeping relies on this spacing; do not switch to
// AddDate month arithmetic.
const installmentStep = 30 * 24 * time.Hour

// MonthlyPayment computes the fixed payment for a standard amortized
// loan: P*r*(1+r)^n / ((1+r)^n - 1), with an even split when the rate
// is zero.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	r := annualRatePercent / 100 / 12
	if r == 0 {
		return principal / float64(termMonths)
	}
	factor := math.Pow(1+r, float64(termMonths))
	return principal * r * factor / (factor - 1)
}

// GenerateSchedule produces the full fixed-payment amortization schedule
// up front; the schedule is persisted with the loan, so it is built
// eagerly. Returns nil when the terms are out of range; bounds are the
// caller's responsibility to reject at validation time.
func GenerateSchedule(principal, annualRatePercent float64, termMonths int, firstDue time.Time) []Installment {
	if principal <= 0 || annualRatePercent < 0 || termMonths <= 0 {
		return nil
	}

	r := annualRatePercent / 100 / 12
	payment := MonthlyPayment(principal, annualRatePercent, termMonths)

	schedule := make([]Installment, 0, termMonths)
	balance := principal
	for m := 1; m <= termMonths; m++ {
		interest := balance * r
		principalPortion := payment - interest
		balance -= principalPortion

		schedule = append(schedule, Installment{
			Month:          m,
			DueDate:        firstDue.Add(time.Duration(m-1) * installmentStep),
			AmountDue:      payment,
			Principal:      principalPortion,
			Interest:       interest,
			RemainingAfter: math.Max(0, balance),
			Status:         InstallmentPending,
		})
	}
	return schedule
}
