package calculator

import (
	"errors"
	"fmt"

	"LoanSentinel/internal/model"
)

// ErrInvalidInput is wrapped by every validation failure of ComputeSchedule.
var ErrInvalidInput = errors.New("invalid input")

// ComputeSchedule amortizes req into per-period entries and aggregate totals.
// Nothing is returned besides the error when req is invalid.
func ComputeSchedule(req model.LoanRequest) ([]model.ScheduleEntry, model.LoanRepaymentSummary, error) {
	if req.Principal < 0 {
		return nil, model.LoanRepaymentSummary{}, fmt.Errorf("%w: negative principal %v", ErrInvalidInput, req.Principal)
	}
	rule, err := LookupFrequency(req.Frequency)
	if err != nil {
		return nil, model.LoanRepaymentSummary{}, err
	}

	rate := PeriodicRate(req.AnnualRatePercent, rule.PeriodsPerYear)
	n := rule.Periods(req.TermMonths)
	payment := AnnuityPayment(req.Principal, rate, n)

	var (
		totalInterest float64
		balance       = req.Principal
		entries       = make([]model.ScheduleEntry, 0, max(n, 0))
	)
	for i := 1; i <= n; i++ {
		interest := balance * rate
		principal := payment - interest

		// Last period settles whatever drift is left.
		if i == n {
			principal = balance
			payment = interest + principal
		}

		totalInterest += interest
		balance -= principal

		// Only reachable when the periodic rate is below -100%.
		// The clamped remainder is not folded back into principal.
		if balance < 0 {
			balance = 0
			principal = payment - interest
		}

		entries = append(entries, model.ScheduleEntry{
			Period:           i,
			Payment:          payment,
			Principal:        principal,
			Interest:         interest,
			RemainingBalance: balance,
		})

		if balance == 0 {
			break
		}
	}

	return entries, model.LoanRepaymentSummary{
		TotalInterest:  totalInterest,
		TotalRepayment: req.Principal + totalInterest,
	}, nil
}
