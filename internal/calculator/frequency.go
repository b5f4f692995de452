package calculator

import (
	"fmt"

	"LoanSentinel/internal/model"
)

// FrequencyRule describes how a repayment frequency splits a loan term into periods.
type FrequencyRule struct {
	PeriodsPerYear int
	Periods        func(termMonths int) int
}

// frequencies maps every supported repayment frequency to its rule.
var frequencies = map[model.RepaymentFrequency]FrequencyRule{
	model.Monthly: {
		PeriodsPerYear: 12,
		Periods:        func(termMonths int) int { return termMonths },
	},
	model.BiMonthly: {
		PeriodsPerYear: 6,
		Periods:        func(termMonths int) int { return termMonths / 2 },
	},
	model.Weekly: {
		PeriodsPerYear: 48,
		Periods:        func(termMonths int) int { return termMonths * 4 },
	},
}

// LookupFrequency returns the rule for f, or an ErrInvalidInput error if f is not supported.
func LookupFrequency(f model.RepaymentFrequency) (FrequencyRule, error) {
	rule, ok := frequencies[f]
	if !ok {
		return FrequencyRule{}, fmt.Errorf("%w: invalid repayment frequency %d", ErrInvalidInput, int(f))
	}
	return rule, nil
}

// PeriodCount returns the number of repayments for a term of termMonths.
func PeriodCount(f model.RepaymentFrequency, termMonths int) (int, error) {
	rule, err := LookupFrequency(f)
	if err != nil {
		return 0, err
	}
	return rule.Periods(termMonths), nil
}
