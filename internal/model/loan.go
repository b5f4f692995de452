package model

import (
	"fmt"
	"strings"
)

// RepaymentFrequency selects how often a loan is repaid.
type RepaymentFrequency int

const (
	Monthly RepaymentFrequency = iota + 1
	BiMonthly
	Weekly
)

func (f RepaymentFrequency) String() string {
	switch f {
	case Monthly:
		return "Monthly"
	case BiMonthly:
		return "Bi-Monthly"
	case Weekly:
		return "Weekly"
	default:
		return "Unknown"
	}
}

// ParseFrequency maps a config or flag value to a RepaymentFrequency.
func ParseFrequency(s string) (RepaymentFrequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return Monthly, nil
	case "bi-monthly", "bimonthly", "bi_monthly":
		return BiMonthly, nil
	case "weekly":
		return Weekly, nil
	default:
		return 0, fmt.Errorf("unknown repayment frequency %q", s)
	}
}

// LoanRequest holds the parameters of a single amortization run.
type LoanRequest struct {
	Principal         float64
	TermMonths        int
	AnnualRatePercent float64
	Frequency         RepaymentFrequency
}
