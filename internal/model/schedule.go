package model

// ScheduleEntry is one period of an amortization schedule.
type ScheduleEntry struct {
	Period           int
	Payment          float64
	Principal        float64
	Interest         float64
	RemainingBalance float64
}

// LoanRepaymentSummary aggregates a whole schedule.
type LoanRepaymentSummary struct {
	TotalInterest  float64
	TotalRepayment float64
}
