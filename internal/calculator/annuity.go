package calculator

import "math"

// PeriodicRate converts a nominal annual percentage into the rate for one period.
func PeriodicRate(annualRatePercent float64, periodsPerYear int) float64 {
	return annualRatePercent / float64(periodsPerYear*100)
}

// AnnuityPayment returns the fixed payment that retires principal over n periods at rate.
// A zero rate divides by zero and yields a non-finite payment.
func AnnuityPayment(principal, rate float64, n int) float64 {
	return principal * (rate / (1 - math.Pow(1+rate, -float64(n))))
}
