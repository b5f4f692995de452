package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"LoanSentinel/internal/model"
)

const (
	numberFormat = "#,###.##"
	ruleLine     = "----------------------------------------------------------------------------------"

	// DefaultCurrency labels amounts when no currency is configured.
	DefaultCurrency = "Ksh"
)

// Options controls how a schedule is rendered.
type Options struct {
	Title       string
	Currency    string
	ShowEntries bool
}

// Amount renders a monetary value the way every report column does.
func Amount(v float64) string {
	return humanize.FormatFloat(numberFormat, v)
}

// FormatSchedule renders a repayment schedule table followed by its totals.
func FormatSchedule(req model.LoanRequest, entries []model.ScheduleEntry, summary model.LoanRepaymentSummary, opts Options) string {
	currency := opts.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(fmt.Sprintf("%s | %s %s over %d months at %s%% (%s)\n",
			opts.Title, currency, Amount(req.Principal), req.TermMonths,
			humanize.FormatFloat("#.###", req.AnnualRatePercent), req.Frequency))
	}

	if opts.ShowEntries {
		b.WriteString("Repayment Schedule:\n")
		b.WriteString(ruleLine + "\n")
		b.WriteString(fmt.Sprintf("| %-16s | %-12s | %-12s | %-10s | %-18s |\n",
			"No. "+req.Frequency.String(), "Repayment", "Principal", "Interest", "Remaining Balance"))
		b.WriteString(ruleLine + "\n")
		for _, e := range entries {
			b.WriteString(fmt.Sprintf("| %-16d | %-12s | %-12s | %-10s | %-18s |\n",
				e.Period, Amount(e.Payment), Amount(e.Principal), Amount(e.Interest), Amount(e.RemainingBalance)))
		}
		b.WriteString(ruleLine + "\n")
	}

	b.WriteString(fmt.Sprintf("Total Interest: %s %s\n", currency, Amount(summary.TotalInterest)))
	b.WriteString(fmt.Sprintf("Total Repayment: %s %s\n", currency, Amount(summary.TotalRepayment)))
	return b.String()
}

// FormatError renders a loan that could not be amortized.
func FormatError(name string, err error) string {
	return fmt.Sprintf("%s | failed: %v\n", name, err)
}
