package recorder

import (
	"github.com/google/uuid"

	"LoanSentinel/internal/model"
)

// Run holds one amortization of a configured loan.
type Run struct {
	ID       string
	LoanName string
	Request  model.LoanRequest
	Entries  []model.ScheduleEntry
	Summary  model.LoanRepaymentSummary
	Err      string // empty when the engine succeeded
}

// NewRun creates a Run with a fresh ID.
func NewRun(loanName string, req model.LoanRequest) *Run {
	return &Run{
		ID:       uuid.NewString(),
		LoanName: loanName,
		Request:  req,
	}
}

// Recorder persists computation history for later analysis.
type Recorder interface {
	RecordRun(run *Run) error
	Close() error
}
