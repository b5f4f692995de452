package scheduler

import (
	"fmt"
	"io"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"LoanSentinel/internal/calculator"
	"LoanSentinel/internal/config"
	"LoanSentinel/internal/recorder"
	"LoanSentinel/internal/report"
)

// Scheduler amortizes the configured loan book, once or on a cron.
type Scheduler struct {
	Cron     *cron.Cron
	Loans    []config.Loan
	Report   report.Options
	Out      io.Writer
	Recorder recorder.Recorder
	Log      *logrus.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(loans []config.Loan, opts report.Options, out io.Writer, rec recorder.Recorder, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Loans:    loans,
		Report:   opts,
		Out:      out,
		Recorder: rec,
		Log:      log,
	}
}

// Register schedules a full run of the loan book.
func (s *Scheduler) Register(reportCron string) error {
	if _, err := s.Cron.AddFunc(reportCron, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// StartAfterRun reports once in the caller's goroutine, then starts the cron scheduler,
// so the first report never overlaps a scheduled one.
func (s *Scheduler) StartAfterRun() int {
	failed := s.RunNow()
	s.Start()
	return failed
}

// Stop stops the cron scheduler and waits for a running report to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RunNow amortizes every loan in order and returns how many failed.
func (s *Scheduler) RunNow() int {
	s.Log.WithField("loans", len(s.Loans)).Info("running loan report")
	failed := 0
	for _, loan := range s.Loans {
		if !s.runLoan(loan) {
			failed++
		}
	}
	return failed
}

func (s *Scheduler) runLoan(loan config.Loan) bool {
	entry := s.Log.WithField("loan", loan.Name)

	req, err := loan.Request()
	if err != nil {
		entry.Errorf("build request: %v", err)
		s.write(report.FormatError(loan.Name, err))
		return false
	}

	run := recorder.NewRun(loan.Name, req)
	defer s.record(entry, run)

	entries, summary, err := calculator.ComputeSchedule(req)
	if err != nil {
		run.Err = err.Error()
		entry.Errorf("compute schedule: %v", err)
		s.write(report.FormatError(loan.Name, err))
		return false
	}
	run.Entries = entries
	run.Summary = summary

	entry.WithFields(logrus.Fields{
		"periods":        len(entries),
		"total_interest": summary.TotalInterest,
	}).Debug("schedule computed")

	opts := s.Report
	opts.Title = loan.Name
	s.write(report.FormatSchedule(req, entries, summary, opts) + "\n")
	return true
}

func (s *Scheduler) record(entry *logrus.Entry, run *recorder.Run) {
	if err := s.Recorder.RecordRun(run); err != nil {
		entry.Errorf("record run: %v", err)
	}
}

func (s *Scheduler) write(text string) {
	if _, err := io.WriteString(s.Out, text); err != nil {
		s.Log.Errorf("write report: %v", err)
	}
}
