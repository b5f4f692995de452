package recorder

import (
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists schedule runs to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logrus.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS schedule_runs (
			id              TEXT PRIMARY KEY,
			timestamp       INTEGER NOT NULL,
			loan_name       TEXT,
			principal       REAL,
			term_months     INTEGER,
			annual_rate     REAL,
			frequency       TEXT,
			periods         INTEGER,
			total_interest  REAL,
			total_repayment REAL,
			error           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON schedule_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS schedule_entries (
			run_id            TEXT NOT NULL REFERENCES schedule_runs(id),
			period            INTEGER NOT NULL,
			payment           REAL,
			principal         REAL,
			interest          REAL,
			remaining_balance REAL,
			PRIMARY KEY (run_id, period)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the run header and all of its entries in one transaction.
func (r *SQLiteRecorder) RecordRun(run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var runErr any
	if run.Err != "" {
		runErr = run.Err
	}
	_, err = tx.Exec(`INSERT INTO schedule_runs
		(id, timestamp, loan_name, principal, term_months, annual_rate, frequency,
		 periods, total_interest, total_repayment, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, time.Now().Unix(), run.LoanName,
		nullable(run.Request.Principal), run.Request.TermMonths, nullable(run.Request.AnnualRatePercent),
		run.Request.Frequency.String(), len(run.Entries),
		nullable(run.Summary.TotalInterest), nullable(run.Summary.TotalRepayment), runErr,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO schedule_entries
		(run_id, period, payment, principal, interest, remaining_balance)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range run.Entries {
		if _, err := stmt.Exec(run.ID, e.Period,
			nullable(e.Payment), nullable(e.Principal), nullable(e.Interest), nullable(e.RemainingBalance)); err != nil {
			return fmt.Errorf("insert entry %d: %w", e.Period, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}

// nullable maps non-finite values to NULL.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
