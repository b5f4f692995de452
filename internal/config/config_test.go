package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"LoanSentinel/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LOG_LEVEL", "LOG_FORMAT", "REPORT_CURRENCY", "REPORT_CRON", "SQLITE_PATH"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if len(cfg.Loans) != 1 || cfg.Loans[0] != ExampleLoan {
		t.Errorf("expected example loan, got %+v", cfg.Loans)
	}
	opts := cfg.ReportOptions()
	if opts.Currency != "Ksh" || !opts.ShowEntries {
		t.Errorf("unexpected report options: %+v", opts)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
loans:
  - name: car
    principal: 5000
    term_months: 24
    annual_rate: 10
    frequency: Bi-Monthly
  - name: house
    principal: 500000
    term_months: 48
    annual_rate: 3.5
    frequency: weekly
report:
  currency: USD
  show_entries: false
schedule:
  report_cron: "0 0 8 * * 1"
log:
  level: debug
`)
	t.Setenv("REPORT_CURRENCY", "EUR")
	t.Setenv("SQLITE_PATH", "/tmp/history.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if len(cfg.Loans) != 2 {
		t.Fatalf("expected 2 loans, got %d", len(cfg.Loans))
	}
	if cfg.Loans[0].Frequency != "bi-monthly" {
		t.Errorf("expected normalized frequency, got %q", cfg.Loans[0].Frequency)
	}
	if cfg.Report.Currency != "EUR" {
		t.Errorf("expected env currency override, got %q", cfg.Report.Currency)
	}
	if cfg.ReportOptions().ShowEntries {
		t.Error("expected show_entries false")
	}
	if cfg.Database.SQLitePath != "/tmp/history.db" {
		t.Errorf("expected sqlite override, got %q", cfg.Database.SQLitePath)
	}
	if cfg.Schedule.ReportCron != "0 0 8 * * 1" {
		t.Errorf("unexpected cron %q", cfg.Schedule.ReportCron)
	}

	req, err := cfg.Loans[1].Request()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.LoanRequest{Principal: 500000, TermMonths: 48, AnnualRatePercent: 3.5, Frequency: model.Weekly}
	if req != want {
		t.Errorf("expected %+v, got %+v", want, req)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "loans: [::")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate_Errors(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
loans:
  - principal: 1000
    term_months: -1
    frequency: yearly
log:
  format: xml
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"Name is required", "TermMonths must be >= 0", "Frequency must be one of", "Format must be one of"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidate_NegativePrincipalLeftToEngine(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
loans:
  - name: negative
    principal: -3000
    term_months: 6
    annual_rate: 7
    frequency: monthly
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected config to accept negative principal, got %v", err)
	}
}
