package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"LoanSentinel/internal/model"
	"LoanSentinel/internal/report"
)

// Loan is one entry of the configured loan book.
type Loan struct {
	Name       string  `yaml:"name" validate:"required"`
	Principal  float64 `yaml:"principal"`
	TermMonths int     `yaml:"term_months" validate:"gte=0"`
	AnnualRate float64 `yaml:"annual_rate"`
	Frequency  string  `yaml:"frequency" validate:"required,oneof=monthly bi-monthly bimonthly bi_monthly weekly"`
}

// Request converts the entry into an engine request.
func (l Loan) Request() (model.LoanRequest, error) {
	freq, err := model.ParseFrequency(l.Frequency)
	if err != nil {
		return model.LoanRequest{}, fmt.Errorf("loan %q: %w", l.Name, err)
	}
	return model.LoanRequest{
		Principal:         l.Principal,
		TermMonths:        l.TermMonths,
		AnnualRatePercent: l.AnnualRate,
		Frequency:         freq,
	}, nil
}

// Config holds all application configuration.
type Config struct {
	Loans  []Loan `yaml:"loans" validate:"dive"`
	Report struct {
		Currency    string `yaml:"currency"`
		ShowEntries *bool  `yaml:"show_entries"`
	} `yaml:"report"`
	Schedule struct {
		ReportCron string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level" validate:"oneof=panic fatal error warn warning info debug trace"`
		Format string `yaml:"format" validate:"oneof=text json"`
	} `yaml:"log"`
}

// ExampleLoan is used when no loan is configured.
var ExampleLoan = Loan{
	Name:       "example",
	Principal:  5000,
	TermMonths: 4,
	AnnualRate: 10,
	Frequency:  "monthly",
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("REPORT_CURRENCY"); v != "" {
		cfg.Report.Currency = v
	}
	if v := os.Getenv("REPORT_CRON"); v != "" {
		cfg.Schedule.ReportCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Report.Currency == "" {
		cfg.Report.Currency = report.DefaultCurrency
	}
	if cfg.Report.ShowEntries == nil {
		show := true
		cfg.Report.ShowEntries = &show
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if len(cfg.Loans) == 0 {
		cfg.Loans = []Loan{ExampleLoan}
	}
	for i := range cfg.Loans {
		cfg.Loans[i].Frequency = strings.ToLower(strings.TrimSpace(cfg.Loans[i].Frequency))
	}

	return cfg, nil
}

// ReportOptions returns the renderer options described by the config.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		Currency:    c.Report.Currency,
		ShowEntries: c.Report.ShowEntries == nil || *c.Report.ShowEntries,
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, describe(e))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return nil
}

func describe(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return field + " must be >= " + e.Param()
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}
