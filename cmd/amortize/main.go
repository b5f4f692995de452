package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"LoanSentinel/internal/config"
	"LoanSentinel/internal/recorder"
	"LoanSentinel/internal/scheduler"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}

	flag.StringVarP(&cfgPath, "config", "c", cfgPath, "path to the YAML config")
	principal := flag.Float64P("principal", "p", 0, "loan principal; replaces the configured loans")
	term := flag.IntP("term", "t", 12, "loan term in months")
	rate := flag.Float64P("rate", "r", 0, "nominal annual interest rate in percent")
	frequency := flag.StringP("frequency", "f", "monthly", "repayment frequency: monthly, bi-monthly or weekly")
	name := flag.String("name", "loan", "label for the loan given on the command line")
	totalsOnly := flag.Bool("totals-only", false, "print only total interest and repayment")
	watch := flag.BoolP("watch", "w", false, "keep running and report on schedule.report_cron")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if flag.CommandLine.Changed("principal") {
		cfg.Loans = []config.Loan{{
			Name:       *name,
			Principal:  *principal,
			TermMonths: *term,
			AnnualRate: *rate,
			Frequency:  strings.ToLower(*frequency),
		}}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	opts := cfg.ReportOptions()
	if *totalsOnly {
		opts.ShowEntries = false
	}
	sched := scheduler.NewScheduler(cfg.Loans, opts, os.Stdout, rec, log)

	if !*watch {
		if failed := sched.RunNow(); failed > 0 {
			log.Errorf("%d of %d loans failed", failed, len(cfg.Loans))
			rec.Close()
			os.Exit(1)
		}
		return
	}

	if cfg.Schedule.ReportCron == "" {
		log.Fatal("--watch needs schedule.report_cron")
	}
	if err := sched.Register(cfg.Schedule.ReportCron); err != nil {
		log.Fatalf("register cron task: %v", err)
	}
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, reporting now")
		sched.StartAfterRun()
	} else {
		sched.Start()
	}
	defer sched.Stop()

	log.WithField("cron", cfg.Schedule.ReportCron).Info("LoanSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping...")
}
