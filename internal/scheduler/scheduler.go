package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/salonhq/ledger/internal/config"
	"github.com/salonhq/ledger/internal/domain/models"
	repo "github.com/salonhq/ledger/internal/repository/mongodb"
	"github.com/salonhq/ledger/internal/repository/sheets"
	"github.com/salonhq/ledger/internal/service/reporting"
	"github.com/salonhq/ledger/pkg/clients/webhook"
)

// Scheduler runs the monthly snapshot job: on schedule it reconciles the
// previous month and persists the result, then fans it out to the optional
// sheet export and webhook. Exporter and notifier may be nil.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	reports      repo.ReportStore
	exporter     sheets.Exporter
	notifier     webhook.Client
	loc          *time.Location
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, reports repo.ReportStore, exporter sheets.Exporter, notifier webhook.Client, loc *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		reportingSvc: reportingSvc,
		reports:      reports,
		exporter:     exporter,
		notifier:     notifier,
		loc:          loc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.snapshotPreviousMonth)
	if err != nil {
		s.logger.Error("failed to schedule monthly snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) snapshotPreviousMonth() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now().In(s.loc)
	previous := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc).AddDate(0, -1, 0)
	year, month := previous.Year(), int(previous.Month())

	s.logger.Info("generating monthly snapshot", zap.Int("year", year), zap.Int("month", month))

	profit, err := s.reportingSvc.MonthlyProfit(ctx, year, month)
	if err != nil {
		s.logger.Error("failed to reconcile previous month", zap.Error(err))
		return
	}

	report := models.MonthlyReport{
		Month:         profit.Month,
		Year:          profit.Year,
		TotalServices: profit.TotalServices,
		TotalExpenses: profit.TotalExpenses,
		Profit:        profit.Profit,
		CreatedAt:     now,
	}

	if err := s.reports.SaveMonthlyReport(ctx, report); err != nil {
		s.logger.Error("failed to persist monthly report", zap.Error(err))
		return
	}

	if s.exporter != nil {
		if err := s.exporter.AppendMonthlyReport(ctx, report); err != nil {
			s.logger.Error("failed to export monthly report to sheet", zap.Error(err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.PostMonthlyReport(ctx, report); err != nil {
			s.logger.Error("failed to notify webhook of monthly report", zap.Error(err))
		}
	}

	s.logger.Info("monthly snapshot stored",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Float64("profit", report.Profit))
}
