package scheduler

import (
	"fmt"
	"io"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/javoxirone/coffee-sales-management/internal/config"
	"github.com/javoxirone/coffee-sales-management/internal/service/reporting"
	"github.com/javoxirone/coffee-sales-management/internal/service/sales"
)

// Scheduler emits periodic sales summaries on the configured cron schedule.
// It backs the watch command.
type Scheduler struct {
	cron      *cron.Cron
	salesSvc  *sales.Service
	reportSvc *reporting.Service
	cfg       config.ReportingConfig
	out       io.Writer
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ReportingConfig, salesSvc *sales.Service, reportSvc *reporting.Service, out io.Writer, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow).
	return &Scheduler{
		cron:      cron.New(),
		salesSvc:  salesSvc,
		reportSvc: reportSvc,
		cfg:       cfg,
		out:       out,
		logger:    logger,
	}
}

// Start registers the summary job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.emitSummary); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.cfg.CronSchedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) emitSummary() {
	period, err := reporting.ParsePeriod(s.cfg.DefaultPeriod)
	if err != nil {
		s.logger.Error("invalid summary period", zap.Error(err))
		return
	}

	records, err := s.salesSvc.ListSales(sales.SaleFilter{})
	if err != nil {
		s.logger.Error("failed to load sales for summary", zap.Error(err))
		return
	}

	summaries, err := s.reportSvc.Summarize(period, records)
	if err != nil {
		s.logger.Error("failed to compute summary", zap.Error(err))
		return
	}

	fmt.Fprintf(s.out, "[%s] sales by %s\n%s\n",
		time.Now().Format("2006-01-02 15:04:05"), period,
		reporting.FormatSummaries(period, summaries))
	s.logger.Info("summary emitted", zap.String("period", string(period)), zap.Int("buckets", len(summaries)))
}
