package scheduler

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javoxirone/coffee-sales-management/internal/config"
	"github.com/javoxirone/coffee-sales-management/internal/repository/csvstore"
	"github.com/javoxirone/coffee-sales-management/internal/service/reporting"
	"github.com/javoxirone/coffee-sales-management/internal/service/sales"
)

func newTestScheduler(t *testing.T, cfg config.ReportingConfig) *Scheduler {
	t.Helper()

	dir := t.TempDir()
	csvCfg := config.CSVConfig{
		DateLayout: "2006-01-02",
		Columns: config.ColumnNames{
			Date:      "date",
			Product:   "product",
			Quantity:  "quantity",
			UnitPrice: "unit_price",
			CashType:  "cash_type",
			Card:      "card",
		},
	}

	salesSvc := sales.NewService(
		csvstore.NewSalesStore(filepath.Join(dir, "sales.csv"), csvCfg, nil),
		csvstore.NewInventoryStore(filepath.Join(dir, "inventory.csv"), nil),
		nil,
	)
	return NewScheduler(cfg, salesSvc, reporting.NewService(nil), &bytes.Buffer{}, nil)
}

func TestSchedulerStartStop(t *testing.T) {
	sched := newTestScheduler(t, config.ReportingConfig{
		CronSchedule:  "0 20 * * *",
		DefaultPeriod: "day",
	})

	require.NoError(t, sched.Start())
	sched.Stop()
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	sched := newTestScheduler(t, config.ReportingConfig{
		CronSchedule:  "every evening",
		DefaultPeriod: "day",
	})

	assert.Error(t, sched.Start())
}

func TestSchedulerEmitSummary(t *testing.T) {
	out := &bytes.Buffer{}
	sched := newTestScheduler(t, config.ReportingConfig{
		CronSchedule:  "0 20 * * *",
		DefaultPeriod: "day",
	})
	sched.out = out

	sched.emitSummary()
	assert.Contains(t, out.String(), "sales by day")
	assert.Contains(t, out.String(), "No sales recorded")
}
