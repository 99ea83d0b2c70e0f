package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/javoxirone/coffee-sales-management/internal/config"
	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{
		Storage: config.StorageConfig{
			DataDir:       t.TempDir(),
			SalesFile:     "sales.csv",
			InventoryFile: "inventory.csv",
		},
		CSV: config.CSVConfig{
			DateLayout: "2006-01-02",
			Columns: config.ColumnNames{
				Date:      "date",
				Product:   "product",
				Quantity:  "quantity",
				UnitPrice: "unit_price",
				CashType:  "cash_type",
				Card:      "card",
			},
		},
		Reporting: config.ReportingConfig{
			CronSchedule:  "0 20 * * *",
			DefaultPeriod: "day",
		},
	}
	require.NoError(t, cfg.Validate())

	out := &bytes.Buffer{}
	return New(cfg, zap.NewNop(), out), out
}

func run(t *testing.T, app *App, args ...string) error {
	t.Helper()
	root := app.Root()
	root.SetArgs(args)
	return root.Execute()
}

func TestInitCreatesDataFiles(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, app, "init"))

	assert.FileExists(t, app.cfg.Storage.SalesPath())
	assert.FileExists(t, app.cfg.Storage.InventoryPath())
	assert.Contains(t, out.String(), "Created")
}

func TestSellFlow(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, app, "inventory", "adjust", "latte", "10"))
	require.NoError(t, run(t, app, "sell", "latte", "2", "3.50", "--date", "2024-01-01"))

	assert.Contains(t, out.String(), "Recorded 2 x latte @ 3.50 (7.00 total) on 2024-01-01.")

	out.Reset()
	require.NoError(t, run(t, app, "inventory"))
	assert.Contains(t, out.String(), "latte")
	assert.Contains(t, out.String(), "8")
}

func TestSellRejectsBadInput(t *testing.T) {
	app, _ := newTestApp(t)

	require.NoError(t, run(t, app, "inventory", "adjust", "latte", "3"))

	err := run(t, app, "sell", "latte", "two", "3.50")
	assert.ErrorIs(t, err, models.ErrValidation)

	err = run(t, app, "sell", "latte", "5", "3.50")
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	err = run(t, app, "sell", "mocha", "1", "4.00")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Stock is untouched by the failed sales.
	stock, err := app.sales.GetStock("latte")
	require.NoError(t, err)
	assert.Equal(t, 3, stock)
}

func TestReportPlain(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, app, "inventory", "adjust", "latte", "10"))
	require.NoError(t, run(t, app, "sell", "latte", "2", "3.50", "--date", "2024-01-01"))
	require.NoError(t, run(t, app, "sell", "latte", "1", "3.50", "--date", "2024-01-02"))

	out.Reset()
	require.NoError(t, run(t, app, "report", "month", "--plain"))
	assert.Contains(t, out.String(), "2024-01: 3 units, 10.50 revenue")

	out.Reset()
	require.NoError(t, run(t, app, "report", "--plain"))
	assert.Contains(t, out.String(), "2024-01-01: 2 units, 7.00 revenue")
	assert.Contains(t, out.String(), "2024-01-02: 1 units, 3.50 revenue")
}

func TestReportEmpty(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, app, "report"))
	assert.Contains(t, out.String(), "No sales recorded")
}

func TestReportRejectsUnknownPeriod(t *testing.T) {
	app, _ := newTestApp(t)

	err := run(t, app, "report", "fortnight")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestStatsAndList(t *testing.T) {
	app, out := newTestApp(t)

	require.NoError(t, run(t, app, "inventory", "adjust", "latte", "10"))
	require.NoError(t, run(t, app, "inventory", "adjust", "espresso", "10"))
	require.NoError(t, run(t, app, "sell", "latte", "2", "3.50", "--date", "2024-01-01"))
	require.NoError(t, run(t, app, "sell", "latte", "1", "3.50", "--date", "2024-01-02"))
	require.NoError(t, run(t, app, "sell", "espresso", "1", "2.25", "--date", "2024-01-02", "--cash-type", "card", "--card", "ANON-1"))

	out.Reset()
	require.NoError(t, run(t, app, "stats"))
	assert.Contains(t, out.String(), "latte")
	assert.Contains(t, out.String(), "10.50")

	out.Reset()
	require.NoError(t, run(t, app, "list", "--product", "latte"))
	assert.Contains(t, out.String(), "2 sale(s).")

	out.Reset()
	require.NoError(t, run(t, app, "list", "--card", "ANON-1"))
	assert.Contains(t, out.String(), "espresso")
	assert.Contains(t, out.String(), "1 sale(s).")
}

func TestImportCommand(t *testing.T) {
	app, out := newTestApp(t)

	source := filepath.Join(t.TempDir(), "backfill.csv")
	content := "date,product,quantity,unit_price,cash_type,card\n" +
		"2024-01-01,latte,2,3.50,cash,\n" +
		"2024-01-02,espresso,1,2.25,card,ANON-1\n"
	require.NoError(t, os.WriteFile(source, []byte(content), 0o644))

	require.NoError(t, run(t, app, "import", source))
	assert.Contains(t, out.String(), "Imported 2 sale(s)")

	out.Reset()
	require.NoError(t, run(t, app, "list"))
	assert.Contains(t, out.String(), "2 sale(s).")
}
