package csvstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javoxirone/coffee-sales-management/internal/config"
	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
)

func defaultCSVConfig() config.CSVConfig {
	return config.CSVConfig{
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
}

func saleOn(day string, product string, quantity int, unitPrice float64) models.SaleRecord {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return models.SaleRecord{
		Date:      date,
		Product:   product,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CashType:  "cash",
	}
}

func TestSalesStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	store := NewSalesStore(path, defaultCSVConfig(), nil)

	records := []models.SaleRecord{
		saleOn("2024-01-01", "latte", 2, 3.50),
		saleOn("2024-01-02", "espresso", 1, 2.25),
	}

	require.NoError(t, store.Save(records))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestSalesStoreAppendThenReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	store := NewSalesStore(path, defaultCSVConfig(), nil)

	first := saleOn("2024-01-01", "latte", 2, 3.50)
	second := saleOn("2024-01-02", "latte", 1, 3.50)

	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []models.SaleRecord{first, second}, loaded)
}

func TestSalesStoreLoadMissingFile(t *testing.T) {
	store := NewSalesStore(filepath.Join(t.TempDir(), "nope.csv"), defaultCSVConfig(), nil)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSalesStoreColumnAliases(t *testing.T) {
	// A file exported with the original schema: datetime/coffee_name/money.
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "datetime,coffee_name,quantity,money,cash_type,card\n" +
		"2024-03-05,latte,2,3.50,card,ANON-1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := defaultCSVConfig()
	cfg.Columns.Date = "datetime"
	cfg.Columns.Product = "coffee_name"
	cfg.Columns.UnitPrice = "money"

	store := NewSalesStore(path, cfg, nil)
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "latte", loaded[0].Product)
	assert.Equal(t, 2, loaded[0].Quantity)
	assert.Equal(t, 3.50, loaded[0].UnitPrice)
	assert.Equal(t, "card", loaded[0].CashType)
	assert.Equal(t, "ANON-1", loaded[0].Card)

	// Save writes the configured header names back.
	require.NoError(t, store.Save(loaded))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "datetime,coffee_name,quantity,money,cash_type,card")
}

func TestSalesStoreLoadInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{name: "unparseable date", row: "not-a-date,latte,1,3.50,cash,"},
		{name: "negative quantity", row: "2024-01-01,latte,-2,3.50,cash,"},
		{name: "zero quantity", row: "2024-01-01,latte,0,3.50,cash,"},
		{name: "negative price", row: "2024-01-01,latte,1,-3.50,cash,"},
		{name: "missing product", row: "2024-01-01,,1,3.50,cash,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sales.csv")
			content := "date,product,quantity,unit_price,cash_type,card\n" + tt.row + "\n"
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			store := NewSalesStore(path, defaultCSVConfig(), nil)
			_, err := store.Load()
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestSalesStoreLoadLooselyFormattedDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "date,product,quantity,unit_price,cash_type,card\n" +
		"2024-03-05T09:30:00Z,latte,1,3.50,cash,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewSalesStore(path, defaultCSVConfig(), nil)
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 2024, loaded[0].Date.Year())
	assert.Equal(t, time.March, loaded[0].Date.Month())
	assert.Equal(t, 5, loaded[0].Date.Day())
}

func TestSalesStoreDefaultsCashType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "date,product,quantity,unit_price\n2024-01-01,latte,1,3.50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewSalesStore(path, defaultCSVConfig(), nil)
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, DefaultCashType, loaded[0].CashType)
}

func TestSalesStoreAppendRejectsInvalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	store := NewSalesStore(path, defaultCSVConfig(), nil)

	record := saleOn("2024-01-01", "latte", 0, 3.50)
	assert.ErrorIs(t, store.Append(record), models.ErrValidation)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "invalid append must not create the file")
}
