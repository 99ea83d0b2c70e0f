// Package csvstore persists sale and inventory records as flat CSV files.
// Files are loaded wholesale into memory and rewritten wholesale on save;
// the tool assumes a single running instance owns the files.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/javoxirone/coffee-sales-management/internal/config"
	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
)

// DefaultCashType is assumed when a sale row carries no payment type.
const DefaultCashType = "cash"

// SalesStore defines the persistence operations for sale records.
type SalesStore interface {
	// Load returns all records in file order. A missing file yields an
	// empty set so a fresh data directory works without setup.
	Load() ([]models.SaleRecord, error)

	// Append persists a single new record as one CSV row.
	Append(record models.SaleRecord) error

	// Save rewrites the whole file from the given record set.
	Save(records []models.SaleRecord) error
}

// saleRow is the on-disk shape of a record. The date stays a string here so
// the layout remains configurable; conversion happens in the store.
type saleRow struct {
	Date      string  `csv:"date"`
	Product   string  `csv:"product"`
	Quantity  int     `csv:"quantity"`
	UnitPrice float64 `csv:"unit_price"`
	CashType  string  `csv:"cash_type"`
	Card      string  `csv:"card"`
}

type fileSalesStore struct {
	path   string
	csvCfg config.CSVConfig
	logger *zap.Logger
}

// NewSalesStore builds a sales store backed by the CSV file at path.
func NewSalesStore(path string, csvCfg config.CSVConfig, logger *zap.Logger) SalesStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fileSalesStore{path: path, csvCfg: csvCfg, logger: logger}
}

// Load reads and validates every row of the sales file.
func (s *fileSalesStore) Load() ([]models.SaleRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("sales file missing, starting empty", zap.String("path", s.path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open sales file %s: %w", s.path, err)
	}
	defer f.Close()

	reader := newHeaderMapReader(csv.NewReader(f), loadRenames(s.csvCfg.Columns))

	var rows []*saleRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode sales file %s: %w", s.path, err)
	}

	records := make([]models.SaleRecord, 0, len(rows))
	for i, row := range rows {
		record, err := s.toRecord(*row)
		if err != nil {
			// Row 1 is the header.
			return nil, fmt.Errorf("%s row %d: %w", s.path, i+2, err)
		}
		records = append(records, record)
	}

	s.logger.Debug("sales loaded", zap.String("path", s.path), zap.Int("records", len(records)))
	return records, nil
}

// Append writes record as one new CSV row, creating the file with a header
// row when it does not exist yet.
func (s *fileSalesStore) Append(record models.SaleRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	needHeader := true
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		needHeader = false
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open sales file %s: %w", s.path, err)
	}
	defer f.Close()

	rows := []*saleRow{s.fromRecord(record)}
	if needHeader {
		writer := newHeaderMapWriter(csv.NewWriter(f), saveRenames(s.csvCfg.Columns))
		if err := gocsv.MarshalCSV(rows, writer); err != nil {
			return fmt.Errorf("append sale to %s: %w", s.path, err)
		}
	} else if err := gocsv.MarshalWithoutHeaders(rows, f); err != nil {
		return fmt.Errorf("append sale to %s: %w", s.path, err)
	}

	s.logger.Debug("sale appended",
		zap.String("product", record.Product),
		zap.Int("quantity", record.Quantity))
	return nil
}

// Save rewrites the sales file atomically via a temp file rename.
func (s *fileSalesStore) Save(records []models.SaleRecord) error {
	for _, record := range records {
		if err := validateRecord(record); err != nil {
			return err
		}
	}

	rows := make([]*saleRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, s.fromRecord(record))
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".sales-*.csv")
	if err != nil {
		return fmt.Errorf("create temp sales file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := newHeaderMapWriter(csv.NewWriter(tmp), saveRenames(s.csvCfg.Columns))
	if err := gocsv.MarshalCSV(rows, writer); err != nil {
		tmp.Close()
		return fmt.Errorf("encode sales file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp sales file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace sales file %s: %w", s.path, err)
	}

	s.logger.Debug("sales saved", zap.String("path", s.path), zap.Int("records", len(records)))
	return nil
}

func (s *fileSalesStore) toRecord(row saleRow) (models.SaleRecord, error) {
	date, err := time.Parse(s.csvCfg.DateLayout, strings.TrimSpace(row.Date))
	if err != nil {
		// Accept loosely formatted dates from hand-edited files.
		date, err = dateparse.ParseAny(strings.TrimSpace(row.Date))
		if err != nil {
			return models.SaleRecord{}, fmt.Errorf("unparseable date %q: %w", row.Date, models.ErrValidation)
		}
	}

	record := models.SaleRecord{
		Date:      date,
		Product:   strings.TrimSpace(row.Product),
		Quantity:  row.Quantity,
		UnitPrice: row.UnitPrice,
		CashType:  strings.TrimSpace(row.CashType),
		Card:      strings.TrimSpace(row.Card),
	}
	if record.CashType == "" {
		record.CashType = DefaultCashType
	}

	if err := validateRecord(record); err != nil {
		return models.SaleRecord{}, err
	}
	return record, nil
}

func (s *fileSalesStore) fromRecord(record models.SaleRecord) *saleRow {
	cashType := record.CashType
	if cashType == "" {
		cashType = DefaultCashType
	}
	return &saleRow{
		Date:      record.Date.Format(s.csvCfg.DateLayout),
		Product:   record.Product,
		Quantity:  record.Quantity,
		UnitPrice: record.UnitPrice,
		CashType:  cashType,
		Card:      record.Card,
	}
}

func validateRecord(record models.SaleRecord) error {
	if record.Product == "" {
		return fmt.Errorf("missing product name: %w", models.ErrValidation)
	}
	if record.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d: %w", record.Quantity, models.ErrValidation)
	}
	if record.UnitPrice < 0 {
		return fmt.Errorf("unit price must not be negative, got %v: %w", record.UnitPrice, models.ErrValidation)
	}
	if record.Date.IsZero() {
		return fmt.Errorf("missing sale date: %w", models.ErrValidation)
	}
	return nil
}
