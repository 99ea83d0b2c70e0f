package csvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
)

// InventoryStore defines the persistence operations for stock levels.
type InventoryStore interface {
	// Load returns every inventory item. A missing file yields an empty set.
	Load() ([]models.InventoryItem, error)

	// Save rewrites the whole inventory file.
	Save(items []models.InventoryItem) error
}

type inventoryRow struct {
	Product string `csv:"product"`
	Stock   int    `csv:"stock"`
}

type fileInventoryStore struct {
	path   string
	logger *zap.Logger
}

// NewInventoryStore builds an inventory store backed by the CSV file at path.
func NewInventoryStore(path string, logger *zap.Logger) InventoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fileInventoryStore{path: path, logger: logger}
}

// Load reads and validates the inventory file. Product names must be unique
// and stock counts non-negative.
func (s *fileInventoryStore) Load() ([]models.InventoryItem, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("inventory file missing, starting empty", zap.String("path", s.path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open inventory file %s: %w", s.path, err)
	}
	defer f.Close()

	var rows []*inventoryRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode inventory file %s: %w", s.path, err)
	}

	seen := make(map[string]bool, len(rows))
	items := make([]models.InventoryItem, 0, len(rows))
	for i, row := range rows {
		product := strings.TrimSpace(row.Product)
		if product == "" {
			return nil, fmt.Errorf("%s row %d: missing product name: %w", s.path, i+2, models.ErrValidation)
		}
		if seen[product] {
			return nil, fmt.Errorf("%s row %d: duplicate product %q: %w", s.path, i+2, product, models.ErrValidation)
		}
		if row.Stock < 0 {
			return nil, fmt.Errorf("%s row %d: negative stock %d for %q: %w", s.path, i+2, row.Stock, product, models.ErrValidation)
		}
		seen[product] = true
		items = append(items, models.InventoryItem{Product: product, Stock: row.Stock})
	}

	return items, nil
}

// Save rewrites the inventory file atomically, ordered by product name so
// repeated saves produce identical files.
func (s *fileInventoryStore) Save(items []models.InventoryItem) error {
	sorted := make([]models.InventoryItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Product < sorted[j].Product })

	rows := make([]*inventoryRow, 0, len(sorted))
	for _, item := range sorted {
		if item.Stock < 0 {
			return fmt.Errorf("negative stock %d for %q: %w", item.Stock, item.Product, models.ErrValidation)
		}
		rows = append(rows, &inventoryRow{Product: item.Product, Stock: item.Stock})
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".inventory-*.csv")
	if err != nil {
		return fmt.Errorf("create temp inventory file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gocsv.Marshal(rows, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("encode inventory file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp inventory file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace inventory file %s: %w", s.path, err)
	}

	s.logger.Debug("inventory saved", zap.String("path", s.path), zap.Int("items", len(items)))
	return nil
}
