// Package sales implements the transaction and inventory rules on top of
// the CSV stores: a sale must name a known product, carry a positive
// quantity, and never push stock below zero.
package sales

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
	"github.com/javoxirone/coffee-sales-management/internal/repository/csvstore"
)

// SaleInput carries the user-provided fields of a new sale. A zero Date
// means "now"; an empty CashType defaults to cash.
type SaleInput struct {
	Product   string
	Quantity  int
	UnitPrice float64
	Date      time.Time
	CashType  string
	Card      string
}

// SaleFilter narrows ListSales results. Zero values match everything.
type SaleFilter struct {
	Product string
	Date    time.Time // matches the calendar day
	Card    string
}

// Service owns the sale and inventory collections.
type Service struct {
	sales     csvstore.SalesStore
	inventory csvstore.InventoryStore
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a sales service over the given stores.
func NewService(salesStore csvstore.SalesStore, inventoryStore csvstore.InventoryStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sales:     salesStore,
		inventory: inventoryStore,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordSale validates the input, decrements the product's stock and
// appends the sale. Neither file is touched when validation fails.
func (s *Service) RecordSale(input SaleInput) (models.SaleRecord, error) {
	record := models.SaleRecord{
		Date:      input.Date,
		Product:   strings.TrimSpace(input.Product),
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		CashType:  strings.TrimSpace(input.CashType),
		Card:      strings.TrimSpace(input.Card),
	}
	if record.Date.IsZero() {
		record.Date = s.now()
	}
	if record.CashType == "" {
		record.CashType = csvstore.DefaultCashType
	}

	if err := validateSale(record); err != nil {
		return models.SaleRecord{}, err
	}

	items, err := s.inventory.Load()
	if err != nil {
		return models.SaleRecord{}, err
	}

	idx := findItem(items, record.Product)
	if idx < 0 {
		return models.SaleRecord{}, fmt.Errorf("product %q: %w", record.Product, models.ErrNotFound)
	}
	if items[idx].Stock < record.Quantity {
		return models.SaleRecord{}, fmt.Errorf("cannot sell %d of %q with stock %d: %w",
			record.Quantity, record.Product, items[idx].Stock, models.ErrInsufficientStock)
	}
	items[idx].Stock -= record.Quantity

	if err := s.sales.Append(record); err != nil {
		return models.SaleRecord{}, err
	}
	if err := s.inventory.Save(items); err != nil {
		return models.SaleRecord{}, fmt.Errorf("sale recorded but stock update failed: %w", err)
	}

	s.logger.Info("sale recorded",
		zap.String("product", record.Product),
		zap.Int("quantity", record.Quantity),
		zap.Float64("revenue", record.Revenue()),
		zap.Int("stock_left", items[idx].Stock))
	return record, nil
}

// GetStock returns the current stock count of a product.
func (s *Service) GetStock(product string) (int, error) {
	items, err := s.inventory.Load()
	if err != nil {
		return 0, err
	}

	idx := findItem(items, strings.TrimSpace(product))
	if idx < 0 {
		return 0, fmt.Errorf("product %q: %w", product, models.ErrNotFound)
	}
	return items[idx].Stock, nil
}

// AdjustStock applies delta to a product's stock and returns the new count.
// A positive delta for an unknown product creates the inventory item; a
// negative result is rejected with stock unchanged.
func (s *Service) AdjustStock(product string, delta int) (int, error) {
	product = strings.TrimSpace(product)
	if product == "" {
		return 0, fmt.Errorf("missing product name: %w", models.ErrValidation)
	}

	items, err := s.inventory.Load()
	if err != nil {
		return 0, err
	}

	idx := findItem(items, product)
	if idx < 0 {
		if delta < 0 {
			return 0, fmt.Errorf("product %q: %w", product, models.ErrNotFound)
		}
		items = append(items, models.InventoryItem{Product: product})
		idx = len(items) - 1
	}

	next := items[idx].Stock + delta
	if next < 0 {
		return 0, fmt.Errorf("adjusting %q by %d would leave stock at %d: %w",
			product, delta, next, models.ErrInsufficientStock)
	}
	items[idx].Stock = next

	if err := s.inventory.Save(items); err != nil {
		return 0, err
	}

	s.logger.Info("stock adjusted", zap.String("product", product), zap.Int("delta", delta), zap.Int("stock", next))
	return next, nil
}

// Inventory returns all stock levels ordered by product name.
func (s *Service) Inventory() ([]models.InventoryItem, error) {
	items, err := s.inventory.Load()
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Product < items[j].Product })
	return items, nil
}

// ListSales returns matching sales, newest first.
func (s *Service) ListSales(filter SaleFilter) ([]models.SaleRecord, error) {
	records, err := s.sales.Load()
	if err != nil {
		return nil, err
	}

	matched := make([]models.SaleRecord, 0, len(records))
	for _, record := range records {
		if filter.Product != "" && !strings.EqualFold(record.Product, filter.Product) {
			continue
		}
		if !filter.Date.IsZero() && !sameDay(record.Date, filter.Date) {
			continue
		}
		if filter.Card != "" && record.Card != filter.Card {
			continue
		}
		matched = append(matched, record)
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	return matched, nil
}

// Import bulk-appends historical sale records. The whole batch is rejected
// on the first invalid record; stock levels are not touched, this is a
// backfill of past transactions.
func (s *Service) Import(records []models.SaleRecord) (int, error) {
	for i, record := range records {
		if err := validateSale(record); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	existing, err := s.sales.Load()
	if err != nil {
		return 0, err
	}

	if err := s.sales.Save(append(existing, records...)); err != nil {
		return 0, err
	}

	s.logger.Info("sales imported", zap.Int("records", len(records)))
	return len(records), nil
}

func validateSale(record models.SaleRecord) error {
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

func findItem(items []models.InventoryItem, product string) int {
	for i, item := range items {
		if strings.EqualFold(item.Product, product) {
			return i
		}
	}
	return -1
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
