package csvstore

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/javoxirone/coffee-sales-management/internal/config"
)

// headerMapReader rewrites the header row of a CSV stream so that configured
// column names land on the canonical ones the row codec expects. Canonical
// names are always accepted, so files written with defaults keep loading
// after the aliases change.
type headerMapReader struct {
	r      *csv.Reader
	rename map[string]string // lowercased file header -> canonical name
	mapped bool
}

func newHeaderMapReader(r *csv.Reader, rename map[string]string) *headerMapReader {
	r.TrimLeadingSpace = true
	return &headerMapReader{r: r, rename: rename}
}

func (h *headerMapReader) Read() ([]string, error) {
	row, err := h.r.Read()
	if err != nil {
		return row, err
	}

	if !h.mapped {
		h.mapped = true
		mapped := make([]string, len(row))
		for i, name := range row {
			key := strings.ToLower(strings.TrimSpace(name))
			if canonical, ok := h.rename[key]; ok {
				key = canonical
			}
			mapped[i] = key
		}
		return mapped, nil
	}

	return row, nil
}

func (h *headerMapReader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := h.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// headerMapWriter is the write-side counterpart: the first row (the header)
// is rewritten from canonical names to the configured ones.
type headerMapWriter struct {
	w       *csv.Writer
	rename  map[string]string // canonical name -> configured file header
	started bool
}

func newHeaderMapWriter(w *csv.Writer, rename map[string]string) *headerMapWriter {
	return &headerMapWriter{w: w, rename: rename}
}

func (h *headerMapWriter) Write(row []string) error {
	if !h.started {
		h.started = true
		mapped := make([]string, len(row))
		for i, name := range row {
			if configured, ok := h.rename[name]; ok && configured != "" {
				name = configured
			}
			mapped[i] = name
		}
		return h.w.Write(mapped)
	}
	return h.w.Write(row)
}

func (h *headerMapWriter) Flush() {
	h.w.Flush()
}

func (h *headerMapWriter) Error() error {
	return h.w.Error()
}

func loadRenames(cols config.ColumnNames) map[string]string {
	m := make(map[string]string, 6)
	add := func(configured, canonical string) {
		if configured != "" {
			m[strings.ToLower(configured)] = canonical
		}
	}
	add(cols.Date, "date")
	add(cols.Product, "product")
	add(cols.Quantity, "quantity")
	add(cols.UnitPrice, "unit_price")
	add(cols.CashType, "cash_type")
	add(cols.Card, "card")
	return m
}

func saveRenames(cols config.ColumnNames) map[string]string {
	return map[string]string{
		"date":       cols.Date,
		"product":    cols.Product,
		"quantity":   cols.Quantity,
		"unit_price": cols.UnitPrice,
		"cash_type":  cols.CashType,
		"card":       cols.Card,
	}
}
