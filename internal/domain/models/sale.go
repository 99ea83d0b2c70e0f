package models

import "time"

// SaleRecord captures one coffee sale transaction. Records are immutable
// once appended to the store.
type SaleRecord struct {
	Date      time.Time
	Product   string
	Quantity  int
	UnitPrice float64
	CashType  string // "cash" or "card"
	Card      string // anonymized card identifier, empty for cash sales
}

// Revenue returns the total amount of the sale.
func (r SaleRecord) Revenue() float64 {
	return float64(r.Quantity) * r.UnitPrice
}
