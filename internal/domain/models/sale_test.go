package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleRecordRevenue(t *testing.T) {
	record := SaleRecord{Quantity: 3, UnitPrice: 3.50}
	assert.InDelta(t, 10.50, record.Revenue(), 1e-9)

	assert.Zero(t, SaleRecord{}.Revenue())
}
