package models

// InventoryItem tracks the stock level of a single product. The product
// name is the unique key; stock never goes below zero.
type InventoryItem struct {
	Product string
	Stock   int
}
