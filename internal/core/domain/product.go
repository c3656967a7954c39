package domain

import "github.com/shopspring/decimal"

// Product is a sellable item tracked with a simple stock count.
type Product struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	AuditFields
}
