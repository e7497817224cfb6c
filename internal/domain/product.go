package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a company's stock-keeping unit
type Product struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CompanyID uuid.UUID       `json:"company_id" db:"company_id"`
	SKU       string          `json:"sku" db:"sku"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	// ReorderThreshold is nil when the column is NULL; treat as 0.
	ReorderThreshold *int `json:"reorder_threshold" db:"reorder_threshold"`
}

// Threshold returns the reorder threshold with NULL treated as zero
func (p *Product) Threshold() int {
	if p.ReorderThreshold == nil {
		return 0
	}
	return *p.ReorderThreshold
}

// Inventory is the stock row of one product in one warehouse
type Inventory struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id" db:"warehouse_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
}

// Sale is an append-only sales ledger entry
type Sale struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id" db:"warehouse_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	SoldAt      time.Time `json:"sold_at" db:"sold_at"`
}
