package domain

import "github.com/google/uuid"

// LowStockRow is one (product, warehouse) stock row together with the
// quantity sold from it inside the alert window.
type LowStockRow struct {
	ProductID        uuid.UUID
	ProductName      string
	SKU              string
	Threshold        int
	WarehouseID      uuid.UUID
	WarehouseName    string
	Quantity         int
	TotalRecentSales int64
}

// SupplierInfo is the supplier summary attached to an alert
type SupplierInfo struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email"`
}

// LowStockAlert is a single low-stock alert
type LowStockAlert struct {
	ProductID         uuid.UUID     `json:"product_id"`
	ProductName       string        `json:"product_name"`
	SKU               string        `json:"sku"`
	WarehouseID       uuid.UUID     `json:"warehouse_id"`
	WarehouseName     string        `json:"warehouse_name"`
	CurrentStock      int           `json:"current_stock"`
	Threshold         int           `json:"threshold"`
	DaysUntilStockout *int64        `json:"days_until_stockout"`
	Supplier          *SupplierInfo `json:"supplier"`
}

// LowStockReport wraps the alerts of one company
type LowStockReport struct {
	Alerts      []LowStockAlert `json:"alerts"`
	TotalAlerts int             `json:"total_alerts"`
}
