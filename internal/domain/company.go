package domain

import "github.com/google/uuid"

// Company is the root tenant owning warehouses and products
type Company struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// Warehouse belongs to exactly one company
type Warehouse struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CompanyID uuid.UUID `json:"company_id" db:"company_id"`
	Name      string    `json:"name" db:"name"`
	Location  string    `json:"location" db:"location"`
}

// Supplier is shared across companies and linked to products
type Supplier struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ContactEmail *string   `json:"contact_email" db:"contact_email"`
}

// ProductSupplier links a product to one of its suppliers
type ProductSupplier struct {
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	SupplierID uuid.UUID `json:"supplier_id" db:"supplier_id"`
	IsPrimary  bool      `json:"is_primary" db:"is_primary"`
}

// SupplierLink is a supplier as seen from one of its linked products
type SupplierLink struct {
	ProductID uuid.UUID
	Supplier  Supplier
	IsPrimary bool
}
