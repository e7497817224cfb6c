package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inventory-api/internal/domain"

	"github.com/google/uuid"
)

// InventoryRepository defines the interface for stock data access
type InventoryRepository interface {
	Create(ctx context.Context, inventory *domain.Inventory) error
	FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*domain.Inventory, error)
	ListLowStock(ctx context.Context, companyID uuid.UUID, since time.Time) ([]domain.LowStockRow, error)
}

type inventoryRepository struct {
	db DBTX
}

// NewInventoryRepository creates a new instance of InventoryRepository
func NewInventoryRepository(db DBTX) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, inventory *domain.Inventory) error {
	query := `
		INSERT INTO inventory (id, product_id, warehouse_id, quantity)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		inventory.ID,
		inventory.ProductID,
		inventory.WarehouseID,
		inventory.Quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory: %w", err)
	}

	return nil
}

func (r *inventoryRepository) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*domain.Inventory, error) {
	query := `
		SELECT id, product_id, warehouse_id, quantity
		FROM inventory
		WHERE product_id = $1 AND warehouse_id = $2
	`

	inventory := &domain.Inventory{}
	err := r.db.QueryRowContext(ctx, query, productID, warehouseID).Scan(
		&inventory.ID,
		&inventory.ProductID,
		&inventory.WarehouseID,
		&inventory.Quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to find inventory: %w", err)
	}

	return inventory, nil
}

// ListLowStock returns the company's stock rows at or below their reorder
// threshold (NULL counts as 0) that sold at least one unit since the given
// time, with the quantity sold in that window. Rows are ordered by product
// then warehouse.
func (r *inventoryRepository) ListLowStock(ctx context.Context, companyID uuid.UUID, since time.Time) ([]domain.LowStockRow, error) {
	query := `
		SELECT
			p.id,
			p.name,
			p.sku,
			COALESCE(p.reorder_threshold, 0) AS threshold,
			w.id,
			w.name,
			i.quantity,
			COALESCE(SUM(sa.quantity), 0) AS total_recent_sales
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN warehouses w ON w.id = i.warehouse_id
		LEFT JOIN sales sa ON sa.product_id = i.product_id
			AND sa.warehouse_id = i.warehouse_id
			AND sa.sold_at >= $2
		WHERE p.company_id = $1
			AND i.quantity <= COALESCE(p.reorder_threshold, 0)
		GROUP BY i.id, p.id, w.id
		HAVING COALESCE(SUM(sa.quantity), 0) > 0
		ORDER BY p.id, w.id
	`

	rows, err := r.db.QueryContext(ctx, query, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}
	defer rows.Close()

	result := []domain.LowStockRow{}
	for rows.Next() {
		var row domain.LowStockRow
		if err := rows.Scan(
			&row.ProductID,
			&row.ProductName,
			&row.SKU,
			&row.Threshold,
			&row.WarehouseID,
			&row.WarehouseName,
			&row.Quantity,
			&row.TotalRecentSales,
		); err != nil {
			return nil, fmt.Errorf("failed to scan low stock row: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating low stock rows: %w", err)
	}

	return result, nil
}
