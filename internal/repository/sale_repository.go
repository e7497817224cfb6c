package repository

import (
	"context"
	"fmt"
	"time"

	"inventory-api/internal/domain"

	"github.com/google/uuid"
)

// SaleRepository defines the interface for the sales ledger
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	SumQuantitySince(ctx context.Context, productID, warehouseID uuid.UUID, since time.Time) (int64, error)
}

type saleRepository struct {
	db DBTX
}

// NewSaleRepository creates a new instance of SaleRepository
func NewSaleRepository(db DBTX) SaleRepository {
	return &saleRepository{db: db}
}

// Create appends a sale. A zero SoldAt defaults to the database clock.
func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	query := `
		INSERT INTO sales (id, product_id, warehouse_id, quantity, sold_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
		RETURNING sold_at
	`

	var soldAt *time.Time
	if !sale.SoldAt.IsZero() {
		soldAt = &sale.SoldAt
	}

	err := r.db.QueryRowContext(
		ctx,
		query,
		sale.ID,
		sale.ProductID,
		sale.WarehouseID,
		sale.Quantity,
		soldAt,
	).Scan(&sale.SoldAt)
	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}

	return nil
}

// SumQuantitySince totals the units sold from one stock row since the given
// time. No matching sales sum to zero.
func (r *saleRepository) SumQuantitySince(ctx context.Context, productID, warehouseID uuid.UUID, since time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM sales
		WHERE product_id = $1 AND warehouse_id = $2 AND sold_at >= $3
	`

	var total int64
	if err := r.db.QueryRowContext(ctx, query, productID, warehouseID, since).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}

	return total, nil
}
