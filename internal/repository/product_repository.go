package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inventory-api/internal/domain"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	SetReorderThreshold(ctx context.Context, id uuid.UUID, threshold int) error
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product. A second product with the same SKU in the
// same company fails with ErrDuplicateSKU.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, company_id, sku, name, price, reorder_threshold)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.CompanyID,
		product.SKU,
		product.Name,
		product.Price,
		product.ReorderThreshold,
	)
	if err != nil {
		if isUniqueViolation(err, productsSKUCompanyConstraint) {
			return ErrDuplicateSKU
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT id, company_id, sku, name, price, reorder_threshold
		FROM products
		WHERE id = $1
	`

	product := &domain.Product{}
	var threshold sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.CompanyID,
		&product.SKU,
		&product.Name,
		&product.Price,
		&threshold,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	if threshold.Valid {
		v := int(threshold.Int64)
		product.ReorderThreshold = &v
	}

	return product, nil
}

func (r *productRepository) SetReorderThreshold(ctx context.Context, id uuid.UUID, threshold int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE products SET reorder_threshold = $2 WHERE id = $1`, id, threshold)
	if err != nil {
		return fmt.Errorf("failed to update reorder threshold: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
