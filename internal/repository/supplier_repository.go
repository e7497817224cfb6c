package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inventory-api/internal/domain"

	"github.com/google/uuid"
)

// SupplierRepository defines the interface for supplier data access
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	LinkProduct(ctx context.Context, link *domain.ProductSupplier) error
	ListLinksForProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.SupplierLink, error)
}

type supplierRepository struct {
	db DBTX
}

// NewSupplierRepository creates a new instance of SupplierRepository
func NewSupplierRepository(db DBTX) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	query := `INSERT INTO suppliers (id, name, contact_email) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(
		ctx,
		query,
		supplier.ID,
		supplier.Name,
		supplier.ContactEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	return nil
}

func (r *supplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	query := `SELECT id, name, contact_email FROM suppliers WHERE id = $1`

	supplier := &domain.Supplier{}
	var email sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&supplier.ID, &supplier.Name, &email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier by ID: %w", err)
	}
	supplier.ContactEmail = nullStringPtr(email)

	return supplier, nil
}

// LinkProduct associates a supplier with a product, updating the primary
// flag when the pair is already linked.
func (r *supplierRepository) LinkProduct(ctx context.Context, link *domain.ProductSupplier) error {
	query := `
		INSERT INTO product_suppliers (product_id, supplier_id, is_primary)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, supplier_id) DO UPDATE SET is_primary = EXCLUDED.is_primary
	`

	if _, err := r.db.ExecContext(ctx, query, link.ProductID, link.SupplierID, link.IsPrimary); err != nil {
		return fmt.Errorf("failed to link supplier to product: %w", err)
	}

	return nil
}

// ListLinksForProducts returns the suppliers linked to any of productIDs,
// ordered by product, then supplier name, then supplier ID.
func (r *supplierRepository) ListLinksForProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.SupplierLink, error) {
	if len(productIDs) == 0 {
		return []domain.SupplierLink{}, nil
	}

	query := `
		SELECT ps.product_id, s.id, s.name, s.contact_email, ps.is_primary
		FROM product_suppliers ps
		JOIN suppliers s ON s.id = ps.supplier_id
		WHERE ps.product_id = ANY($1::uuid[])
		ORDER BY ps.product_id, s.name, s.id
	`

	rows, err := r.db.QueryContext(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list product suppliers: %w", err)
	}
	defer rows.Close()

	links := []domain.SupplierLink{}
	for rows.Next() {
		var link domain.SupplierLink
		var email sql.NullString
		if err := rows.Scan(
			&link.ProductID,
			&link.Supplier.ID,
			&link.Supplier.Name,
			&email,
			&link.IsPrimary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product supplier: %w", err)
		}
		link.Supplier.ContactEmail = nullStringPtr(email)
		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product suppliers: %w", err)
	}

	return links, nil
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
