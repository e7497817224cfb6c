package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inventory-api/internal/domain"

	"github.com/google/uuid"
)

// WarehouseRepository defines the interface for warehouse data access
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *domain.Warehouse) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Warehouse, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type warehouseRepository struct {
	db DBTX
}

// NewWarehouseRepository creates a new instance of WarehouseRepository
func NewWarehouseRepository(db DBTX) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) Create(ctx context.Context, warehouse *domain.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, company_id, name, location)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		warehouse.ID,
		warehouse.CompanyID,
		warehouse.Name,
		sql.NullString{String: warehouse.Location, Valid: warehouse.Location != ""},
	)
	if err != nil {
		return fmt.Errorf("failed to create warehouse: %w", err)
	}

	return nil
}

func (r *warehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Warehouse, error) {
	query := `
		SELECT id, company_id, name, location
		FROM warehouses
		WHERE id = $1
	`

	warehouse := &domain.Warehouse{}
	var location sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&warehouse.ID,
		&warehouse.CompanyID,
		&warehouse.Name,
		&location,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("failed to find warehouse by ID: %w", err)
	}
	warehouse.Location = location.String

	return warehouse, nil
}

// Exists reports whether a warehouse with id is present
func (r *warehouseRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM warehouses WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check warehouse: %w", err)
	}
	return exists, nil
}
