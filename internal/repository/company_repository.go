package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inventory-api/internal/domain"

	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
}

type companyRepository struct {
	db DBTX
}

// NewCompanyRepository creates a new instance of CompanyRepository
func NewCompanyRepository(db DBTX) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	query := `INSERT INTO companies (id, name) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, company.ID, company.Name); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

func (r *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	query := `SELECT id, name FROM companies WHERE id = $1`

	company := &domain.Company{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&company.ID, &company.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company by ID: %w", err)
	}

	return company, nil
}
