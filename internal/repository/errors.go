package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"

	productsSKUCompanyConstraint = "products_sku_company_key"
)

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInventoryNotFound = errors.New("inventory not found")
	ErrDuplicateSKU      = errors.New("product with this sku already exists for company")
)

// isUniqueViolation reports whether err is a unique violation, optionally
// restricted to a named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
