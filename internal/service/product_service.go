package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	msgMissingFields    = "missing required fields"
	msgInvalidNumeric   = "invalid numeric value"
	msgInvalidCompany   = "invalid company id"
	msgInvalidWarehouse = "invalid warehouse"
	msgDuplicateSKU     = "duplicate sku for company"
)

const (
	maxNumericLength  = 64
	maxFractionDigits = 18
)

var errNumericOutOfRange = errors.New("numeric value out of range")

// priceLimit is the first value that no longer fits DECIMAL(10,2)
var priceLimit = decimal.New(1, 8)

// CreateProductInput carries a product creation request. Numeric fields
// hold their textual form so JSON numbers and numeric strings are
// handled alike.
type CreateProductInput struct {
	Name             string `validate:"required"`
	SKU              string `validate:"required"`
	Price            string `validate:"required"`
	WarehouseID      string `validate:"required"`
	InitialQuantity  string `validate:"required"`
	CompanyID        string `validate:"required"`
	ReorderThreshold *string
}

// ProductService defines the interface for product business logic
type ProductService interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (uuid.UUID, error)
}

type productService struct {
	store    repository.Store
	validate *validator.Validate
}

// NewProductService creates a new instance of ProductService
func NewProductService(store repository.Store) ProductService {
	return &productService{
		store:    store,
		validate: validator.New(),
	}
}

// CreateProduct validates input and atomically records the product together
// with its initial stock in the given warehouse.
func (s *productService) CreateProduct(ctx context.Context, input CreateProductInput) (uuid.UUID, error) {
	trimInput(&input)

	if err := s.validate.Struct(input); err != nil {
		return uuid.Nil, domain.NewValidationError(msgMissingFields)
	}

	price, err := parsePrice(input.Price)
	if err != nil {
		return uuid.Nil, err
	}

	quantity, err := parseCount(input.InitialQuantity)
	if err != nil {
		return uuid.Nil, err
	}

	threshold := 0
	if input.ReorderThreshold != nil {
		if threshold, err = parseCount(*input.ReorderThreshold); err != nil {
			return uuid.Nil, err
		}
	}

	companyID, err := uuid.Parse(input.CompanyID)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(msgInvalidCompany)
	}

	warehouseID, err := uuid.Parse(input.WarehouseID)
	if err != nil {
		return uuid.Nil, domain.NewNotFoundError(msgInvalidWarehouse)
	}

	product := &domain.Product{
		ID:               uuid.New(),
		CompanyID:        companyID,
		SKU:              input.SKU,
		Name:             input.Name,
		Price:            price,
		ReorderThreshold: &threshold,
	}

	err = s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		exists, err := repos.Warehouses.Exists(ctx, warehouseID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.NewNotFoundError(msgInvalidWarehouse)
		}

		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}

		return repos.Inventory.Create(ctx, &domain.Inventory{
			ID:          uuid.New(),
			ProductID:   product.ID,
			WarehouseID: warehouseID,
			Quantity:    quantity,
		})
	})
	if err != nil {
		return uuid.Nil, classifyCreateError(err)
	}

	return product.ID, nil
}

func classifyCreateError(err error) error {
	var de *domain.Error
	switch {
	case errors.As(err, &de):
		return de
	case errors.Is(err, repository.ErrDuplicateSKU):
		return domain.NewConflictError(msgDuplicateSKU, err)
	default:
		return domain.NewInternalError(err)
	}
}

func trimInput(input *CreateProductInput) {
	input.Name = strings.TrimSpace(input.Name)
	input.SKU = strings.TrimSpace(input.SKU)
	input.Price = strings.TrimSpace(input.Price)
	input.WarehouseID = strings.TrimSpace(input.WarehouseID)
	input.InitialQuantity = strings.TrimSpace(input.InitialQuantity)
	input.CompanyID = strings.TrimSpace(input.CompanyID)
}

// parsePrice accepts a non-negative decimal that fits DECIMAL(10,2) once
// rounded to cents.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := parseBounded(raw, 8)
	if err != nil || price.IsNegative() {
		return decimal.Zero, domain.NewValidationError(msgInvalidNumeric)
	}

	price = price.Round(2)
	if price.GreaterThanOrEqual(priceLimit) {
		return decimal.Zero, domain.NewValidationError(msgInvalidNumeric)
	}

	return price, nil
}

// parseCount accepts a non-negative integral value fitting an INTEGER column.
// "5" and "5.0" are both 5.
func parseCount(raw string) (int, error) {
	n, err := parseBounded(raw, 10)
	if err != nil || !n.IsInteger() || n.IsNegative() || n.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, domain.NewValidationError(msgInvalidNumeric)
	}
	return int(n.IntPart()), nil
}

// parseBounded parses raw and rejects values with more than maxIntegerDigits
// integer digits or more than maxFractionDigits fractional digits, before
// any arithmetic rescales the coefficient.
func parseBounded(raw string, maxIntegerDigits int) (decimal.Decimal, error) {
	if len(raw) > maxNumericLength {
		return decimal.Zero, errNumericOutOfRange
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}

	exp := int64(d.Exponent())
	if exp < -maxFractionDigits || int64(d.NumDigits())+exp > int64(maxIntegerDigits) {
		return decimal.Zero, errNumericOutOfRange
	}

	return d, nil
}
