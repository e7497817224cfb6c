package repository

import (
	"context"
	"errors"
	"testing"

	"inventory-api/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countRows(t *testing.T, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, testDB.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

func TestStore_WithinTxCommits(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	f := newFixture(t)
	store := NewStore(testDB)

	productID := uuid.New()
	err := store.WithinTx(ctx, func(repos Repositories) error {
		product := &domain.Product{ID: productID, CompanyID: f.company.ID, SKU: "TX-OK", Name: "Committed", Price: decimal.RequireFromString("2.00")}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		return repos.Inventory.Create(ctx, &domain.Inventory{ID: uuid.New(), ProductID: productID, WarehouseID: f.warehouse.ID, Quantity: 7})
	})
	require.NoError(t, err)

	inventory, err := NewInventoryRepository(testDB).FindByProductAndWarehouse(ctx, productID, f.warehouse.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, inventory.Quantity)
}

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	f := newFixture(t)
	store := NewStore(testDB)

	injected := errors.New("injected failure")
	productID := uuid.New()
	err := store.WithinTx(ctx, func(repos Repositories) error {
		product := &domain.Product{ID: productID, CompanyID: f.company.ID, SKU: "TX-FAIL", Name: "Rolled back", Price: decimal.RequireFromString("2.00")}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		return injected
	})
	assert.ErrorIs(t, err, injected)

	assert.Equal(t, 0, countRows(t, `SELECT COUNT(*) FROM products WHERE id = $1`, productID))
	assert.Equal(t, 0, countRows(t, `SELECT COUNT(*) FROM inventory WHERE product_id = $1`, productID))
}

func TestStore_WithinTxRollsBackWhenInventoryInsertFails(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	f := newFixture(t)
	store := NewStore(testDB)

	productID := uuid.New()
	err := store.WithinTx(ctx, func(repos Repositories) error {
		product := &domain.Product{ID: productID, CompanyID: f.company.ID, SKU: "TX-FK", Name: "Orphan", Price: decimal.RequireFromString("2.00")}
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		// Unknown warehouse violates the foreign key
		return repos.Inventory.Create(ctx, &domain.Inventory{ID: uuid.New(), ProductID: productID, WarehouseID: uuid.New(), Quantity: 1})
	})
	require.Error(t, err)

	assert.Equal(t, 0, countRows(t, `SELECT COUNT(*) FROM products WHERE id = $1`, productID))
}

func TestStore_WithinTxRollsBackOnPanic(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	f := newFixture(t)
	store := NewStore(testDB)

	productID := uuid.New()
	assert.Panics(t, func() {
		_ = store.WithinTx(ctx, func(repos Repositories) error {
			product := &domain.Product{ID: productID, CompanyID: f.company.ID, SKU: "TX-PANIC", Name: "Panic", Price: decimal.Zero}
			if err := repos.Products.Create(ctx, product); err != nil {
				return err
			}
			panic("boom")
		})
	})

	assert.Equal(t, 0, countRows(t, `SELECT COUNT(*) FROM products WHERE id = $1`, productID))
}

func TestStore_ReadOnlyRejectsWrites(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	store := NewStore(testDB)

	err := store.ReadOnly(ctx, func(repos Repositories) error {
		return repos.Companies.Create(ctx, &domain.Company{ID: uuid.New(), Name: "Read only"})
	})
	assert.Error(t, err)
}
