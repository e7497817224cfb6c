package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx, so repositories
// run unchanged inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories groups every repository bound to the same DBTX
type Repositories struct {
	Companies  CompanyRepository
	Warehouses WarehouseRepository
	Suppliers  SupplierRepository
	Products   ProductRepository
	Inventory  InventoryRepository
	Sales      SaleRepository
}

// NewRepositories binds all repositories to q
func NewRepositories(q DBTX) Repositories {
	return Repositories{
		Companies:  NewCompanyRepository(q),
		Warehouses: NewWarehouseRepository(q),
		Suppliers:  NewSupplierRepository(q),
		Products:   NewProductRepository(q),
		Inventory:  NewInventoryRepository(q),
		Sales:      NewSaleRepository(q),
	}
}

// Store is the unit of work over the relational store
type Store interface {
	// WithinTx runs fn in a read/write transaction. The transaction commits
	// when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
	// ReadOnly runs fn against a read-only snapshot, so a sequence of reads
	// never observes a half-applied write.
	ReadOnly(ctx context.Context, fn func(repos Repositories) error) error
}

type store struct {
	db *sql.DB
}

// NewStore creates a Store on top of the shared pool
func NewStore(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) WithinTx(ctx context.Context, fn func(repos Repositories) error) error {
	return s.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

func (s *store) ReadOnly(ctx context.Context, fn func(repos Repositories) error) error {
	return s.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (s *store) run(ctx context.Context, opts *sql.TxOptions, fn func(repos Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// No-op after a successful commit; also covers panics in fn.
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
