package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"github.com/google/uuid"
)

// memState is an in-memory copy of the relational store
type memState struct {
	companies  map[uuid.UUID]domain.Company
	warehouses map[uuid.UUID]domain.Warehouse
	suppliers  map[uuid.UUID]domain.Supplier
	products   map[uuid.UUID]domain.Product
	inventory  []domain.Inventory
	links      []domain.ProductSupplier
	sales      []domain.Sale
}

func newMemState() *memState {
	return &memState{
		companies:  make(map[uuid.UUID]domain.Company),
		warehouses: make(map[uuid.UUID]domain.Warehouse),
		suppliers:  make(map[uuid.UUID]domain.Supplier),
		products:   make(map[uuid.UUID]domain.Product),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.inventory = append([]domain.Inventory(nil), s.inventory...)
	c.links = append([]domain.ProductSupplier(nil), s.links...)
	c.sales = append([]domain.Sale(nil), s.sales...)
	return c
}

// fakeStore is a transactional in-memory Store. Each unit of work runs on a
// clone which replaces the committed state only when fn succeeds.
type fakeStore struct {
	mu    sync.Mutex
	state *memState

	// failures injected by operation name, e.g. "inventory.create"
	failures map[string]error
	txCount  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		state:    newMemState(),
		failures: make(map[string]error),
	}
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txCount++
	work := s.state.clone()
	if err := fn(s.repositories(work)); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *fakeStore) ReadOnly(ctx context.Context, fn func(repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.repositories(s.state.clone()))
}

func (s *fakeStore) repositories(state *memState) repository.Repositories {
	tx := &memTx{state: state, failures: s.failures}
	return repository.Repositories{
		Companies:  memCompanies{tx},
		Warehouses: memWarehouses{tx},
		Suppliers:  memSuppliers{tx},
		Products:   memProducts{tx},
		Inventory:  memInventory{tx},
		Sales:      memSales{tx},
	}
}

func (s *fakeStore) fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *fakeStore) snapshot() *memState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// seed applies fn directly to the committed state
func (s *fakeStore) seed(fn func(repos repository.Repositories)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(repository.Repositories{
		Companies:  memCompanies{&memTx{state: s.state}},
		Warehouses: memWarehouses{&memTx{state: s.state}},
		Suppliers:  memSuppliers{&memTx{state: s.state}},
		Products:   memProducts{&memTx{state: s.state}},
		Inventory:  memInventory{&memTx{state: s.state}},
		Sales:      memSales{&memTx{state: s.state}},
	})
}

type memTx struct {
	state    *memState
	failures map[string]error
}

func (tx *memTx) injected(op string) error {
	if tx.failures == nil {
		return nil
	}
	return tx.failures[op]
}

type memCompanies struct{ tx *memTx }

func (r memCompanies) Create(ctx context.Context, company *domain.Company) error {
	r.tx.state.companies[company.ID] = *company
	return nil
}

func (r memCompanies) FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	company, ok := r.tx.state.companies[id]
	if !ok {
		return nil, repository.ErrCompanyNotFound
	}
	return &company, nil
}

type memWarehouses struct{ tx *memTx }

func (r memWarehouses) Create(ctx context.Context, warehouse *domain.Warehouse) error {
	r.tx.state.warehouses[warehouse.ID] = *warehouse
	return nil
}

func (r memWarehouses) FindByID(ctx context.Context, id uuid.UUID) (*domain.Warehouse, error) {
	warehouse, ok := r.tx.state.warehouses[id]
	if !ok {
		return nil, repository.ErrWarehouseNotFound
	}
	return &warehouse, nil
}

func (r memWarehouses) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := r.tx.injected("warehouse.exists"); err != nil {
		return false, err
	}
	_, ok := r.tx.state.warehouses[id]
	return ok, nil
}

type memSuppliers struct{ tx *memTx }

func (r memSuppliers) Create(ctx context.Context, supplier *domain.Supplier) error {
	r.tx.state.suppliers[supplier.ID] = *supplier
	return nil
}

func (r memSuppliers) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	supplier, ok := r.tx.state.suppliers[id]
	if !ok {
		return nil, repository.ErrSupplierNotFound
	}
	return &supplier, nil
}

func (r memSuppliers) LinkProduct(ctx context.Context, link *domain.ProductSupplier) error {
	r.tx.state.links = append(r.tx.state.links, *link)
	return nil
}

// ListLinksForProducts returns links in insertion order
func (r memSuppliers) ListLinksForProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.SupplierLink, error) {
	if err := r.tx.injected("suppliers.links"); err != nil {
		return nil, err
	}

	wanted := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}

	var links []domain.SupplierLink
	for _, link := range r.tx.state.links {
		if !wanted[link.ProductID] {
			continue
		}
		links = append(links, domain.SupplierLink{
			ProductID: link.ProductID,
			Supplier:  r.tx.state.suppliers[link.SupplierID],
			IsPrimary: link.IsPrimary,
		})
	}
	return links, nil
}

type memProducts struct{ tx *memTx }

func (r memProducts) Create(ctx context.Context, product *domain.Product) error {
	if err := r.tx.injected("products.create"); err != nil {
		return err
	}
	for _, existing := range r.tx.state.products {
		if existing.CompanyID == product.CompanyID && existing.SKU == product.SKU {
			return repository.ErrDuplicateSKU
		}
	}
	r.tx.state.products[product.ID] = *product
	return nil
}

func (r memProducts) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, ok := r.tx.state.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &product, nil
}

func (r memProducts) SetReorderThreshold(ctx context.Context, id uuid.UUID, threshold int) error {
	product, ok := r.tx.state.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.ReorderThreshold = &threshold
	r.tx.state.products[id] = product
	return nil
}

type memInventory struct{ tx *memTx }

func (r memInventory) Create(ctx context.Context, inventory *domain.Inventory) error {
	if err := r.tx.injected("inventory.create"); err != nil {
		return err
	}
	if _, ok := r.tx.state.warehouses[inventory.WarehouseID]; !ok {
		return errors.New("inventory warehouse_id violates foreign key")
	}
	r.tx.state.inventory = append(r.tx.state.inventory, *inventory)
	return nil
}

func (r memInventory) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*domain.Inventory, error) {
	for _, inventory := range r.tx.state.inventory {
		if inventory.ProductID == productID && inventory.WarehouseID == warehouseID {
			return &inventory, nil
		}
	}
	return nil, repository.ErrInventoryNotFound
}

// ListLowStock sums sales per row in application code and returns every
// stock row of the company unfiltered, leaving both filters to the caller.
func (r memInventory) ListLowStock(ctx context.Context, companyID uuid.UUID, since time.Time) ([]domain.LowStockRow, error) {
	if err := r.tx.injected("inventory.low_stock"); err != nil {
		return nil, err
	}

	sales := memSales{r.tx}
	var rows []domain.LowStockRow
	for _, inventory := range r.tx.state.inventory {
		product := r.tx.state.products[inventory.ProductID]
		if product.CompanyID != companyID {
			continue
		}
		total, _ := sales.SumQuantitySince(ctx, inventory.ProductID, inventory.WarehouseID, since)
		warehouse := r.tx.state.warehouses[inventory.WarehouseID]
		rows = append(rows, domain.LowStockRow{
			ProductID:        product.ID,
			ProductName:      product.Name,
			SKU:              product.SKU,
			Threshold:        product.Threshold(),
			WarehouseID:      warehouse.ID,
			WarehouseName:    warehouse.Name,
			Quantity:         inventory.Quantity,
			TotalRecentSales: total,
		})
	}
	return rows, nil
}

type memSales struct{ tx *memTx }

func (r memSales) Create(ctx context.Context, sale *domain.Sale) error {
	r.tx.state.sales = append(r.tx.state.sales, *sale)
	return nil
}

func (r memSales) SumQuantitySince(ctx context.Context, productID, warehouseID uuid.UUID, since time.Time) (int64, error) {
	var total int64
	for _, sale := range r.tx.state.sales {
		if sale.ProductID == productID && sale.WarehouseID == warehouseID && !sale.SoldAt.Before(since) {
			total += int64(sale.Quantity)
		}
	}
	return total, nil
}
