package main

import (
	"context"
	"fmt"
	"time"

	"inventory-api/internal/config"
	"inventory-api/internal/database"
	"inventory-api/internal/domain"
	"inventory-api/internal/logger"
	"inventory-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedProduct struct {
	sku       string
	name      string
	price     string
	threshold int
	quantity  int
	// daily units sold over the last 30 days
	dailySales int
}

var demoProducts = []seedProduct{
	{sku: "WID-001", name: "Widget A", price: "19.99", threshold: 20, quantity: 5, dailySales: 1},
	{sku: "WID-002", name: "Widget B", price: "4.50", threshold: 10, quantity: 8, dailySales: 2},
	{sku: "BOLT-10", name: "Hex Bolt M10", price: "0.35", threshold: 500, quantity: 2000, dailySales: 40},
	{sku: "GEAR-7", name: "Gear Assembly", price: "129.00", threshold: 3, quantity: 1, dailySales: 0},
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	ctx := context.Background()

	// Initialize database
	dbService, err := database.New(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbService.Close()

	// Run migrations
	if err := database.RunMigrations(dbService.DB(), cfg.Database.MigrationsDir, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Create the demo tenant in a single transaction
	var companyID uuid.UUID
	err = repository.NewStore(dbService.DB()).WithinTx(ctx, func(repos repository.Repositories) error {
		var err error
		companyID, err = seed(ctx, repos, time.Now())
		return err
	})
	if err != nil {
		log.Fatal("Failed to seed demo data", zap.Error(err))
	}

	log.Info("Demo data created",
		zap.String("company_id", companyID.String()),
		zap.String("alerts_url", fmt.Sprintf("/api/companies/%s/alerts/low-stock", companyID)),
	)
}

// seed creates one company with two warehouses, shared suppliers, products
// with stock in both warehouses and a month of daily sales.
func seed(ctx context.Context, repos repository.Repositories, now time.Time) (uuid.UUID, error) {
	company := &domain.Company{ID: uuid.New(), Name: "Demo Manufacturing"}
	if err := repos.Companies.Create(ctx, company); err != nil {
		return uuid.Nil, err
	}

	warehouses := []*domain.Warehouse{
		{ID: uuid.New(), CompanyID: company.ID, Name: "Main Warehouse", Location: "Building 1"},
		{ID: uuid.New(), CompanyID: company.ID, Name: "Overflow", Location: "Building 4"},
	}
	for _, w := range warehouses {
		if err := repos.Warehouses.Create(ctx, w); err != nil {
			return uuid.Nil, err
		}
	}

	email := "orders@supplier.example"
	primary := &domain.Supplier{ID: uuid.New(), Name: "Supplier Corp", ContactEmail: &email}
	backup := &domain.Supplier{ID: uuid.New(), Name: "Backup Parts Ltd"}
	for _, s := range []*domain.Supplier{primary, backup} {
		if err := repos.Suppliers.Create(ctx, s); err != nil {
			return uuid.Nil, err
		}
	}

	for i, p := range demoProducts {
		product := &domain.Product{
			ID:        uuid.New(),
			CompanyID: company.ID,
			SKU:       p.sku,
			Name:      p.name,
			Price:     decimal.RequireFromString(p.price),
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return uuid.Nil, err
		}
		if err := repos.Products.SetReorderThreshold(ctx, product.ID, p.threshold); err != nil {
			return uuid.Nil, err
		}

		// Every other product only has a non-primary supplier
		if err := repos.Suppliers.LinkProduct(ctx, &domain.ProductSupplier{ProductID: product.ID, SupplierID: backup.ID}); err != nil {
			return uuid.Nil, err
		}
		if i%2 == 0 {
			if err := repos.Suppliers.LinkProduct(ctx, &domain.ProductSupplier{ProductID: product.ID, SupplierID: primary.ID, IsPrimary: true}); err != nil {
				return uuid.Nil, err
			}
		}

		for j, w := range warehouses {
			inventory := &domain.Inventory{ID: uuid.New(), ProductID: product.ID, WarehouseID: w.ID, Quantity: p.quantity * (j + 1)}
			if err := repos.Inventory.Create(ctx, inventory); err != nil {
				return uuid.Nil, err
			}
		}

		if p.dailySales == 0 {
			continue
		}
		for day := 1; day <= 30; day++ {
			sale := &domain.Sale{
				ID:          uuid.New(),
				ProductID:   product.ID,
				WarehouseID: warehouses[0].ID,
				Quantity:    p.dailySales,
				SoldAt:      now.Add(-time.Duration(day)*24*time.Hour + time.Hour),
			}
			if err := repos.Sales.Create(ctx, sale); err != nil {
				return uuid.Nil, err
			}
		}
	}

	return company.ID, nil
}
