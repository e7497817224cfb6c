package service

import (
	"context"
	"sort"
	"time"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"github.com/google/uuid"
)

// LowStockWindowDays is the length of the sales window used to estimate
// daily sales velocity.
const LowStockWindowDays = 30

// AlertService defines the interface for low-stock reporting
type AlertService interface {
	ListLowStockAlerts(ctx context.Context, companyID string) (*domain.LowStockReport, error)
}

// AlertOption configures an AlertService
type AlertOption func(*alertService)

// WithClock overrides the evaluation time source
func WithClock(now func() time.Time) AlertOption {
	return func(s *alertService) {
		s.now = now
	}
}

type alertService struct {
	store repository.Store
	now   func() time.Time
}

// NewAlertService creates a new instance of AlertService
func NewAlertService(store repository.Store, opts ...AlertOption) AlertService {
	s := &alertService{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListLowStockAlerts reports every (product, warehouse) of the company whose
// stock is at or below the reorder threshold and which sold at least one
// unit inside the window.
func (s *alertService) ListLowStockAlerts(ctx context.Context, companyID string) (*domain.LowStockReport, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, domain.NewValidationError(msgInvalidCompany)
	}

	since := s.now().Add(-LowStockWindowDays * 24 * time.Hour)

	var (
		rows  []domain.LowStockRow
		links []domain.SupplierLink
	)
	err = s.store.ReadOnly(ctx, func(repos repository.Repositories) error {
		var err error
		rows, err = repos.Inventory.ListLowStock(ctx, id, since)
		if err != nil {
			return err
		}

		rows = filterLowStock(rows)
		if len(rows) == 0 {
			return nil
		}

		links, err = repos.Suppliers.ListLinksForProducts(ctx, productIDs(rows))
		return err
	})
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	suppliers := pickSuppliers(links)

	alerts := make([]domain.LowStockAlert, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, domain.LowStockAlert{
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			SKU:               row.SKU,
			WarehouseID:       row.WarehouseID,
			WarehouseName:     row.WarehouseName,
			CurrentStock:      row.Quantity,
			Threshold:         row.Threshold,
			DaysUntilStockout: daysUntilStockout(row.Quantity, row.TotalRecentSales),
			Supplier:          suppliers[row.ProductID],
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		pi, pj := alerts[i].ProductID.String(), alerts[j].ProductID.String()
		if pi != pj {
			return pi < pj
		}
		return alerts[i].WarehouseID.String() < alerts[j].WarehouseID.String()
	})

	return &domain.LowStockReport{
		Alerts:      alerts,
		TotalAlerts: len(alerts),
	}, nil
}

// filterLowStock keeps rows at or below threshold with recent sales
func filterLowStock(rows []domain.LowStockRow) []domain.LowStockRow {
	kept := rows[:0]
	for _, row := range rows {
		if row.Quantity <= row.Threshold && row.TotalRecentSales > 0 {
			kept = append(kept, row)
		}
	}
	return kept
}

func productIDs(rows []domain.LowStockRow) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.ProductID]; ok {
			continue
		}
		seen[row.ProductID] = struct{}{}
		ids = append(ids, row.ProductID)
	}
	return ids
}

// pickSuppliers chooses one supplier per product: the first primary link,
// otherwise the first link in store order.
func pickSuppliers(links []domain.SupplierLink) map[uuid.UUID]*domain.SupplierInfo {
	chosen := make(map[uuid.UUID]*domain.SupplierInfo)
	primary := make(map[uuid.UUID]bool)

	for _, link := range links {
		if primary[link.ProductID] {
			continue
		}
		if _, ok := chosen[link.ProductID]; ok && !link.IsPrimary {
			continue
		}
		chosen[link.ProductID] = &domain.SupplierInfo{
			ID:           link.Supplier.ID,
			Name:         link.Supplier.Name,
			ContactEmail: link.Supplier.ContactEmail,
		}
		primary[link.ProductID] = link.IsPrimary
	}

	return chosen
}

// daysUntilStockout is floor(quantity / (total / window)), computed exactly.
// It is nil when nothing sold in the window.
func daysUntilStockout(quantity int, totalRecentSales int64) *int64 {
	if totalRecentSales <= 0 {
		return nil
	}
	days := int64(quantity) * LowStockWindowDays / totalRecentSales
	return &days
}
