package transport

import (
	"net/http"

	"inventory-api/internal/middleware"
	"inventory-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AlertHandler handles HTTP requests for stock alerts
type AlertHandler struct {
	alertService service.AlertService
	logger       *zap.Logger
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alertService service.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		logger:       logger,
	}
}

// RegisterRoutes registers all alert routes
func (h *AlertHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/companies/{company_id}/alerts/low-stock", h.ListLowStock)
}

// ListLowStock returns the low-stock alerts of a company
func (h *AlertHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "company_id")

	report, err := h.alertService.ListLowStockAlerts(r.Context(), companyID)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.logger.Debug("Low-stock alerts listed",
		zap.String("company_id", companyID),
		zap.Int("total_alerts", report.TotalAlerts),
	)
	middleware.RespondWithJSON(w, http.StatusOK, report)
}
