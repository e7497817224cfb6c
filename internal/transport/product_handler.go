package transport

import (
	"bytes"
	"encoding/json"
	"net/http"

	"inventory-api/internal/middleware"
	"inventory-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload. Numeric
// fields accept either a JSON number or a numeric string.
type CreateProductRequest struct {
	Name             string          `json:"name"`
	SKU              string          `json:"sku"`
	Price            json.RawMessage `json:"price"`
	WarehouseID      string          `json:"warehouse_id"`
	InitialQuantity  json.RawMessage `json:"initial_quantity"`
	CompanyID        string          `json:"company_id"`
	ReorderThreshold json.RawMessage `json:"reorder_threshold,omitempty"`
}

// CreateProductResponse represents the product creation response
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID string `json:"product_id"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/products", h.CreateProduct)
}

// CreateProduct handles product creation together with its initial stock
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.logger.Debug("Product request decoding failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := service.CreateProductInput{
		Name:            req.Name,
		SKU:             req.SKU,
		Price:           numericText(req.Price),
		WarehouseID:     req.WarehouseID,
		InitialQuantity: numericText(req.InitialQuantity),
		CompanyID:       req.CompanyID,
	}
	if threshold := numericText(req.ReorderThreshold); threshold != "" {
		input.ReorderThreshold = &threshold
	}

	productID, err := h.productService.CreateProduct(r.Context(), input)
	if err != nil {
		middleware.RespondWithDomainError(w, r, h.logger, err)
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", productID.String()),
		zap.String("sku", input.SKU),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, CreateProductResponse{
		Message:   "Product created",
		ProductID: productID.String(),
	})
}

// numericText returns the textual form of a JSON number or string. Absent
// and null values yield "", other JSON kinds are passed through verbatim so
// numeric parsing rejects them.
func numericText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}

	return string(raw)
}
