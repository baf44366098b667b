package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rizalmf/backend-storefront/internal/common"
)

// Handler exposes public catalog endpoints.
type Handler struct {
	service           *Service
	lowStockThreshold int
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service           *Service
	LowStockThreshold int
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	threshold := cfg.LowStockThreshold
	if threshold < 1 {
		threshold = 10
	}
	return &Handler{service: cfg.Service, lowStockThreshold: threshold}
}

// ProductView is the public product payload.
type ProductView struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Category   Category        `json:"category"`
	InStock    bool            `json:"inStock"`
	StockCount int             `json:"stockCount"`
	Tags       []string        `json:"tags,omitempty"`
}

// ProductDetail handles GET /api/v1/products/{id}.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "product id must be an integer", nil)
		return
	}
	product, ok := h.service.Get(id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", map[string]any{"productId": id})
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toView(product)})
}

// Search handles GET /api/v1/products/search?q=. Queries shorter than two
// characters are rejected here, before the store is consulted.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) < 2 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "query must be at least 2 characters", nil)
		return
	}
	results, err := h.service.Search(r.Context(), query)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "search failed", nil)
		return
	}
	views := make([]ProductView, 0, len(results))
	for _, p := range results {
		views = append(views, toView(p))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views, "count": len(views)})
}

// LowStock handles GET /api/v1/products/low-stock.
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	threshold := h.lowStockThreshold
	if v := strings.TrimSpace(r.URL.Query().Get("threshold")); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "threshold must be a positive integer", nil)
			return
		}
		threshold = parsed
	}
	results := h.service.LowStock(threshold)
	views := make([]ProductView, 0, len(results))
	for _, p := range results {
		views = append(views, toView(p))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views, "count": len(views)})
}

func toView(p Product) ProductView {
	return ProductView{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Category:   p.Category,
		InStock:    p.InStock(),
		StockCount: p.Stock,
		Tags:       p.Tags,
	}
}
