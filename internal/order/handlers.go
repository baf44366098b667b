package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rizalmf/backend-storefront/internal/common"
	"github.com/rizalmf/backend-storefront/internal/pricing"
	"github.com/rizalmf/backend-storefront/internal/validate"
)

// Handler exposes order placement and cancellation endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service  *Service
	Validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	v := cfg.Validate
	if v == nil {
		v = validator.New()
	}
	return &Handler{service: cfg.Service, validate: v}
}

// CreateRequest is the order placement payload.
type CreateRequest struct {
	CustomerID      int64          `json:"customerId" validate:"required"`
	CustomerEmail   string         `json:"customerEmail,omitempty" validate:"omitempty,email"`
	Items           []pricing.Line `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string         `json:"shippingAddress" validate:"required"`
}

// View is the order payload returned to callers, with derived totals.
type View struct {
	Order
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// Create handles POST /api/v1/orders.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON payload", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "customerId, items, and shippingAddress are required", nil)
		return
	}
	if ok, msg := validate.ShippingAddress(req.ShippingAddress); !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", msg, map[string]any{"field": "shippingAddress"})
		return
	}

	placed, err := h.service.Place(r.Context(), req.CustomerID, req.CustomerEmail, req.Items, req.ShippingAddress)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": h.view(placed)})
}

// Detail handles GET /api/v1/orders/{id}.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	o, ok := h.service.Get(id)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", map[string]any{"orderId": id})
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view(o)})
}

// Cancel handles POST /api/v1/orders/{id}/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order service not configured", nil)
		return
	}
	id := chi.URLParam(r, "id")
	cancelled, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.view(cancelled)})
}

func (h *Handler) view(o Order) View {
	rules := h.service.Rules
	return View{
		Order:    o,
		Subtotal: o.Subtotal(),
		Tax:      o.Tax(rules.TaxRate),
		Shipping: o.Shipping(rules),
		Total:    o.Total(rules),
		Currency: rules.Currency,
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var notFound *pricing.NotFoundError
	if errors.As(err, &notFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", notFound.Error(), map[string]any{"productId": notFound.ProductID})
		return
	}
	var insufficient *pricing.InsufficientStockError
	if errors.As(err, &insufficient) {
		common.JSONError(w, http.StatusConflict, "INSUFFICIENT_STOCK", insufficient.Error(), map[string]any{"productName": insufficient.ProductName})
		return
	}
	if errors.Is(err, ErrNotFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
		return
	}
	if errors.Is(err, ErrNotCancellable) {
		common.JSONError(w, http.StatusConflict, "NOT_CANCELLABLE", "order can no longer be cancelled", nil)
		return
	}
	if common.IsAppError(err) {
		common.WriteAppError(w, err)
		return
	}
	common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
}
