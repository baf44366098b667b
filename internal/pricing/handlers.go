package pricing

import (
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/rizalmf/backend-storefront/internal/common"
	"github.com/rizalmf/backend-storefront/internal/customer"
	"github.com/rizalmf/backend-storefront/internal/obs"
)

// Handler exposes the cart quote endpoint.
type Handler struct {
	engine   *Engine
	validate *validator.Validate
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Engine   *Engine
	Validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	v := cfg.Validate
	if v == nil {
		v = validator.New()
	}
	return &Handler{engine: cfg.Engine, validate: v}
}

// QuoteRequest is the cart quote payload.
type QuoteRequest struct {
	Items    []Line           `json:"items" validate:"required,min=1,dive"`
	Customer *CustomerPayload `json:"customer,omitempty"`
}

// CustomerPayload is the caller-supplied customer slice.
type CustomerPayload struct {
	ID           int64  `json:"id"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	Status       string `json:"status,omitempty"`
	DiscountTier int    `json:"discountTier"`
}

// Quote handles POST /api/v1/cart/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "pricing engine not configured", nil)
		return
	}
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON payload", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "items are required and quantities must be positive", nil)
		return
	}

	var cust *customer.Customer
	if req.Customer != nil {
		cust = &customer.Customer{
			ID:           req.Customer.ID,
			Email:        req.Customer.Email,
			Name:         req.Customer.Name,
			Status:       customer.Status(req.Customer.Status),
			DiscountTier: req.Customer.DiscountTier,
		}
	}

	summary, err := h.engine.Quote(req.Items, cust)
	if err != nil {
		obs.IncCartQuote("error")
		h.writeError(w, err)
		return
	}
	obs.IncCartQuote("ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": summary})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", notFound.Error(), map[string]any{"productId": notFound.ProductID})
		return
	}
	var insufficient *InsufficientStockError
	if errors.As(err, &insufficient) {
		common.JSONError(w, http.StatusConflict, "INSUFFICIENT_STOCK", insufficient.Error(), map[string]any{"productName": insufficient.ProductName})
		return
	}
	common.WriteAppError(w, err)
}
