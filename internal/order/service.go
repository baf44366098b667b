package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rizalmf/backend-storefront/internal/catalog"
	"github.com/rizalmf/backend-storefront/internal/common"
	"github.com/rizalmf/backend-storefront/internal/config"
	"github.com/rizalmf/backend-storefront/internal/events"
	"github.com/rizalmf/backend-storefront/internal/obs"
	"github.com/rizalmf/backend-storefront/internal/pricing"
)

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order: not found")

// ErrNotCancellable is returned when cancellation is requested past the
// cancellable states.
var ErrNotCancellable = errors.New("order: status does not allow cancellation")

// Service places and cancels orders against the catalog. Placement is the one
// flow that actually reserves stock; cart quoting stays a dry run.
type Service struct {
	Catalog *catalog.Store
	Bus     *events.Bus
	Rules   config.Pricing
	Now     func() time.Time

	// LowStockThreshold > 0 enables a catalog.low_stock event when a
	// placement drains a product below it. AlertEmail is the recipient
	// carried on that event.
	LowStockThreshold int
	AlertEmail        string

	mu     sync.RWMutex
	orders map[string]*Order
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Catalog           *catalog.Store
	Bus               *events.Bus
	Rules             config.Pricing
	Now               func() time.Time
	LowStockThreshold int
	AlertEmail        string
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("order: catalog store is required")
	}
	return &Service{
		Catalog:           cfg.Catalog,
		Bus:               cfg.Bus,
		Rules:             cfg.Rules,
		Now:               cfg.Now,
		LowStockThreshold: cfg.LowStockThreshold,
		AlertEmail:        cfg.AlertEmail,
		orders:            make(map[string]*Order),
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Place reserves stock for every line, snapshots unit prices, and records a
// PENDING order. Reservations already taken are rolled back if a later line
// fails, so a failed placement leaves stock exactly as it was.
func (s *Service) Place(ctx context.Context, customerID int64, customerEmail string, lines []pricing.Line, shippingAddress string) (Order, error) {
	if len(lines) == 0 {
		return Order{}, common.NewAppError("BAD_REQUEST", "at least one order line is required", http.StatusBadRequest, nil)
	}

	reserved := make([]pricing.Line, 0, len(lines))
	rollback := func() {
		for _, line := range reserved {
			_, _ = s.Catalog.Restock(line.ProductID, line.Qty)
		}
	}

	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		product, ok := s.Catalog.Get(line.ProductID)
		if !ok {
			rollback()
			obs.IncReservation("not_found")
			return Order{}, &pricing.NotFoundError{ProductID: line.ProductID}
		}
		if !s.Catalog.Reserve(line.ProductID, line.Qty) {
			rollback()
			obs.IncReservation("rejected")
			return Order{}, &pricing.InsufficientStockError{ProductName: product.Name}
		}
		obs.IncReservation("ok")
		reserved = append(reserved, line)
		items = append(items, Item{
			ProductID: product.ID,
			Name:      product.Name,
			Qty:       line.Qty,
			UnitPrice: product.Price,
		})
	}

	o := Order{
		ID:              uuid.NewString(),
		CustomerID:      customerID,
		Items:           items,
		Status:          StatusPending,
		CreatedAt:       s.now(),
		ShippingAddress: shippingAddress,
	}

	s.mu.Lock()
	s.orders[o.ID] = &o
	s.mu.Unlock()

	obs.IncOrder(string(StatusPending))
	if s.Bus != nil {
		payload := map[string]any{
			"orderId":    o.ID,
			"customerId": o.CustomerID,
			"total":      o.Total(s.Rules),
		}
		if customerEmail != "" {
			payload["email"] = customerEmail
		}
		_, _ = s.Bus.Emit(ctx, events.TopicOrderCreated, payload)
	}
	s.emitLowStock(ctx, items)
	return s.snapshot(o.ID), nil
}

// emitLowStock raises an alert for every product the placement drained below
// the threshold.
func (s *Service) emitLowStock(ctx context.Context, items []Item) {
	if s.Bus == nil || s.LowStockThreshold <= 0 {
		return
	}
	for _, item := range items {
		product, ok := s.Catalog.Get(item.ProductID)
		if !ok || product.Stock >= s.LowStockThreshold {
			continue
		}
		payload := map[string]any{
			"productId":   product.ID,
			"productName": product.Name,
			"stock":       product.Stock,
		}
		if s.AlertEmail != "" {
			payload["recipient"] = s.AlertEmail
		}
		_, _ = s.Bus.Emit(ctx, events.TopicLowStock, payload)
	}
}

// Get returns the order, if present.
func (s *Service) Get(id string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, false
	}
	return copyOrder(o), true
}

// Cancel transitions a cancellable order to CANCELLED and returns its stock
// to the catalog.
func (s *Service) Cancel(ctx context.Context, id string) (Order, error) {
	s.mu.Lock()
	o, ok := s.orders[id]
	if !ok {
		s.mu.Unlock()
		return Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if !o.CanCancel() {
		status := o.Status
		s.mu.Unlock()
		return Order{}, fmt.Errorf("order %s in status %s: %w", id, status, ErrNotCancellable)
	}
	o.Status = StatusCancelled
	items := append([]Item(nil), o.Items...)
	s.mu.Unlock()

	for _, item := range items {
		_, _ = s.Catalog.Restock(item.ProductID, item.Qty)
	}

	obs.IncOrder(string(StatusCancelled))
	if s.Bus != nil {
		_, _ = s.Bus.Emit(ctx, events.TopicOrderCancelled, map[string]any{
			"orderId":    id,
			"customerId": o.CustomerID,
		})
	}
	return s.snapshot(id), nil
}

func (s *Service) snapshot(id string) Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOrder(s.orders[id])
}

func copyOrder(o *Order) Order {
	out := *o
	out.Items = append([]Item(nil), o.Items...)
	return out
}
