package notify

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rizalmf/backend-storefront/internal/format"
)

// Type classifies outbound notifications.
type Type string

// Known notification types.
const (
	TypeOrderConfirmed Type = "order_confirmed"
	TypeOrderShipped   Type = "order_shipped"
	TypeOrderDelivered Type = "order_delivered"
	TypeOrderCancelled Type = "order_cancelled"
	TypeLowStock       Type = "low_stock"
	TypePriceDrop      Type = "price_drop"
)

// Notification is a fully rendered message. Transport dispatch happens
// outside this service.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
	Type      Type
}

// Service renders notification content and keeps an in-memory log of what
// was produced, keyed by recipient.
type Service struct {
	mu   sync.Mutex
	sent []Notification
}

// NewService constructs a Service.
func NewService() *Service {
	return &Service{}
}

// OrderConfirmation renders the order confirmation message.
func (s *Service) OrderConfirmation(email, orderID string, total decimal.Decimal) Notification {
	return s.record(Notification{
		Recipient: email,
		Subject:   fmt.Sprintf("Order #%s Confirmed", orderID),
		Body:      fmt.Sprintf("Your order #%s has been confirmed. Total: %s", orderID, format.Currency(total)),
		Type:      TypeOrderConfirmed,
	})
}

// OrderShipped renders the shipping message.
func (s *Service) OrderShipped(email, orderID, trackingNumber string) Notification {
	return s.record(Notification{
		Recipient: email,
		Subject:   fmt.Sprintf("Order #%s Shipped", orderID),
		Body:      fmt.Sprintf("Your order #%s has been shipped. Tracking: %s", orderID, trackingNumber),
		Type:      TypeOrderShipped,
	})
}

// OrderCancelled renders the cancellation message.
func (s *Service) OrderCancelled(email, orderID string) Notification {
	return s.record(Notification{
		Recipient: email,
		Subject:   fmt.Sprintf("Order #%s Cancelled", orderID),
		Body:      fmt.Sprintf("Your order #%s has been cancelled.", orderID),
		Type:      TypeOrderCancelled,
	})
}

// LowStockAlert renders the low-stock alert message.
func (s *Service) LowStockAlert(email, productName string, currentStock int) Notification {
	return s.record(Notification{
		Recipient: email,
		Subject:   fmt.Sprintf("Low Stock Alert: %s", productName),
		Body:      fmt.Sprintf("%s is running low. Current stock: %d", productName, currentStock),
		Type:      TypeLowStock,
	})
}

// For returns every notification produced for the given recipient.
func (s *Service) For(email string) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Notification
	for _, n := range s.sent {
		if n.Recipient == email {
			out = append(out, n)
		}
	}
	return out
}

// All returns a copy of the full sent log.
func (s *Service) All() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.sent...)
}

func (s *Service) record(n Notification) Notification {
	s.mu.Lock()
	s.sent = append(s.sent, n)
	s.mu.Unlock()
	return n
}
