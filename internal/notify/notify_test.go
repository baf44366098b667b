package notify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOrderConfirmation(t *testing.T) {
	svc := NewService()
	n := svc.OrderConfirmation("buyer@example.com", "ord-42", decimal.RequireFromString("1234.56"))

	require.Equal(t, "buyer@example.com", n.Recipient)
	require.Equal(t, "Order #ord-42 Confirmed", n.Subject)
	require.Equal(t, "Your order #ord-42 has been confirmed. Total: $1,234.56", n.Body)
	require.Equal(t, TypeOrderConfirmed, n.Type)
}

func TestOrderShipped(t *testing.T) {
	svc := NewService()
	n := svc.OrderShipped("buyer@example.com", "ord-42", "TRK123")

	require.Equal(t, "Order #ord-42 Shipped", n.Subject)
	require.Contains(t, n.Body, "Tracking: TRK123")
	require.Equal(t, TypeOrderShipped, n.Type)
}

func TestOrderCancelled(t *testing.T) {
	svc := NewService()
	n := svc.OrderCancelled("buyer@example.com", "ord-42")

	require.Equal(t, "Order #ord-42 Cancelled", n.Subject)
	require.Equal(t, "Your order #ord-42 has been cancelled.", n.Body)
}

func TestLowStockAlert(t *testing.T) {
	svc := NewService()
	n := svc.LowStockAlert("ops@example.com", "Laptop", 2)

	require.Equal(t, "Low Stock Alert: Laptop", n.Subject)
	require.Equal(t, "Laptop is running low. Current stock: 2", n.Body)
	require.Equal(t, TypeLowStock, n.Type)
}

func TestSentLog(t *testing.T) {
	svc := NewService()
	svc.OrderCancelled("a@example.com", "ord-1")
	svc.OrderCancelled("b@example.com", "ord-2")
	svc.OrderShipped("a@example.com", "ord-1", "TRK1")

	require.Len(t, svc.All(), 3)
	forA := svc.For("a@example.com")
	require.Len(t, forA, 2)
	require.Equal(t, TypeOrderCancelled, forA[0].Type)
	require.Equal(t, TypeOrderShipped, forA[1].Type)
	require.Empty(t, svc.For("nobody@example.com"))
}
