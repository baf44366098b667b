package notify

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rizalmf/backend-storefront/internal/common"
	"github.com/rizalmf/backend-storefront/internal/events"
)

// Subscriber renders notifications for selected event topics and hands them
// to the configured sender. Events without a recipient are skipped silently.
type Subscriber struct {
	Service      *Service
	Mail         common.EmailSender
	Enabled      bool
	TopicToggles map[string]bool
}

// Notify implements the events.Notifier interface.
func (s Subscriber) Notify(_ context.Context, event events.Event) error {
	if !s.Enabled || s.Service == nil {
		return nil
	}
	if s.TopicToggles != nil {
		if enabled, ok := s.TopicToggles[event.Topic]; ok && !enabled {
			return nil
		}
	}
	recipient := extractRecipient(event.Payload)
	if recipient == "" {
		return nil
	}

	var rendered Notification
	switch event.Topic {
	case events.TopicOrderCreated:
		rendered = s.Service.OrderConfirmation(recipient, stringField(event.Payload, "orderId"), decimalField(event.Payload, "total"))
	case events.TopicOrderCancelled:
		rendered = s.Service.OrderCancelled(recipient, stringField(event.Payload, "orderId"))
	case events.TopicLowStock:
		rendered = s.Service.LowStockAlert(recipient, stringField(event.Payload, "productName"), intField(event.Payload, "stock"))
	default:
		return nil
	}
	if s.Mail == nil {
		return nil
	}
	return s.Mail.Send(rendered.Recipient, rendered.Subject, rendered.Body)
}

func extractRecipient(payload map[string]any) string {
	for _, key := range []string{"email", "recipient", "customerEmail"} {
		if val, ok := payload[key]; ok {
			if str, ok := val.(string); ok {
				str = strings.TrimSpace(str)
				if str != "" {
					return str
				}
			}
		}
	}
	return ""
}

func stringField(payload map[string]any, key string) string {
	if val, ok := payload[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func decimalField(payload map[string]any, key string) decimal.Decimal {
	switch val := payload[key].(type) {
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case int64:
		return decimal.NewFromInt(val)
	case string:
		if d, err := decimal.NewFromString(val); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func intField(payload map[string]any, key string) int {
	switch val := payload[key].(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	}
	return 0
}
