package events

// Topics emitted by the storefront core.
const (
	TopicOrderCreated   = "order.created"
	TopicOrderCancelled = "order.cancelled"
	TopicLowStock       = "catalog.low_stock"
)
