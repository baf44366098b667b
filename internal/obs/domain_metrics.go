package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CartQuoteTotal counts cart quote outcomes.
	CartQuoteTotal *prometheus.CounterVec
	// StockReservationTotal counts stock reservation outcomes.
	StockReservationTotal *prometheus.CounterVec
	// OrdersTotal counts order state changes by resulting status.
	OrdersTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CartQuoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_quote_total",
			Help:      "Count of cart quote calculations by outcome.",
		}, []string{"result"})
		StockReservationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_reservation_total",
			Help:      "Count of stock reservation attempts by outcome.",
		}, []string{"result"})
		OrdersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Count of order state changes by resulting status.",
		}, []string{"status"})

		mustRegisterCollector(reg, CartQuoteTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CartQuoteTotal = v
			}
		})
		mustRegisterCollector(reg, StockReservationTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				StockReservationTotal = v
			}
		})
		mustRegisterCollector(reg, OrdersTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrdersTotal = v
			}
		})
	})
}

// IncCartQuote increments the quote counter when metrics are registered.
func IncCartQuote(result string) {
	if CartQuoteTotal != nil {
		CartQuoteTotal.WithLabelValues(result).Inc()
	}
}

// IncReservation increments the reservation counter when metrics are registered.
func IncReservation(result string) {
	if StockReservationTotal != nil {
		StockReservationTotal.WithLabelValues(result).Inc()
	}
}

// IncOrder increments the order counter when metrics are registered.
func IncOrder(status string) {
	if OrdersTotal != nil {
		OrdersTotal.WithLabelValues(status).Inc()
	}
}
