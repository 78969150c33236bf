package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ConsoleMetrics counts the order-console operations worth watching: snapshot
// loads, backend failures, bulk dispatches, exports.
type ConsoleMetrics struct {
	orderLoads       prometheus.Counter
	orderLoadErrors  prometheus.Counter
	statusUpdates    prometheus.Counter
	bulkDispatched   *prometheus.CounterVec
	bulkFailedOrders prometheus.Counter
	exports          *prometheus.CounterVec
}

func New() *ConsoleMetrics {
	return newWithRegisterer(prometheus.DefaultRegisterer)
}

// NewForTesting registers against a throwaway registry so parallel tests do
// not collide on duplicate collector names.
func NewForTesting() *ConsoleMetrics {
	return newWithRegisterer(prometheus.NewRegistry())
}

func newWithRegisterer(reg prometheus.Registerer) *ConsoleMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &ConsoleMetrics{
		orderLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admin_order_loads_total",
			Help: "Total number of order snapshot loads from the backend",
		}),
		orderLoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admin_order_load_errors_total",
			Help: "Total number of failed order snapshot loads",
		}),
		statusUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admin_order_status_updates_total",
			Help: "Total number of single-order status updates sent",
		}),
		bulkDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_bulk_actions_total",
			Help: "Total number of bulk actions dispatched, by action",
		}, []string{"action"}),
		bulkFailedOrders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admin_bulk_failed_orders_total",
			Help: "Total number of orders rejected inside bulk actions",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_exports_total",
			Help: "Total number of order-list exports generated, by format",
		}, []string{"format"}),
	}

	reg.MustRegister(m.orderLoads, m.orderLoadErrors, m.statusUpdates,
		m.bulkDispatched, m.bulkFailedOrders, m.exports)
	return m
}

func (m *ConsoleMetrics) OrderLoad(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.orderLoadErrors.Inc()
		return
	}
	m.orderLoads.Inc()
}

func (m *ConsoleMetrics) StatusUpdate() {
	if m == nil {
		return
	}
	m.statusUpdates.Inc()
}

func (m *ConsoleMetrics) BulkDispatched(action string, failedOrders int) {
	if m == nil {
		return
	}
	m.bulkDispatched.WithLabelValues(action).Inc()
	m.bulkFailedOrders.Add(float64(failedOrders))
}

func (m *ConsoleMetrics) Export(format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format).Inc()
}
