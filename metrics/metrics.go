package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// CapturedTotal counts successfully persisted leads by origin and type.
	CapturedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leads",
		Subsystem: "ingest",
		Name:      "captured_total",
		Help:      "Total number of leads captured and appended to the store, labeled by source and property type.",
	}, []string{"source", "tipo"})

	// ValidationErrorsTotal counts rejected capture payloads by endpoint.
	ValidationErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leads",
		Subsystem: "ingest",
		Name:      "validation_errors_total",
		Help:      "Total number of capture requests rejected by field validation, labeled by endpoint.",
	}, []string{"endpoint"})

	// StoreErrorsTotal counts failed store operations by operation kind.
	StoreErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leads",
		Subsystem: "store",
		Name:      "errors_total",
		Help:      "Total number of failed lead store operations, labeled by operation.",
	}, []string{"op"})

	// WebsocketClients tracks currently connected dashboard feed clients.
	WebsocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "leads",
		Subsystem: "ws",
		Name:      "connected_clients",
		Help:      "Current number of connected dashboard WebSocket clients.",
	})
)

// Register registers the service metrics with the default Prometheus
// registry. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			CapturedTotal,
			ValidationErrorsTotal,
			StoreErrorsTotal,
			WebsocketClients,
		)
	})
}
