// Package metrics provides Prometheus instrumentation for the deployer and
// naming service, plus the /metrics HTTP server.
//
// Metrics are opt-in: nothing is registered until InitRegistry is called.
// Constructors return nil when metrics are disabled, and every observation
// method is nil-receiver safe, so disabled metrics cost nothing at call
// sites.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	mu       sync.RWMutex
	registry *prometheus.Registry
)

// InitRegistry creates the process metrics registry with the standard Go
// and process collectors. Calling it twice is a no-op.
func InitRegistry() {
	mu.Lock()
	defer mu.Unlock()
	if registry != nil {
		return
	}
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return registry != nil
}

// GetRegistry returns the process metrics registry, or nil when metrics are
// disabled.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// resetForTesting drops the registry so tests can re-init with a clean one.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = nil
}
