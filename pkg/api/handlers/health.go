package handlers

import (
	"net/http"
	"time"

	"github.com/marmos91/resourced/pkg/naming"
	"github.com/marmos91/resourced/pkg/registry"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	registry *registry.Registry
	naming   naming.Service
	started  time.Time
}

// NewHealthHandler creates a health handler. Both dependencies may be nil;
// liveness then still succeeds and readiness reports degraded state.
func NewHealthHandler(reg *registry.Registry, svc naming.Service) *HealthHandler {
	return &HealthHandler{registry: reg, naming: svc, started: time.Now()}
}

// Liveness handles GET /health.
// Always returns 200 while the process is able to serve requests.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, healthyResponse(map[string]string{"service": "resourced"}))
}

// Readiness handles GET /health/ready.
// Verifies the naming service answers a listing before reporting ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.naming == nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("naming service not configured"))
		return
	}

	bindings, err := h.naming.List(r.Context())
	if err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, unhealthyResponse("naming service unavailable: "+err.Error()))
		return
	}

	data := map[string]any{
		"bindings": len(bindings),
		"uptime":   time.Since(h.started).Round(time.Second).String(),
	}
	if h.registry != nil {
		data["applications"] = h.registry.CountApplications()
	}
	WriteJSONOK(w, healthyResponse(data))
}
