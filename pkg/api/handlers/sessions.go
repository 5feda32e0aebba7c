package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/resourced/pkg/deploy"
	"github.com/marmos91/resourced/pkg/naming"
	"github.com/marmos91/resourced/pkg/registry"
)

// SessionHandler handles mail-session deployment endpoints.
type SessionHandler struct {
	registry *registry.Registry
	deployer *deploy.Deployer
	naming   naming.Service
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(reg *registry.Registry, d *deploy.Deployer, svc naming.Service) *SessionHandler {
	return &SessionHandler{registry: reg, deployer: d, naming: svc}
}

// DeployResult is the response body of deploy and undeploy operations.
type DeployResult struct {
	Application string `json:"application"`
	Affected    int    `json:"affected"`
	Deployed    int    `json:"deployed"`
}

// BindingResponse is one naming-service binding in API responses.
type BindingResponse struct {
	Name        string          `json:"name"`
	Application string          `json:"application,omitempty"`
	PublishedAt time.Time       `json:"published_at"`
	Resource    json.RawMessage `json:"resource"`
}

// Deploy handles POST /api/v1/applications/{name}/sessions/deploy.
// Registers every eligible mail session of the application with the naming
// service. Already-registered sessions are skipped.
func (h *SessionHandler) Deploy(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	app, err := h.registry.GetApplication(name)
	if err != nil {
		NotFound(w, err.Error())
		return
	}

	registered := h.deployer.RegisterMailSessions(r.Context(), app)
	WriteJSONOK(w, DeployResult{
		Application: name,
		Affected:    registered,
		Deployed:    h.deployer.DeployedCount(),
	})
}

// Undeploy handles POST /api/v1/applications/{name}/sessions/undeploy.
// Unregisters every mail session of the application that was previously
// registered.
func (h *SessionHandler) Undeploy(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	app, err := h.registry.GetApplication(name)
	if err != nil {
		NotFound(w, err.Error())
		return
	}

	cleared := h.deployer.UnregisterMailSessions(r.Context(), app)
	WriteJSONOK(w, DeployResult{
		Application: name,
		Affected:    cleared,
		Deployed:    h.deployer.DeployedCount(),
	})
}

// Bindings handles GET /api/v1/bindings.
// Lists every binding currently published in the naming service.
func (h *SessionHandler) Bindings(w http.ResponseWriter, r *http.Request) {
	entries, err := h.naming.List(r.Context())
	if err != nil {
		InternalServerError(w, "Failed to list bindings: "+err.Error())
		return
	}

	bindings := make([]BindingResponse, 0, len(entries))
	for _, e := range entries {
		bindings = append(bindings, BindingResponse{
			Name:        e.Name,
			Application: e.ApplicationName,
			PublishedAt: e.PublishedAt,
			Resource:    e.Payload,
		})
	}
	WriteJSONOK(w, bindings)
}
