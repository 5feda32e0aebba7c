package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/resourced/pkg/deploy"
	"github.com/marmos91/resourced/pkg/descriptor"
	"github.com/marmos91/resourced/pkg/registry"
)

// ApplicationHandler handles described-application management endpoints.
type ApplicationHandler struct {
	registry *registry.Registry
	deployer *deploy.Deployer
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(reg *registry.Registry, d *deploy.Deployer) *ApplicationHandler {
	return &ApplicationHandler{registry: reg, deployer: d}
}

// ApplicationSummary is the list/creation representation of an application.
type ApplicationSummary struct {
	Name         string `json:"name"`
	Bundles      int    `json:"bundles"`
	MailSessions int    `json:"mail_sessions"`
}

func summarize(app *descriptor.Application) ApplicationSummary {
	return ApplicationSummary{
		Name:         app.Name,
		Bundles:      len(app.Bundles),
		MailSessions: len(app.AllMailSessions()),
	}
}

// Create handles POST /api/v1/applications.
// Registers a described application, replacing any previous registration
// under the same name.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var app descriptor.Application
	if !decodeJSONBody(w, r, &app) {
		return
	}

	if err := descriptor.Validate(&app); err != nil {
		UnprocessableEntity(w, "Invalid application descriptor: "+err.Error())
		return
	}

	if err := h.registry.AddApplication(&app); err != nil {
		BadRequest(w, err.Error())
		return
	}

	WriteJSONCreated(w, summarize(&app))
}

// List handles GET /api/v1/applications.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	names := h.registry.ListApplications()
	summaries := make([]ApplicationSummary, 0, len(names))
	for _, name := range names {
		app, err := h.registry.GetApplication(name)
		if err != nil {
			// Removed between listing and lookup.
			continue
		}
		summaries = append(summaries, summarize(app))
	}
	WriteJSONOK(w, summaries)
}

// Get handles GET /api/v1/applications/{name}.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	app, err := h.registry.GetApplication(name)
	if err != nil {
		NotFound(w, err.Error())
		return
	}
	WriteJSONOK(w, app)
}

// Delete handles DELETE /api/v1/applications/{name}.
// Any mail sessions the deployer registered for the application are
// unregistered before removal.
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	app, err := h.registry.GetApplication(name)
	if err != nil {
		NotFound(w, err.Error())
		return
	}

	if h.deployer != nil {
		h.deployer.UnregisterMailSessions(r.Context(), app)
	}
	h.registry.RemoveApplication(name)
	WriteNoContent(w)
}
