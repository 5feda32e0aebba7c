package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marmos91/resourced/pkg/registry"
)

// AdminObjectHandler handles admin-object lookup endpoints.
//
// All lookups are scoped to one bundle of one registered application;
// interface and class are passed as query parameters.
type AdminObjectHandler struct {
	registry *registry.Registry
}

// NewAdminObjectHandler creates a new AdminObjectHandler.
func NewAdminObjectHandler(reg *registry.Registry) *AdminObjectHandler {
	return &AdminObjectHandler{registry: reg}
}

func bundleParams(r *http.Request) (appName, bundleName string) {
	return chi.URLParam(r, "name"), chi.URLParam(r, "bundle")
}

// Interfaces handles GET .../admin-objects/interfaces.
// Returns the interface names of every admin object in the bundle, in
// document order, duplicates included.
func (h *AdminObjectHandler) Interfaces(w http.ResponseWriter, r *http.Request) {
	appName, bundleName := bundleParams(r)
	names, err := h.registry.AdminObjectInterfaceNames(appName, bundleName)
	if err != nil {
		NotFound(w, err.Error())
		return
	}
	WriteJSONOK(w, map[string]any{"interfaces": names})
}

// Classes handles GET .../admin-objects/classes?interface=X.
// Returns the deduplicated implementation class names for an interface.
func (h *AdminObjectHandler) Classes(w http.ResponseWriter, r *http.Request) {
	appName, bundleName := bundleParams(r)
	interfaceName := r.URL.Query().Get("interface")
	if interfaceName == "" {
		BadRequest(w, "Query parameter 'interface' is required")
		return
	}

	names, err := h.registry.AdminObjectClassNames(appName, bundleName, interfaceName)
	if err != nil {
		NotFound(w, err.Error())
		return
	}
	WriteJSONOK(w, map[string]any{"classes": names})
}

// Exists handles GET .../admin-objects/exists?interface=X&class=Y.
// Reports whether the bundle declares the exact interface/class pair.
func (h *AdminObjectHandler) Exists(w http.ResponseWriter, r *http.Request) {
	appName, bundleName := bundleParams(r)
	interfaceName := r.URL.Query().Get("interface")
	className := r.URL.Query().Get("class")

	found, err := h.registry.HasAdminObject(appName, bundleName, interfaceName, className)
	if err != nil {
		if errors.Is(err, registry.ErrInvalidArgument) {
			BadRequest(w, "Query parameters 'interface' and 'class' are required")
			return
		}
		NotFound(w, err.Error())
		return
	}
	WriteJSONOK(w, map[string]bool{"exists": found})
}

// Properties handles GET .../admin-objects/properties?interface=X&class=Y.
// Returns the effective properties of the matching admin object: declared
// values merged over introspected bean defaults. The properties field is
// null when the admin object declares no implementation class.
func (h *AdminObjectHandler) Properties(w http.ResponseWriter, r *http.Request) {
	appName, bundleName := bundleParams(r)
	interfaceName := r.URL.Query().Get("interface")
	if interfaceName == "" {
		BadRequest(w, "Query parameter 'interface' is required")
		return
	}
	className := r.URL.Query().Get("class")

	bag, err := h.registry.JavaBeanProps(r.Context(), appName, bundleName, interfaceName, className)
	if err != nil {
		NotFound(w, err.Error())
		return
	}

	if bag == nil {
		WriteJSONOK(w, map[string]any{"properties": nil})
		return
	}
	WriteJSONOK(w, map[string]any{"properties": bag.Map()})
}

// Confidential handles GET .../admin-objects/confidential?interface=X&class=Y.
// Returns the names of the confidential properties of the matching admin
// object.
func (h *AdminObjectHandler) Confidential(w http.ResponseWriter, r *http.Request) {
	appName, bundleName := bundleParams(r)
	interfaceName := r.URL.Query().Get("interface")
	if interfaceName == "" {
		BadRequest(w, "Query parameter 'interface' is required")
		return
	}

	keyFields := []string{interfaceName}
	if className := r.URL.Query().Get("class"); className != "" {
		keyFields = append(keyFields, className)
	}

	names, err := h.registry.ConfidentialProperties(appName, bundleName, keyFields...)
	if err != nil {
		if errors.Is(err, registry.ErrInvalidArgument) {
			BadRequest(w, err.Error())
			return
		}
		NotFound(w, err.Error())
		return
	}
	WriteJSONOK(w, map[string]any{"confidential": names})
}
