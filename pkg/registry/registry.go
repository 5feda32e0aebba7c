package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/marmos91/resourced/pkg/descriptor"
	"github.com/marmos91/resourced/pkg/introspect"
	"github.com/marmos91/resourced/pkg/property"
)

// Registry holds the described applications known to the server and answers
// definition lookups against their bundles.
//
// Registration and lookup are thread-safe. Definitions themselves are
// treated as read-only once registered; deployment state lives in the
// deployer, never on the definitions.
//
// Example usage:
//
//	reg := registry.NewRegistry(catalog)
//	reg.AddApplication(app)
//	props, _ := reg.JavaBeanProps(ctx, "orders", "orders-web", "jakarta.jms.Queue", "")
type Registry struct {
	mu           sync.RWMutex
	applications map[string]*descriptor.Application
	introspector introspect.Service
}

// NewRegistry creates an empty registry using the given introspection
// service for property resolution. A nil service falls back to
// introspect.Null.
func NewRegistry(svc introspect.Service) *Registry {
	if svc == nil {
		svc = introspect.Null{}
	}
	return &Registry{
		applications: make(map[string]*descriptor.Application),
		introspector: svc,
	}
}

// AddApplication registers a described application, replacing any previous
// registration under the same name.
func (r *Registry) AddApplication(app *descriptor.Application) error {
	if app == nil || app.Name == "" {
		return ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications[app.Name] = app
	return nil
}

// GetApplication returns the named application.
func (r *Registry) GetApplication(name string) (*descriptor.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.applications[name]
	if !ok {
		return nil, fmt.Errorf("application %q not registered", name)
	}
	return app, nil
}

// RemoveApplication unregisters an application. Removing an unknown name is
// a no-op returning false.
func (r *Registry) RemoveApplication(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applications[name]; !ok {
		return false
	}
	delete(r.applications, name)
	return true
}

// ListApplications returns the registered application names, sorted.
func (r *Registry) ListApplications() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.applications))
	for name := range r.applications {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CountApplications returns the number of registered applications.
func (r *Registry) CountApplications() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.applications)
}

// bundle resolves an application bundle under the read lock.
func (r *Registry) bundle(appName, bundleName string) (*descriptor.Bundle, error) {
	app, err := r.GetApplication(appName)
	if err != nil {
		return nil, err
	}
	b := app.Bundle(bundleName)
	if b == nil {
		return nil, fmt.Errorf("bundle %q not found in application %q", bundleName, appName)
	}
	return b, nil
}

// AdminObjectInterfaceNames returns the interface names of every admin
// object in the bundle, document order, duplicates included.
func (r *Registry) AdminObjectInterfaceNames(appName, bundleName string) ([]string, error) {
	b, err := r.bundle(appName, bundleName)
	if err != nil {
		return nil, err
	}
	return InterfaceNames(b.AdminObjects), nil
}

// AdminObjectClassNames returns the deduplicated class names of the admin
// objects implementing interfaceName in the bundle.
func (r *Registry) AdminObjectClassNames(appName, bundleName, interfaceName string) ([]string, error) {
	b, err := r.bundle(appName, bundleName)
	if err != nil {
		return nil, err
	}
	return ClassNames(b.AdminObjects, interfaceName), nil
}

// HasAdminObject reports whether the bundle declares an admin object with
// the exact interface/class pair.
func (r *Registry) HasAdminObject(appName, bundleName, interfaceName, className string) (bool, error) {
	b, err := r.bundle(appName, bundleName)
	if err != nil {
		return false, err
	}
	return Has(b.AdminObjects, interfaceName, className)
}

// ConfidentialProperties returns the confidential property names of the
// admin object resolved by interface and optional class name.
func (r *Registry) ConfidentialProperties(appName, bundleName string, keyFields ...string) ([]string, error) {
	b, err := r.bundle(appName, bundleName)
	if err != nil {
		return nil, err
	}
	return ConfidentialPropertyNames(b.AdminObjects, keyFields...)
}

// JavaBeanProps resolves the effective properties of the admin object
// matching interfaceName (and className when given) in the bundle, merging
// declared values with introspected bean defaults. Nil when the admin
// object has no implementation class or the bundle declares no admin
// objects.
func (r *Registry) JavaBeanProps(ctx context.Context, appName, bundleName, interfaceName, className string) (*property.Bag, error) {
	b, err := r.bundle(appName, bundleName)
	if err != nil {
		return nil, err
	}
	return JavaBeanProps(ctx, b.AdminObjects, interfaceName, className, r.introspector)
}
