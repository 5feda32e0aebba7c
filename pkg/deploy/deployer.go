// Package deploy implements the mail-session deployer: it walks described
// applications, adapts eligible mail-session definitions into mail resources,
// and publishes them into the naming service.
//
// The deployer owns the deployed state for every binding it manages; the
// descriptor model stays immutable apart from the ResourceID stamp on
// application-scoped names.
package deploy

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/marmos91/resourced/internal/logger"
	"github.com/marmos91/resourced/internal/telemetry"
	"github.com/marmos91/resourced/pkg/descriptor"
	"github.com/marmos91/resourced/pkg/metrics"
	"github.com/marmos91/resourced/pkg/naming"
)

// ErrUnsupported is returned for lifecycle operations mail-session resources
// do not participate in (redeploy, enable, disable).
var ErrUnsupported = errors.New("operation not supported for mail-session resources")

// Deployer registers and unregisters mail-session definitions with the
// naming service.
//
// Registration is idempotent per (application, name) pair and failures on one
// definition never abort the rest of a batch. All methods are safe for
// concurrent use.
type Deployer struct {
	naming  naming.Service
	metrics *metrics.DeployerMetrics

	mu       sync.Mutex
	deployed map[string]bool
}

// NewDeployer creates a deployer publishing into svc. m may be nil when
// metrics are disabled.
func NewDeployer(svc naming.Service, m *metrics.DeployerMetrics) *Deployer {
	return &Deployer{
		naming:   svc,
		metrics:  m,
		deployed: make(map[string]bool),
	}
}

// Handles reports whether resource is a definition kind this deployer
// manages.
func (d *Deployer) Handles(resource any) bool {
	_, ok := resource.(*descriptor.MailSessionDefinition)
	return ok
}

// CanDeploy reports whether resource should be deployed at the current phase.
// Mail sessions deploy before application startup only.
func (d *Deployer) CanDeploy(postApplicationDeployment bool, resource any) bool {
	return d.Handles(resource) && !postApplicationDeployment
}

// SupportsDynamicReconfiguration reports whether deployed sessions can be
// reconfigured in place. They cannot; callers must unregister and register.
func (d *Deployer) SupportsDynamicReconfiguration() bool { return false }

// Redeploy is not supported for mail-session resources.
func (d *Deployer) Redeploy(resource any) error { return ErrUnsupported }

// Enable is not supported for mail-session resources.
func (d *Deployer) Enable(resource any) error { return ErrUnsupported }

// Disable is not supported for mail-session resources.
func (d *Deployer) Disable(resource any) error { return ErrUnsupported }

// IsDeployed reports whether the named session of an application is currently
// registered.
func (d *Deployer) IsDeployed(appName, name string) bool {
	key := naming.ResourceInfo{Name: name, ApplicationName: appName}.Key()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deployed[key]
}

// DeployedCount returns the number of bindings currently registered.
func (d *Deployer) DeployedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.deployed)
}

// RegisterMailSessions registers every eligible mail-session definition
// reachable from app: bundle-level definitions, those of EJBs, interceptors
// and managed beans, and those of nested extension bundles.
//
// Already-registered and out-of-scope definitions are skipped. Publish
// failures are logged and counted but do not stop the walk. Returns the
// number of definitions newly registered.
func (d *Deployer) RegisterMailSessions(ctx context.Context, app *descriptor.Application) int {
	ctx, span := telemetry.StartDeploySpan(ctx, "register", app.Name)
	defer span.End()

	registered := 0
	for _, msd := range app.AllMailSessions() {
		if d.registerDefinition(ctx, app.Name, msd) {
			registered++
		}
	}
	telemetry.SetAttributes(ctx, telemetry.DeployCount(registered))
	return registered
}

// UnregisterMailSessions unregisters every mail-session definition reachable
// from app that this deployer previously registered. Unpublish failures are
// logged; the deployed flag is cleared regardless. Returns the number of
// definitions whose registration was cleared.
func (d *Deployer) UnregisterMailSessions(ctx context.Context, app *descriptor.Application) int {
	ctx, span := telemetry.StartDeploySpan(ctx, "unregister", app.Name)
	defer span.End()

	cleared := 0
	for _, msd := range app.AllMailSessions() {
		if d.unregisterDefinition(ctx, app.Name, msd) {
			cleared++
		}
	}
	telemetry.SetAttributes(ctx, telemetry.DeployCount(cleared))
	return cleared
}

// registerDefinition registers a single definition. Returns true only when a
// new binding was published.
func (d *Deployer) registerDefinition(ctx context.Context, appName string, msd *descriptor.MailSessionDefinition) bool {
	if !eligibleForRegistration(msd.Name) {
		return false
	}
	if strings.HasPrefix(msd.Name, JavaAppScopePrefix) {
		msd.ResourceID = appName
	}

	info := naming.ResourceInfo{Name: msd.Name, ApplicationName: appName}
	key := info.Key()

	// Reserve the key under the lock so a concurrent register of the same
	// definition cannot double-publish; release on failure.
	d.mu.Lock()
	if d.deployed[key] {
		d.mu.Unlock()
		d.metrics.ObserveRegistration(metrics.ResultSkipped)
		return false
	}
	d.deployed[key] = true
	d.mu.Unlock()

	resource := NewMailResource(msd)
	if err := d.naming.Publish(ctx, info, resource, true); err != nil {
		d.mu.Lock()
		delete(d.deployed, key)
		d.mu.Unlock()

		telemetry.RecordError(ctx, err)
		logger.Warn("failed to publish mail session",
			"name", msd.Name,
			"application", appName,
			"error", err)
		d.metrics.ObserveRegistration(metrics.ResultFailure)
		return false
	}

	logger.Debug("registered mail session", "name", msd.Name, "application", appName)
	d.metrics.ObserveRegistration(metrics.ResultSuccess)
	return true
}

// unregisterDefinition unregisters a single definition. The deployed flag is
// cleared even when unpublishing fails, so a later register can retry the
// binding. Returns true when the definition was registered before the call.
func (d *Deployer) unregisterDefinition(ctx context.Context, appName string, msd *descriptor.MailSessionDefinition) bool {
	info := naming.ResourceInfo{Name: msd.Name, ApplicationName: appName}
	key := info.Key()

	d.mu.Lock()
	wasDeployed := d.deployed[key]
	delete(d.deployed, key)
	d.mu.Unlock()

	if !wasDeployed {
		d.metrics.ObserveUnregistration(metrics.ResultSkipped)
		return false
	}

	if err := d.naming.Unpublish(ctx, info); err != nil {
		logger.Warn("failed to unpublish mail session",
			"name", msd.Name,
			"application", appName,
			"error", err)
		d.metrics.ObserveUnregistration(metrics.ResultFailure)
		return true
	}

	logger.Debug("unregistered mail session", "name", msd.Name, "application", appName)
	d.metrics.ObserveUnregistration(metrics.ResultSuccess)
	return true
}
