package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for resource operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// Application/bundle attributes
	AttrApplication = "resource.application"
	AttrBundle      = "resource.bundle"

	// Definition attributes
	AttrInterface = "resource.interface"
	AttrClass     = "resource.class"
	AttrName      = "resource.name"
	AttrKind      = "resource.kind"

	// Deployment attributes
	AttrDeployResult = "deploy.result"
	AttrDeployCount  = "deploy.count"

	// Naming-service attributes
	AttrNamingBackend = "naming.backend"
	AttrNamingRebind  = "naming.rebind"

	// Client attributes
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"
	AttrUsername   = "user.name"
)

// Span names for operations.
// Format: <component>.<operation>
const (
	// Registry lookups
	SpanRegistryLookup     = "registry.lookup"
	SpanRegistryProperties = "registry.properties"

	// Mail-session deployment
	SpanDeployRegister   = "deploy.register"
	SpanDeployUnregister = "deploy.unregister"

	// Naming-service operations
	SpanNamingPublish   = "naming.publish"
	SpanNamingUnpublish = "naming.unpublish"
	SpanNamingLookup    = "naming.lookup"
	SpanNamingList      = "naming.list"
)

// Application returns an attribute for the owning application name
func Application(name string) attribute.KeyValue {
	return attribute.String(AttrApplication, name)
}

// Bundle returns an attribute for the bundle name
func Bundle(name string) attribute.KeyValue {
	return attribute.String(AttrBundle, name)
}

// Interface returns an attribute for a definition interface name
func Interface(name string) attribute.KeyValue {
	return attribute.String(AttrInterface, name)
}

// Class returns an attribute for a definition implementation class
func Class(name string) attribute.KeyValue {
	return attribute.String(AttrClass, name)
}

// ResourceName returns an attribute for a JNDI-style resource name
func ResourceName(name string) attribute.KeyValue {
	return attribute.String(AttrName, name)
}

// DeployResult returns an attribute for the outcome of a deploy operation
func DeployResult(result string) attribute.KeyValue {
	return attribute.String(AttrDeployResult, result)
}

// DeployCount returns an attribute for the number of definitions affected
func DeployCount(n int) attribute.KeyValue {
	return attribute.Int(AttrDeployCount, n)
}

// NamingBackend returns an attribute for the naming backend type
func NamingBackend(backend string) attribute.KeyValue {
	return attribute.String(AttrNamingBackend, backend)
}

// NamingRebind returns an attribute for the rebind flag of a publish
func NamingRebind(rebind bool) attribute.KeyValue {
	return attribute.Bool(AttrNamingRebind, rebind)
}

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// Username returns an attribute for username
func Username(name string) attribute.KeyValue {
	return attribute.String(AttrUsername, name)
}

// StartDeploySpan starts a span for a mail-session deployment operation.
// This is a convenience function that sets common attributes.
func StartDeploySpan(ctx context.Context, operation, application string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Application(application),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "deploy."+operation, trace.WithAttributes(allAttrs...))
}

// StartNamingSpan starts a span for a naming-service operation.
func StartNamingSpan(ctx context.Context, operation, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		ResourceName(name),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "naming."+operation, trace.WithAttributes(allAttrs...))
}

// StartRegistrySpan starts a span for a registry lookup.
func StartRegistrySpan(ctx context.Context, operation, application, bundle string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Application(application),
		Bundle(bundle),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "registry."+operation, trace.WithAttributes(allAttrs...))
}
