// Package introspect derives default property values for bean classes.
//
// The registry consumes the Service interface when merging declared
// descriptor properties with bean defaults; the shipped implementation is a
// catalog of registered Go prototypes, but anything able to answer "what are
// the default properties of class X" satisfies the contract.
package introspect

import (
	"context"

	"github.com/marmos91/resourced/pkg/descriptor"
	"github.com/marmos91/resourced/pkg/property"
)

// Service derives default property values for a bean class.
type Service interface {
	// Introspect returns the default property values discoverable from the
	// bean shape of className. The declared properties are supplied for
	// implementations that want to scope introspection to them; returning
	// additional defaults is fine, the caller merges by key union.
	//
	// An unknown class is not an error: implementations return an empty
	// bag so merging degrades to the declared values.
	Introspect(ctx context.Context, className string, declared []descriptor.ConfigProperty) (*property.Bag, error)
}

// Null is a Service that knows no classes. Useful as a default and in tests.
type Null struct{}

// Introspect implements Service with an always-empty result.
func (Null) Introspect(_ context.Context, _ string, _ []descriptor.ConfigProperty) (*property.Bag, error) {
	return property.NewBag(), nil
}
