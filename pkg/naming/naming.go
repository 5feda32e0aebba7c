// Package naming defines the naming service resource definitions are
// published into: a flat binding namespace keyed by application and
// JNDI-style resource name.
//
// Backends live in subpackages: memory (default, ephemeral), badgerstore
// (embedded persistent), and db (SQL-backed via GORM).
package naming

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Common errors returned by naming backends.
var (
	// ErrNotBound is returned when looking up or unpublishing a name with
	// no binding.
	ErrNotBound = errors.New("name is not bound")

	// ErrAlreadyBound is returned by Publish without rebind when the name
	// already has a binding.
	ErrAlreadyBound = errors.New("name is already bound")
)

// ResourceInfo identifies one binding: a resource name qualified by the
// application that owns it.
type ResourceInfo struct {
	// Name is the full JNDI-style resource name, e.g. "java:app/mail/notify".
	Name string `json:"name"`

	// ApplicationName is the owning application. Empty for global bindings
	// published outside any application scope.
	ApplicationName string `json:"application_name,omitempty"`
}

// Key returns the namespace key of the binding. The separator cannot occur
// in either component.
func (ri ResourceInfo) Key() string {
	return ri.ApplicationName + "\x00" + ri.Name
}

// Entry is one published binding.
type Entry struct {
	ResourceInfo
	// Payload is the published object, stored as JSON.
	Payload json.RawMessage `json:"payload"`

	PublishedAt time.Time `json:"published_at"`
}

// Decode unmarshals the entry payload into v.
func (e *Entry) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// Service publishes named objects for later lookup.
//
// Implementations are safe for concurrent use. Publish and Unpublish are
// the only operations the deployer blocks on; their failures are reported
// synchronously and are non-fatal to batch deployment.
type Service interface {
	// Publish binds payload (marshaled to JSON) under info. With rebind
	// false an existing binding is ErrAlreadyBound; with rebind true it is
	// replaced.
	Publish(ctx context.Context, info ResourceInfo, payload any, rebind bool) error

	// Unpublish removes the binding. An unbound name is ErrNotBound.
	Unpublish(ctx context.Context, info ResourceInfo) error

	// Lookup returns the binding for info, or ErrNotBound.
	Lookup(ctx context.Context, info ResourceInfo) (*Entry, error)

	// List returns all bindings ordered by (application, name).
	List(ctx context.Context) ([]Entry, error)

	// Close releases backend resources.
	Close() error
}

// EncodePayload marshals a payload the way backends store it. Shared by
// implementations so all of them fail identically on unmarshalable values.
func EncodePayload(payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return data, nil
}
