package introspect

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/marmos91/resourced/pkg/descriptor"
	"github.com/marmos91/resourced/pkg/property"
)

// Catalog is a Service backed by registered bean prototypes.
//
// A prototype is a Go struct value registered under a class name. Its
// exported fields become bean properties: the property name comes from the
// `bean` struct tag when present, otherwise from the field name with its
// first letter lowercased (JavaBean convention). The default value is the
// prototype's field value; a `default` tag overrides a zero field value.
// Fields tagged `bean:"-"` are skipped.
//
// Example:
//
//	type QueueBean struct {
//	    Destination string `bean:"destination" default:"work"`
//	    MaxRetries  int    `bean:"maxRetries"`
//	    internal    bool   // unexported, ignored
//	}
//	cat := introspect.NewCatalog()
//	cat.Register("com.example.QueueImpl", QueueBean{MaxRetries: 3})
type Catalog struct {
	mu         sync.RWMutex
	prototypes map[string]any
}

// NewCatalog creates an empty bean catalog.
func NewCatalog() *Catalog {
	return &Catalog{prototypes: make(map[string]any)}
}

// Register stores a prototype under the given class name, replacing any
// previous registration.
func (c *Catalog) Register(className string, prototype any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prototypes[className] = prototype
}

// Classes returns the registered class names, in no particular order.
func (c *Catalog) Classes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.prototypes))
	for name := range c.prototypes {
		out = append(out, name)
	}
	return out
}

// Introspect implements Service. An unregistered class yields an empty bag.
func (c *Catalog) Introspect(ctx context.Context, className string, _ []descriptor.ConfigProperty) (*property.Bag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	prototype, ok := c.prototypes[className]
	c.mu.RUnlock()

	bag := property.NewBag()
	if !ok {
		return bag, nil
	}

	v := reflect.ValueOf(prototype)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return bag, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("prototype for class %q is %s, want struct", className, v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Tag.Get("bean")
		if name == "-" {
			continue
		}
		if name == "" {
			name = lowerFirst(field.Name)
		}

		value := formatFieldValue(v.Field(i))
		if value == "" {
			value = field.Tag.Get("default")
		}
		bag.Set(name, value)
	}
	return bag, nil
}

// lowerFirst lowercases the first rune of a field name, matching the
// JavaBean property naming convention.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// formatFieldValue renders a field value as a property string. Zero values
// render as "" so tagged defaults can take over.
func formatFieldValue(v reflect.Value) string {
	if v.IsZero() {
		return ""
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%g", v.Float())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
