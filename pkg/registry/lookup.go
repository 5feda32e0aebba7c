// Package registry resolves resource definitions: pure lookups over ordered
// definition slices, property resolution through declared/introspected
// merging, and a thread-safe registry of described applications.
package registry

import (
	"context"

	"github.com/marmos91/resourced/pkg/descriptor"
	"github.com/marmos91/resourced/pkg/introspect"
	"github.com/marmos91/resourced/pkg/property"
)

// Find resolves one definition by interface name and optional class name.
//
// An empty className acts as a wildcard: the first definition with a
// matching interface wins, in slice order. Because definition slices keep
// descriptor document order, first-match is deterministic; callers should
// still pass a class name when interface names are not unique.
//
// An empty definition slice is "none found", not an error: Find returns the
// zero value with found=false and a nil error. A non-empty slice with no
// match returns a *NotFoundError. An empty interfaceName returns
// ErrInvalidArgument.
func Find[D descriptor.Definition](defs []D, interfaceName, className string) (def D, found bool, err error) {
	var zero D
	if interfaceName == "" {
		return zero, false, ErrInvalidArgument
	}
	if len(defs) == 0 {
		return zero, false, nil
	}

	for _, d := range defs {
		if d.DefinitionInterface() == interfaceName &&
			(className == "" || className == d.DefinitionClass()) {
			return d, true, nil
		}
	}
	return zero, false, &NotFoundError{InterfaceName: interfaceName, ClassName: className}
}

// InterfaceNames returns the interface name of every definition, in slice
// order, duplicates included. Returns nil for an empty slice.
func InterfaceNames[D descriptor.Definition](defs []D) []string {
	if len(defs) == 0 {
		return nil
	}
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.DefinitionInterface()
	}
	return out
}

// ClassNames returns the deduplicated class names of every definition whose
// interface matches interfaceName. Returns nil for an empty slice.
func ClassNames[D descriptor.Definition](defs []D, interfaceName string) []string {
	if len(defs) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, d := range defs {
		if d.DefinitionInterface() != interfaceName {
			continue
		}
		class := d.DefinitionClass()
		if _, dup := seen[class]; dup {
			continue
		}
		seen[class] = struct{}{}
		out = append(out, class)
	}
	return out
}

// Has reports whether a definition matches both interface and class name
// exactly. There is no wildcard here: both keys are required and an empty
// key is ErrInvalidArgument.
func Has[D descriptor.Definition](defs []D, interfaceName, className string) (bool, error) {
	if interfaceName == "" || className == "" {
		return false, ErrInvalidArgument
	}
	for _, d := range defs {
		if d.DefinitionInterface() == interfaceName && d.DefinitionClass() == className {
			return true, nil
		}
	}
	return false, nil
}

// ConfidentialPropertyNames returns the names of properties flagged
// confidential on the definition resolved by keyFields: keyFields[0] is the
// required interface name, keyFields[1] the optional class name.
//
// A lookup miss over an empty definition set yields an empty list; a miss
// over a non-empty set is a *NotFoundError, matching Find.
func ConfidentialPropertyNames[D descriptor.Definition](defs []D, keyFields ...string) ([]string, error) {
	if len(keyFields) == 0 || keyFields[0] == "" {
		return nil, ErrInvalidArgument
	}
	interfaceName := keyFields[0]
	className := ""
	if len(keyFields) > 1 {
		className = keyFields[1]
	}

	def, found, err := Find(defs, interfaceName, className)
	if err != nil {
		return nil, err
	}

	names := []string{}
	if !found {
		return names, nil
	}
	for _, p := range def.ConfigProperties() {
		if p.Confidential {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// JavaBeanProps resolves the effective properties of one definition:
// declared descriptor values merged with defaults introspected from the
// definition's class.
//
// The merge only runs for definitions with a non-empty class name. A
// definition without a class resolves to nil rather than an empty bag,
// since downstream callers branch on "no properties" versus
// "empty properties". An empty definition set also resolves to nil with no
// error; a miss over a non-empty set is a *NotFoundError.
func JavaBeanProps[D descriptor.Definition](
	ctx context.Context,
	defs []D,
	interfaceName, className string,
	svc introspect.Service,
) (*property.Bag, error) {
	def, found, err := Find(defs, interfaceName, className)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	class := def.DefinitionClass()
	if class == "" {
		return nil, nil
	}

	declared := def.ConfigProperties()
	declaredBag := property.NewBag()
	for _, p := range declared {
		declaredBag.Set(p.Name, p.Value)
	}

	introspected, err := svc.Introspect(ctx, class, declared)
	if err != nil {
		return nil, err
	}
	return property.Merge(declaredBag, introspected), nil
}
