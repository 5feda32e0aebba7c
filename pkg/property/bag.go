// Package property implements the ordered property bag used to carry
// JavaBean-style configuration properties of resource definitions, and the
// merge operation that combines declared descriptor values with introspected
// bean defaults.
package property

import "sort"

// Bag is an ordered mapping from property name to string value.
//
// Names are unique: setting an existing name overwrites its value while
// keeping the original position. Iteration order is insertion order, which
// makes output deterministic for callers that render or serialize bags.
//
// The zero value is not usable; create bags with NewBag.
type Bag struct {
	names  []string
	values map[string]string
}

// NewBag creates an empty property bag.
func NewBag() *Bag {
	return &Bag{values: make(map[string]string)}
}

// Set stores a property value. An existing name is overwritten in place.
func (b *Bag) Set(name, value string) {
	if _, ok := b.values[name]; !ok {
		b.names = append(b.names, name)
	}
	b.values[name] = value
}

// Get returns the value for name, or "" when the name is absent.
// Use Lookup to distinguish an absent name from an empty value.
func (b *Bag) Get(name string) string {
	return b.values[name]
}

// Lookup returns the value for name and whether the name is present.
func (b *Bag) Lookup(name string) (string, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Has reports whether the bag contains name.
func (b *Bag) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Delete removes a property. Removing an absent name is a no-op.
func (b *Bag) Delete(name string) {
	if _, ok := b.values[name]; !ok {
		return
	}
	delete(b.values, name)
	for i, n := range b.names {
		if n == name {
			b.names = append(b.names[:i], b.names[i+1:]...)
			break
		}
	}
}

// Names returns the property names in insertion order.
// The returned slice is a copy.
func (b *Bag) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Len returns the number of properties in the bag.
func (b *Bag) Len() int {
	return len(b.names)
}

// Range calls fn for every property in insertion order. Iteration stops when
// fn returns false.
func (b *Bag) Range(fn func(name, value string) bool) {
	for _, n := range b.names {
		if !fn(n, b.values[n]) {
			return
		}
	}
}

// Clone returns a deep copy of the bag preserving insertion order.
func (b *Bag) Clone() *Bag {
	out := NewBag()
	for _, n := range b.names {
		out.Set(n, b.values[n])
	}
	return out
}

// Map returns the bag contents as a plain map. Insertion order is lost.
func (b *Bag) Map() map[string]string {
	out := make(map[string]string, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// FromMap builds a bag from a plain map with names sorted for determinism.
func FromMap(m map[string]string) *Bag {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)

	out := NewBag()
	for _, n := range names {
		out.Set(n, m[n])
	}
	return out
}
