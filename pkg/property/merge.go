package property

import "sort"

// Merge combines declared descriptor values with introspected bean defaults.
//
// The key universe of the result is the union of both input key sets; no
// other key is ever introduced. For each key the declared value wins when it
// is non-empty, then the introspected default, then the empty string. The
// result is ordered sorted-by-key so merged output is reproducible
// regardless of the insertion order of the inputs.
//
// Merge is a total function: nil inputs are treated as empty bags and the
// result of merging two empty bags is an empty bag, never nil.
func Merge(declared, introspected *Bag) *Bag {
	universe := make(map[string]struct{})
	if declared != nil {
		for _, n := range declared.names {
			universe[n] = struct{}{}
		}
	}
	if introspected != nil {
		for _, n := range introspected.names {
			universe[n] = struct{}{}
		}
	}

	keys := make([]string, 0, len(universe))
	for k := range universe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := NewBag()
	for _, k := range keys {
		switch {
		case declared != nil && declared.Get(k) != "":
			merged.Set(k, declared.Get(k))
		case introspected != nil && introspected.Get(k) != "":
			merged.Set(k, introspected.Get(k))
		default:
			merged.Set(k, "")
		}
	}
	return merged
}
