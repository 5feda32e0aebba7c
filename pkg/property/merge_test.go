package property

import (
	"reflect"
	"testing"
)

func TestMergeDeclaredWins(t *testing.T) {
	declared := FromMap(map[string]string{"a": "1"})
	introspected := FromMap(map[string]string{"a": "2", "b": "3"})

	merged := Merge(declared, introspected)

	want := map[string]string{"a": "1", "b": "3"}
	if got := merged.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMergeKeyUniverseIsUnion(t *testing.T) {
	declared := FromMap(map[string]string{"a": "1", "b": "2"})
	introspected := FromMap(map[string]string{"b": "x", "c": "3"})

	merged := Merge(declared, introspected)

	if merged.Len() != 3 {
		t.Errorf("merged has %d keys, want |union| = 3", merged.Len())
	}
	for _, k := range []string{"a", "b", "c"} {
		if !merged.Has(k) {
			t.Errorf("merged missing key %q", k)
		}
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	merged := Merge(NewBag(), NewBag())
	if merged == nil {
		t.Fatal("Merge of empty bags returned nil, want empty bag")
	}
	if merged.Len() != 0 {
		t.Errorf("merged.Len() = %d, want 0", merged.Len())
	}
}

func TestMergeNilInputs(t *testing.T) {
	merged := Merge(nil, nil)
	if merged == nil || merged.Len() != 0 {
		t.Fatal("Merge(nil, nil) must return an empty bag")
	}
}

func TestMergeEmptyValueFallsThrough(t *testing.T) {
	// A declared key with an empty value falls back to the introspected
	// default; with neither defined the value is the empty string.
	declared := FromMap(map[string]string{"host": "", "user": ""})
	introspected := FromMap(map[string]string{"host": "default.example"})

	merged := Merge(declared, introspected)

	if got := merged.Get("host"); got != "default.example" {
		t.Errorf("host = %q, want introspected default", got)
	}
	if v, ok := merged.Lookup("user"); !ok || v != "" {
		t.Errorf("user = (%q, %t), want present with empty value", v, ok)
	}
}

func TestMergeOutputSortedByKey(t *testing.T) {
	declared := NewBag()
	declared.Set("zebra", "1")
	declared.Set("apple", "2")
	introspected := NewBag()
	introspected.Set("mango", "3")

	merged := Merge(declared, introspected)

	want := []string{"apple", "mango", "zebra"}
	if got := merged.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("merged order = %v, want sorted %v", got, want)
	}
}

func TestMergeScenario(t *testing.T) {
	// Declared host overrides introspected; introspected-only port survives.
	declared := FromMap(map[string]string{"host": "declared.example"})
	introspected := FromMap(map[string]string{"host": "default.example", "port": "25"})

	merged := Merge(declared, introspected)

	want := map[string]string{"host": "declared.example", "port": "25"}
	if got := merged.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}
