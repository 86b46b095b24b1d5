package check

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSortedEntries(t *testing.T) {
	tests := []struct {
		name string
		m    any
		want []any
	}{
		{"strings", map[string]int{"b": 2, "a": 1, "c": 3}, []any{"a", "b", "c"}},
		{"negative ints", map[int]bool{3: true, -1: true, 0: false}, []any{-1, 0, 3}},
		{"bools", map[bool]int{true: 1, false: 0}, []any{false, true}},
		{"arrays", map[[2]int]int{{1, 2}: 0, {1, 1}: 0, {0, 9}: 0}, []any{[2]int{0, 9}, [2]int{1, 1}, [2]int{1, 2}}},
		{"mixed interface keys", map[any]int{"b": 0, 2: 0, nil: 0, 1: 0, "a": 0}, []any{nil, 1, 2, "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := sortedEntries(reflect.ValueOf(tt.m))
			got := make([]any, len(entries))
			for i, e := range entries {
				got[i] = e.key.Interface()
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("sortedEntries() keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
