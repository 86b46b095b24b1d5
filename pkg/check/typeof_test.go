package check

import (
	"errors"
	"math/big"
	"regexp"
	"testing"
	"time"
)

func TestTypeOf(t *testing.T) {
	n := 1
	tests := []struct {
		value any
		want  string
	}{
		{nil, "null"},
		{"s", "string"},
		{true, "boolean"},
		{3.5, "number"},
		{func() {}, "function"},
		{make(chan struct{}), "symbol"},
		{complex(1, 1), "complex"},
		{big.NewInt(2), "bigint"},
		{time.Now(), "time"},
		{regexp.MustCompile("a"), "regexp"},
		{errors.New("boom"), "error"},
		{[]byte("x"), "binary"},
		{[]string{"x"}, "array"},
		{map[int]int{}, "map"},
		{map[int]struct{}{}, "set"},
		{map[string]any{}, "object"},
		{struct{}{}, "object"},
		{&n, "pointer"},
	}

	for _, tt := range tests {
		if got := TypeOf(tt.value); got != tt.want {
			t.Errorf("TypeOf(%T) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
