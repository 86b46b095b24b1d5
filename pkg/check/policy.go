package check

import (
	"github.com/matzehuels/graphcheck/pkg/errors"
)

// Default traversal bounds applied when a [Limits] field is zero.
const (
	// DefaultMaxDepth bounds the number of path segments from the root.
	DefaultMaxDepth = 10000

	// DefaultMaxNodes bounds the number of values visited per call, leaves
	// included.
	DefaultMaxNodes = 10_000_000
)

// Policy names.
const (
	PolicyCycle = "cycle"
	PolicyJSON  = "json"
)

// FieldMode selects which struct fields the walker descends into.
type FieldMode uint8

const (
	// AllFields walks exported and unexported fields. json tags only rename.
	AllFields FieldMode = iota
	// EncodedFields walks the fields encoding/json would emit. Unexported
	// fields stand where hidden keys would in dynamic languages: they can
	// close a cycle but never reach the encoder, so only AllFields sees them.
	EncodedFields
)

// Limits bounds a single walk. Zero selects the default, negative disables
// the bound.
type Limits struct {
	MaxDepth int `json:"max_depth,omitempty"`
	MaxNodes int `json:"max_nodes,omitempty"`
}

func (l Limits) depth() int {
	return resolveLimit(l.MaxDepth, DefaultMaxDepth)
}

func (l Limits) nodes() int {
	return resolveLimit(l.MaxNodes, DefaultMaxNodes)
}

func resolveLimit(v, def int) int {
	switch {
	case v == 0:
		return def
	case v < 0:
		return -1
	}
	return v
}

// Policy selects which failure kinds end a walk. Both canonical policies use
// the same traversal; they differ in whether unsupported values fail and in
// which struct fields are visible.
type Policy struct {
	Name        string
	Unsupported bool
	Fields      FieldMode
	Limits      Limits
}

var (
	// CycleOnly reports reference cycles only. Unsupported values are leaves.
	CycleOnly = Policy{Name: PolicyCycle, Fields: AllFields}

	// JSONSafety reports reference cycles and values that cannot be encoded
	// as JSON.
	JSONSafety = Policy{Name: PolicyJSON, Unsupported: true, Fields: EncodedFields}
)

// WithLimits returns a copy of p using l.
func (p Policy) WithLimits(l Limits) Policy {
	p.Limits = l
	return p
}

// PolicyByName returns the canonical policy called name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case PolicyCycle:
		return CycleOnly, nil
	case PolicyJSON:
		return JSONSafety, nil
	}
	return Policy{}, errors.New(errors.ErrCodeInvalidPolicy, "unknown policy %q (want %q or %q)", name, PolicyCycle, PolicyJSON)
}
