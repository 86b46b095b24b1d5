package check

import (
	"fmt"

	"github.com/matzehuels/graphcheck/pkg/errors"
)

// Failure is the kind of problem a walk found.
type Failure uint8

const (
	FailureNone Failure = iota
	// FailureCycle means a reference is reachable from itself.
	FailureCycle
	// FailureUnsupportedType means a value cannot be encoded (JSONSafety only).
	FailureUnsupportedType
	// FailureDepthExceeded means the walk crossed a configured [Limits] bound.
	FailureDepthExceeded
)

var failureNames = [...]string{
	FailureNone:            "none",
	FailureCycle:           "cycle",
	FailureUnsupportedType: "unsupported_type",
	FailureDepthExceeded:   "depth_exceeded",
}

func (f Failure) String() string {
	if int(f) < len(failureNames) {
		return failureNames[f]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (f Failure) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Failure) UnmarshalText(text []byte) error {
	for i, name := range failureNames {
		if name == string(text) {
			*f = Failure(i)
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown failure kind %q", text)
}

// Result is the outcome of one check. Path is the diagnostic path of the
// failing node; for cycles it joins the path of first sight and the path of
// re-encounter.
type Result struct {
	Safe    bool    `json:"safe"`
	Failure Failure `json:"failure"`
	Message string  `json:"message,omitempty"`
	Path    string  `json:"path,omitempty"`
}

// Stats describes how much of the graph a walk touched.
type Stats struct {
	Nodes      int `json:"nodes"`      // values visited, leaves included
	References int `json:"references"` // distinct identities registered
	Depth      int `json:"depth"`      // deepest path depth visited
}

var safe = Result{Safe: true, Failure: FailureNone}

func cycleResult(first, again string) Result {
	path := first + cycleSeparator + again
	return Result{
		Failure: FailureCycle,
		Message: fmt.Sprintf("circular reference found at path: %s", path),
		Path:    path,
	}
}

func unsupportedResult(n node, path string) Result {
	return Result{
		Failure: FailureUnsupportedType,
		Message: fmt.Sprintf("unsupported type '%s' (%s) at path: %s", n.reason, n.v.Type(), path),
		Path:    path,
	}
}

func depthResult(limit int, path string) Result {
	return Result{
		Failure: FailureDepthExceeded,
		Message: fmt.Sprintf("maximum depth %d exceeded at path: %s", limit, path),
		Path:    path,
	}
}

func sizeResult(limit int, path string) Result {
	return Result{
		Failure: FailureDepthExceeded,
		Message: fmt.Sprintf("maximum node count %d exceeded at path: %s", limit, path),
		Path:    path,
	}
}

// Err returns nil for a safe result and a coded error otherwise, for callers
// that gate on an error rather than on the result.
func (r Result) Err() error {
	var code errors.Code
	switch r.Failure {
	case FailureNone:
		return nil
	case FailureCycle:
		code = errors.ErrCodeCircularReference
	case FailureUnsupportedType:
		code = errors.ErrCodeUnsupportedType
	case FailureDepthExceeded:
		code = errors.ErrCodeDepthExceeded
	default:
		code = errors.ErrCodeInternal
	}
	return errors.New(code, "%s", r.Message)
}
