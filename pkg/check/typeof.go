package check

import (
	"reflect"
	"regexp"
	"time"
)

var (
	timeType   = reflect.TypeFor[time.Time]()
	regexpType = reflect.TypeFor[regexp.Regexp]()
	errorType  = reflect.TypeFor[error]()
)

// TypeOf returns a short descriptive name for the type of v, as used in
// diagnostics: "null", "string", "number", "boolean", "function", "symbol",
// "complex", "bigint", "time", "regexp", "error", "binary", "array", "map",
// "set", "object" or "pointer".
func TypeOf(v any) string {
	n := classify(reflect.ValueOf(v))
	switch n.kind {
	case KindNull:
		return "null"
	case KindUnsupported:
		return n.reason.String()
	}

	t := n.v.Type()
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	switch {
	case base == timeType:
		return "time"
	case base == regexpType:
		return "regexp"
	case t.Implements(errorType):
		return "error"
	}

	switch n.kind {
	case KindPrimitive:
		switch k := n.v.Kind(); {
		case k == reflect.String:
			return "string"
		case k == reflect.Bool:
			return "boolean"
		case isNumber(k):
			return "number"
		}
		return "object"
	case KindReference:
		return "pointer"
	}
	return n.kind.String()
}
