package check

import "reflect"

// Run walks v under policy p and returns the first failure found, or a safe
// result. It never panics on well-formed input and allocates nothing that
// outlives the call.
func Run(v any, p Policy) Result {
	res, _ := Measure(v, p)
	return res
}

// Measure is Run plus statistics about the walk.
func Measure(v any, p Policy) (Result, Stats) {
	w := newWalker(p)
	res := w.run(reflect.ValueOf(v))
	return res, w.stats
}

// Cycles reports whether v contains a reference cycle.
func Cycles(v any) Result {
	return Run(v, CycleOnly)
}

// JSONSafe reports whether v can be encoded as JSON: no cycles and no
// functions, channels, unsafe pointers, complex numbers or big integers.
func JSONSafe(v any) Result {
	return Run(v, JSONSafety)
}
