// Package check detects circular references and serialization hazards in
// arbitrary Go value graphs.
//
// # Overview
//
// A value graph is whatever is reachable from a root value through pointers,
// interfaces, slices, arrays, maps and struct fields. The package walks that
// graph once and answers a single question: can the graph be handed to an
// encoder without the encoder looping forever or failing on a value it cannot
// represent?
//
// Two canonical policies share one traversal:
//
//   - [CycleOnly] reports a [FailureCycle] when a reference is reachable from
//     itself. Functions, channels and other unsupported values are plain leaves.
//   - [JSONSafety] additionally reports [FailureUnsupportedType] for functions,
//     channels, unsafe pointers, complex numbers and big integers, and only
//     looks at the struct fields encoding/json would emit.
//
// Shared references without a back edge (a "diamond") are legal:
//
//	shared := &Leaf{}
//	root := &Pair{A: shared, B: shared}
//	check.Cycles(root).Safe // true
//
// # Node kinds
//
// [Classify] maps every value to exactly one [Kind]. Unsupported kinds are
// decided before any identity-based handling, so a function or channel is
// never registered as a visited node. Values that encode themselves
// (json.Marshaler, encoding.TextMarshaler such as time.Time and
// *regexp.Regexp) and slices of plain numbers (including []byte) are leaves.
//
// Values implementing [Object] expose their properties dynamically. A Get that
// fails or panics is treated as an inert key and skipped.
//
// # Results
//
// Every call returns a [Result]. Exactly one failure is reported per call, the
// first one met in traversal order:
//
//	res := check.JSONSafe(payload)
//	if !res.Safe {
//	    log.Printf("%s: %s", res.Failure, res.Message)
//	}
//
// Map entries are visited in sorted key order, so repeated calls over the
// same unmutated input produce identical results.
//
// # Limits
//
// The walk uses an explicit stack instead of native recursion and stops with
// [FailureDepthExceeded] once a [Limits] bound is crossed. Zero limits mean the
// package defaults; negative limits disable the bound.
//
// # Concurrency
//
// Each call owns its visited registry. Concurrent calls never share mutable
// state. The input must not be mutated while a call is walking it.
package check
