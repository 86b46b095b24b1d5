package check

import (
	"encoding"
	"encoding/json"
	"math/big"
	"reflect"
)

// Kind is the node kind assigned to a value by [Classify].
type Kind uint8

const (
	// KindNull is an untyped nil or a nil pointer, map, slice or interface.
	KindNull Kind = iota
	// KindUnsupported is a value no serializer can represent. See [Reason].
	KindUnsupported
	// KindPrimitive is a bool, number or string, or a value that encodes itself.
	KindPrimitive
	// KindArray is a slice or array whose elements may hold references.
	KindArray
	// KindMap is a map with non-string keys whose element type is not the
	// empty struct.
	KindMap
	// KindSet is a map[K]struct{}.
	KindSet
	// KindBinary is a slice or array of plain numbers, []byte included.
	KindBinary
	// KindObject is a struct, a string-keyed map, or a value implementing
	// [Object].
	KindObject
	// KindReference is a non-nil pointer. Its single child is the pointee.
	KindReference
)

var kindNames = [...]string{
	KindNull:        "null",
	KindUnsupported: "unsupported",
	KindPrimitive:   "primitive",
	KindArray:       "array",
	KindMap:         "map",
	KindSet:         "set",
	KindBinary:      "binary",
	KindObject:      "object",
	KindReference:   "reference",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Leaf reports whether the walker never descends into values of this kind.
func (k Kind) Leaf() bool {
	switch k {
	case KindNull, KindUnsupported, KindPrimitive, KindBinary:
		return true
	}
	return false
}

// Reason explains why a value is [KindUnsupported].
type Reason uint8

const (
	ReasonNone Reason = iota
	// ReasonFunction is any func value, nil or not.
	ReasonFunction
	// ReasonSymbol is an opaque handle: a channel or an unsafe.Pointer.
	ReasonSymbol
	// ReasonComplex is a complex64 or complex128.
	ReasonComplex
	// ReasonBigInt is an arbitrary-precision integer (math/big.Int).
	ReasonBigInt
)

var reasonNames = [...]string{
	ReasonNone:     "",
	ReasonFunction: "function",
	ReasonSymbol:   "symbol",
	ReasonComplex:  "complex",
	ReasonBigInt:   "bigint",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

var (
	bigIntType        = reflect.TypeFor[big.Int]()
	objectType        = reflect.TypeFor[Object]()
	marshalerType     = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// node is a classified value. v is the value with interface wrappers removed.
type node struct {
	kind   Kind
	reason Reason
	v      reflect.Value
}

// Classify returns the node kind of v and, for unsupported values, the reason.
func Classify(v any) (Kind, Reason) {
	n := classify(reflect.ValueOf(v))
	return n.kind, n.reason
}

// classify is total over reflect values. Checks on the reflect kind alone come
// first so that unsupported values are rejected before any nil or identity
// handling sees them.
func classify(v reflect.Value) node {
	if !v.IsValid() {
		return node{kind: KindNull}
	}

	switch v.Kind() {
	case reflect.Func:
		return node{kind: KindUnsupported, reason: ReasonFunction, v: v}
	case reflect.Chan, reflect.UnsafePointer:
		return node{kind: KindUnsupported, reason: ReasonSymbol, v: v}
	case reflect.Complex64, reflect.Complex128:
		return node{kind: KindUnsupported, reason: ReasonComplex, v: v}
	case reflect.Interface:
		if v.IsNil() {
			return node{kind: KindNull}
		}
		return classify(v.Elem())
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return node{kind: KindNull}
		}
	}

	t := v.Type()
	if t == bigIntType || (t.Kind() == reflect.Pointer && t.Elem() == bigIntType) {
		return node{kind: KindUnsupported, reason: ReasonBigInt, v: v}
	}
	if v.CanInterface() && t.Implements(objectType) {
		return node{kind: KindObject, v: v}
	}
	if t.Implements(marshalerType) || t.Implements(textMarshalerType) {
		return node{kind: KindPrimitive, v: v}
	}

	switch v.Kind() {
	case reflect.Pointer:
		return node{kind: KindReference, v: v}
	case reflect.Map:
		if isEmptyStruct(t.Elem()) {
			return node{kind: KindSet, v: v}
		}
		if t.Key().Kind() == reflect.String {
			return node{kind: KindObject, v: v}
		}
		return node{kind: KindMap, v: v}
	case reflect.Slice, reflect.Array:
		if isNumber(t.Elem().Kind()) {
			return node{kind: KindBinary, v: v}
		}
		return node{kind: KindArray, v: v}
	case reflect.Struct:
		return node{kind: KindObject, v: v}
	}
	return node{kind: KindPrimitive, v: v}
}

func isEmptyStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
