package check

import "reflect"

// identity names a reference-bearing value. Slices are keyed by their backing
// array and length, the same key encoding/json uses for its cycle check.
type identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// identityOf returns the identity of v. Struct values, arrays and empty slices
// have none: they cannot be reached through themselves.
func identityOf(v reflect.Value) (identity, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		return identity{typ: v.Type(), ptr: v.Pointer()}, true
	case reflect.Slice:
		if v.Len() == 0 {
			return identity{}, false
		}
		return identity{typ: v.Type(), ptr: v.Pointer(), len: v.Len()}, true
	}
	return identity{}, false
}

type visitState uint8

const (
	stateOnPath visitState = iota + 1
	stateDone
)

type visit struct {
	path  string
	state visitState
}

// registry records every identity met during one call, keyed to the path of
// first encounter. Entries move from onPath to done once all of their
// children have been walked, and are never removed.
type registry struct {
	seen map[identity]visit
}

func newRegistry() *registry {
	return &registry{seen: make(map[identity]visit)}
}

func (r *registry) lookup(id identity) (visit, bool) {
	v, ok := r.seen[id]
	return v, ok
}

func (r *registry) enter(id identity, path string) {
	r.seen[id] = visit{path: path, state: stateOnPath}
}

func (r *registry) leave(id identity) {
	v := r.seen[id]
	v.state = stateDone
	r.seen[id] = v
}

func (r *registry) len() int {
	return len(r.seen)
}
