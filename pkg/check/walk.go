package check

import "reflect"

// child is a pending node: a value, the path it was reached by, and its
// depth in path segments. Reference hops keep their parent's path and depth.
// Children of an [Object] carry the object and key instead of a value; the
// property is read only when the walk reaches it.
type child struct {
	v     reflect.Value
	path  string
	depth int

	obj Object
	key string
}

// frame is an expanded composite node on the work stack. Its children are
// produced one at a time by next, so a wide array costs no more than its
// own backing storage.
type frame struct {
	id      identity
	tracked bool

	kind  Kind
	v     reflect.Value
	path  string
	depth int

	entries []mapEntry // maps, sets and string-keyed maps, sorted by key
	fields  []field    // structs
	obj     Object
	keys    []string // Object properties

	n, i int
}

// next returns the child at the cursor and advances it.
func (f *frame) next() child {
	i := f.i
	f.i++
	d := f.depth + 1

	switch f.kind {
	case KindReference:
		return child{v: f.v.Elem(), path: f.path, depth: f.depth}
	case KindArray:
		return child{v: f.v.Index(i), path: indexPath(f.path, i), depth: d}
	case KindMap:
		e := f.entries[i/2]
		if i%2 == 0 {
			return child{v: e.key, path: mapKeyPath(f.path, i/2), depth: d}
		}
		return child{v: e.value, path: mapValuePath(f.path, i/2), depth: d}
	case KindSet:
		return child{v: f.entries[i].key, path: setPath(f.path, i), depth: d}
	}

	// KindObject
	switch {
	case f.obj != nil:
		key := f.keys[i]
		return child{obj: f.obj, key: key, path: fieldPath(f.path, key), depth: d}
	case f.v.Kind() == reflect.Map:
		e := f.entries[i]
		return child{v: e.value, path: fieldPath(f.path, e.key.String()), depth: d}
	}
	fd := f.fields[i]
	return child{v: f.v.Field(fd.index), path: fieldPath(f.path, fd.name), depth: d}
}

// walker performs one depth-first walk. It is created per call and never
// shared.
type walker struct {
	policy   Policy
	maxDepth int
	maxNodes int
	seen     *registry
	stack    []frame
	stats    Stats
}

func newWalker(p Policy) *walker {
	return &walker{
		policy:   p,
		maxDepth: p.Limits.depth(),
		maxNodes: p.Limits.nodes(),
		seen:     newRegistry(),
	}
}

// run walks the graph below root and returns the first failure, or a safe
// result when every reachable node passed.
func (w *walker) run(root reflect.Value) Result {
	defer func() { w.stats.References = w.seen.len() }()

	if res, stop := w.visit(child{v: root, path: rootPath}); stop {
		return res
	}
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		if top.i == top.n {
			if top.tracked {
				w.seen.leave(top.id)
			}
			w.stack[len(w.stack)-1] = frame{}
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		c := top.next()
		if c.obj != nil {
			v, ok := readKey(c.obj, c.key)
			if !ok {
				continue
			}
			c.v = reflect.ValueOf(v)
		}
		if res, stop := w.visit(c); stop {
			return res
		}
	}
	return safe
}

// visit classifies c and either settles it as a leaf, reports a failure, or
// pushes a frame for its children. Every value reached for the first time
// counts against the node limit, leaves included.
func (w *walker) visit(c child) (Result, bool) {
	n := classify(c.v)

	var (
		id      identity
		tracked bool
	)
	if !n.kind.Leaf() {
		id, tracked = identityOf(n.v)
		if tracked {
			if prev, ok := w.seen.lookup(id); ok {
				if prev.state == stateOnPath {
					return cycleResult(prev.path, c.path), true
				}
				// Reached again through another branch, not through itself.
				return safe, false
			}
		}
		if w.maxDepth >= 0 && c.depth > w.maxDepth {
			return depthResult(w.maxDepth, c.path), true
		}
	}

	if w.maxNodes >= 0 && w.stats.Nodes >= w.maxNodes {
		return sizeResult(w.maxNodes, c.path), true
	}
	w.stats.Nodes++
	if c.depth > w.stats.Depth {
		w.stats.Depth = c.depth
	}

	if n.kind.Leaf() {
		if n.kind == KindUnsupported && w.policy.Unsupported {
			return unsupportedResult(n, c.path), true
		}
		return safe, false
	}

	if tracked {
		w.seen.enter(id, c.path)
	}
	w.stack = append(w.stack, w.expand(n, c, id, tracked))
	return safe, false
}

// expand builds the frame of a composite node. Only maps and sets list
// their entries up front, since their order comes from sorting.
func (w *walker) expand(n node, c child, id identity, tracked bool) frame {
	v := n.v
	f := frame{id: id, tracked: tracked, kind: n.kind, v: v, path: c.path, depth: c.depth}

	switch n.kind {
	case KindReference:
		f.n = 1
	case KindArray:
		f.n = v.Len()
	case KindMap:
		f.entries = sortedEntries(v)
		f.n = 2 * len(f.entries)
	case KindSet:
		f.entries = sortedEntries(v)
		f.n = len(f.entries)
	case KindObject:
		switch {
		case v.CanInterface() && v.Type().Implements(objectType):
			f.obj = v.Interface().(Object)
			f.keys = objectKeys(f.obj)
			f.n = len(f.keys)
		case v.Kind() == reflect.Map:
			f.entries = sortedEntries(v)
			f.n = len(f.entries)
		default:
			f.fields = structFields(v.Type(), w.policy.Fields)
			f.n = len(f.fields)
		}
	}
	return f
}
