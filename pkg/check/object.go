package check

import (
	"reflect"
	"strings"
	"sync"
)

// Object is implemented by values that expose their properties at run time
// rather than as struct fields, such as lazily loaded records or dynamic
// documents.
//
// Keys returns the property names in enumeration order. Get returns the
// current value of a property. A Get that returns an error or panics marks
// the property as inert: the walker skips it without reporting a failure.
type Object interface {
	Keys() []string
	Get(key string) (any, error)
}

// objectKeys calls o.Keys, treating a panic as an object without keys.
func objectKeys(o Object) (keys []string) {
	defer func() {
		if recover() != nil {
			keys = nil
		}
	}()
	return o.Keys()
}

// readKey calls o.Get, absorbing errors and panics from the accessor.
func readKey(o Object, key string) (v any, ok bool) {
	defer func() {
		if recover() != nil {
			v, ok = nil, false
		}
	}()
	v, err := o.Get(key)
	if err != nil {
		return nil, false
	}
	return v, true
}

// field is a struct field the walker descends into.
type field struct {
	index int
	name  string
}

type fieldKey struct {
	t    reflect.Type
	mode FieldMode
}

var fieldCache sync.Map // map[fieldKey][]field

// structFields returns the walked fields of t in declaration order.
func structFields(t reflect.Type, mode FieldMode) []field {
	key := fieldKey{t: t, mode: mode}
	if f, ok := fieldCache.Load(key); ok {
		return f.([]field)
	}
	f, _ := fieldCache.LoadOrStore(key, typeFields(t, mode))
	return f.([]field)
}

func typeFields(t reflect.Type, mode FieldMode) []field {
	fields := make([]field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")

		if mode == EncodedFields {
			if tag == "-" {
				continue
			}
			if !sf.IsExported() && !embedsStruct(sf) {
				continue
			}
		}

		name, _, _ := strings.Cut(tag, ",")
		if name == "" || tag == "-" {
			name = sf.Name
		}
		fields = append(fields, field{index: i, name: name})
	}
	return fields
}

// embedsStruct reports whether sf is an embedded struct (or pointer to one).
// encoding/json promotes the exported fields of such embeddings even when the
// embedded type itself is unexported.
func embedsStruct(sf reflect.StructField) bool {
	if !sf.Anonymous {
		return false
	}
	t := sf.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
