package memory

import (
	"reflect"
)

// fieldSet records the names of fields that hold at least one number.
type fieldSet map[string]struct{}

func (fs fieldSet) has(field string) bool {
	_, found := fs[field]
	return found
}

func (fs fieldSet) clone() fieldSet {
	out := make(fieldSet, len(fs))
	for f := range fs {
		out[f] = struct{}{}
	}
	return out
}

/*
addNumeric walks v the way bleve's dynamic mapping does and records every
field path indexed as a number. Nested maps produce dotted paths and slice
elements share the path of their slice.
*/
func (fs fieldSet) addNumeric(path string, v interface{}) {
	val := reflect.ValueOf(v)
	if !val.IsValid() {
		return
	}
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		fs[path] = struct{}{}
	case reflect.Ptr:
		if !val.IsNil() {
			fs.addNumeric(path, val.Elem().Interface())
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			fs.addNumeric(path, val.Index(i).Interface())
		}
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return
		}
		for _, key := range val.MapKeys() {
			name := key.String()
			if path != "" {
				name = path + "." + name
			}
			fs.addNumeric(name, val.MapIndex(key).Interface())
		}
	}
}
