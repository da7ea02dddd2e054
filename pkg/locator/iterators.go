package locator

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Elements iterates slices, arrays and maps. Slice elements are labelled
// "[i]"; map entries are labelled "[key]" and visited in key order.
// Any other value has no elements.
func Elements(value any) iter.Seq2[any, string] {
	return Entries("[%v]")(value)
}

// Entries returns an IterFunc like Elements whose labels are built with
// format, which receives the index or map key, e.g. "[contract_id=%v]".
func Entries(format string) IterFunc {
	return func(value any) iter.Seq2[any, string] {
		return func(yield func(any, string) bool) {
			rv := reflect.ValueOf(value)
			for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
				if rv.IsNil() {
					return
				}
				rv = rv.Elem()
			}

			switch rv.Kind() {
			case reflect.Slice, reflect.Array:
				for i := range rv.Len() {
					if !yield(rv.Index(i).Interface(), fmt.Sprintf(format, i)) {
						return
					}
				}
			case reflect.Map:
				for _, k := range sortedKeys(rv) {
					if !yield(rv.MapIndex(k).Interface(), fmt.Sprintf(format, k.Interface())) {
						return
					}
				}
			}
		}
	}
}

func sortedKeys(m reflect.Value) []reflect.Value {
	type entry struct {
		key  reflect.Value
		name string
	}
	entries := make([]entry, 0, m.Len())
	for _, k := range m.MapKeys() {
		entries = append(entries, entry{key: k, name: fmt.Sprint(k.Interface())})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.name, b.name)
	})
	keys := make([]reflect.Value, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}
