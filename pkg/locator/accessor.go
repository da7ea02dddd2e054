package locator

import (
	"reflect"
	"strings"

	"github.com/dmitrymomot/pvframework/pkg/cache"
)

// Accessor resolves a named member of a value or reports that it is absent.
type Accessor interface {
	Member(value any, name string) (any, bool)
}

// AccessorFunc adapts a function to the Accessor interface.
type AccessorFunc func(value any, name string) (any, bool)

func (f AccessorFunc) Member(value any, name string) (any, bool) {
	return f(value, name)
}

// MemberLookup is implemented by data types that resolve their own members.
// The reflection accessor prefers it over field and key lookups.
type MemberLookup interface {
	LookupMember(name string) (any, bool)
}

// Reflect is the default Accessor.
var Reflect Accessor = reflectAccessor{}

type fieldKey struct {
	typ  reflect.Type
	name string
}

type fieldIndex struct {
	index []int
	found bool
}

// fieldIndexes memoizes struct member lookups. Types are a closed set in
// practice, so a small bounded cache keeps reflection off the hot path.
var fieldIndexes = cache.New[fieldKey, fieldIndex](2048)

type reflectAccessor struct{}

func (reflectAccessor) Member(value any, name string) (any, bool) {
	if value == nil {
		return nil, false
	}
	if ml, ok := value.(MemberLookup); ok {
		return ml.LookupMember(name)
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
		if rv.CanInterface() {
			if ml, ok := rv.Interface().(MemberLookup); ok {
				return ml.LookupMember(name)
			}
		}
	}

	switch rv.Kind() {
	case reflect.Map:
		keyType := rv.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		fi := fieldIndexes.Load(fieldKey{typ: rv.Type(), name: name}, func() fieldIndex {
			return lookupField(rv.Type(), name)
		})
		if !fi.found {
			return nil, false
		}
		fv, err := rv.FieldByIndexErr(fi.index)
		if err != nil {
			// nil embedded pointer on the way to a promoted field
			return nil, false
		}
		return fv.Interface(), true
	default:
		return nil, false
	}
}

// lookupField matches tags first so that data decoded from JSON can be queried
// with the same names it was written with.
func lookupField(t reflect.Type, name string) fieldIndex {
	if name == "" {
		return fieldIndex{}
	}
	var byName []int
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		if tagName(f.Tag.Get("pv")) == name || tagName(f.Tag.Get("json")) == name {
			return fieldIndex{index: f.Index, found: true}
		}
		if byName == nil && f.Name == name {
			byName = f.Index
		}
	}
	if byName != nil {
		return fieldIndex{index: byName, found: true}
	}
	return fieldIndex{}
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}
