package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RunID records the validation run identifier under the key "run_id".
// If id is empty, it returns an empty Attr.
func RunID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("run_id", id)
}

// RequestID records the HTTP request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Validator records the validator name under the key "validator".
func Validator(name string) slog.Attr {
	return slog.String("validator", name)
}

// Mapping records the mapping description under the key "mapping".
func Mapping(m any) slog.Attr {
	return slog.Any("mapping", m)
}

// Location records where in the instance a value was found, under the key "location".
// If location is empty, it returns an empty Attr.
func Location(location string) slog.Attr {
	if location == "" {
		return slog.Attr{}
	}
	return slog.String("location", location)
}

// ErrorID records a stable error identifier under the key "error_id".
func ErrorID(id int) slog.Attr {
	return slog.Int("error_id", id)
}

// Kind records the kind of a finding under the key "kind".
func Kind(kind any) slog.Attr {
	return slog.Any("kind", kind)
}

// Mode records the mode of a registration under the key "mode".
func Mode(mode any) slog.Attr {
	return slog.Any("mode", mode)
}

// Instance records the identity key of a validated instance under the key "instance".
func Instance(key string) slog.Attr {
	return slog.String("instance", key)
}

// Count records a count under the given key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
