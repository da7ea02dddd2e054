package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/pvframework/pkg/mapping"
	"github.com/dmitrymomot/pvframework/pkg/report"
	"github.com/dmitrymomot/pvframework/pkg/ruleset"
)

var (
	ErrNilResponse         = errors.New("handler returned nil response")
	ErrBinderNotApplicable = errors.New("binder not applicable")
	ErrUnsupportedMedia    = errors.New("unsupported media type")
	ErrMissingContentType  = errors.New("missing content type")
	ErrInvalidJSON         = errors.New("invalid JSON")
	ErrInvalidPath         = errors.New("invalid path parameter")
	ErrInvalidQuery        = errors.New("invalid query parameter")
)

// HTTPError is an error with a status code and a stable machine-readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest           = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrNotFound             = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrConflict             = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrUnsupportedMediaType = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
	ErrUnprocessableEntity  = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrTooManyRequests      = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
	ErrInternalServerError  = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
)

// classify maps err to the HTTPError describing it to clients.
func classify(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, ruleset.ErrRulesetNotFound), errors.Is(err, report.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ruleset.ErrDuplicateRuleset), errors.Is(err, report.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, ErrUnsupportedMedia), errors.Is(err, ErrMissingContentType):
		return ErrUnsupportedMediaType
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrInvalidPath), errors.Is(err, ErrInvalidQuery):
		return ErrBadRequest
	case errors.Is(err, mapping.ErrIterationLengthMismatch), errors.Is(err, ruleset.ErrInvalidRuleset):
		return ErrUnprocessableEntity
	default:
		return ErrInternalServerError
	}
}
