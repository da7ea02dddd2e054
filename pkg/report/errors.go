package report

import "errors"

var (
	// ErrNotFound is returned when no report has the requested ID.
	ErrNotFound = errors.New("report not found")

	// ErrDuplicate is returned when saving a report whose ID is taken.
	ErrDuplicate = errors.New("report already exists")

	// ErrInvalidReport is returned for reports without an ID.
	ErrInvalidReport = errors.New("invalid report")
)
