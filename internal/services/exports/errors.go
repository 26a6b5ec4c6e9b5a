package exports

import "errors"

var (
	// ErrExportNotFound is returned when no export exists for a filename
	ErrExportNotFound = errors.New("export not found")

	// ErrInvalidSegment is returned when a segment's range is unusable
	ErrInvalidSegment = errors.New("invalid segment range")
)
