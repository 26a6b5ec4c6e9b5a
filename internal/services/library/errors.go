package library

import "errors"

var (
	// ErrTrackNotFound is returned when no track exists for a digest
	ErrTrackNotFound = errors.New("track not found")

	// ErrInvalidDigest is returned when a digest is empty or malformed
	ErrInvalidDigest = errors.New("invalid track digest")
)
