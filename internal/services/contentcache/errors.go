package contentcache

import "errors"

var (
	// ErrCacheMiss is returned when no entry exists for a (digest, kind) pair
	ErrCacheMiss = errors.New("cache entry not found")

	// ErrInvalidDigest is returned when a digest is empty or malformed
	ErrInvalidDigest = errors.New("invalid content digest")
)
