package contentcache

import (
	"context"

	"github.com/bakerbass/guitarchops/internal/models"
)

// CacheService is the content-addressed cache for analysis artifacts.
// Keys are SHA-256 digests of the whole file's bytes, so a byte-identical
// file always hits the cache regardless of path or name.
type CacheService interface {
	// KeyForFile computes the content digest of the file at path.
	KeyForFile(path string) (string, error)

	// GetPeaks retrieves the cached PeakSet for a digest.
	// Returns ErrCacheMiss when absent.
	GetPeaks(ctx context.Context, digest string) (*models.PeakSet, error)

	// PutPeaks stores a PeakSet under the digest.
	PutPeaks(ctx context.Context, digest string, peaks *models.PeakSet) error

	// GetSegments retrieves the cached AnalysisResult for a digest.
	// Returns ErrCacheMiss when absent.
	GetSegments(ctx context.Context, digest string) (*models.AnalysisResult, error)

	// PutSegments stores an AnalysisResult under the digest.
	PutSegments(ctx context.Context, digest string, result *models.AnalysisResult) error
}

// CacheRepository is the data-access layer beneath CacheService.
type CacheRepository interface {
	// Get retrieves the record for a (digest, kind) pair.
	Get(ctx context.Context, digest string, kind models.CacheKind) (*models.AnalysisCache, error)

	// Put stores a record, replacing any existing one for the same
	// (digest, kind) pair. Content addressing makes the replacement
	// byte-identical for honest inputs, so last-writer-wins is safe.
	Put(ctx context.Context, entry *models.AnalysisCache) error
}
