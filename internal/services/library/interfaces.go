package library

import (
	"context"

	"github.com/bakerbass/guitarchops/internal/models"
)

// TrackService is the registry of ingested recordings. A track's public
// identifier is the content digest of its analyzable WAV form.
type TrackService interface {
	// Register ingests an uploaded file: transcodes it to WAV when
	// needed, computes the content digest, probes the stream metadata
	// and records the track. Registering byte-identical content twice
	// returns the same track.
	Register(ctx context.Context, sourcePath, originalName string) (*models.Track, error)

	// GetByDigest retrieves a registered track by its content digest.
	GetByDigest(ctx context.Context, digest string) (*models.Track, error)

	// List returns all registered tracks, newest first.
	List(ctx context.Context) ([]models.Track, error)
}

// TrackRepository is the data-access layer beneath TrackService.
type TrackRepository interface {
	Upsert(ctx context.Context, track *models.Track) error
	GetByDigest(ctx context.Context, digest string) (*models.Track, error)
	List(ctx context.Context) ([]models.Track, error)
}
