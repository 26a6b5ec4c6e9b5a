package exports

import (
	"context"
	"io"

	"github.com/bakerbass/guitarchops/internal/models"
)

// ExportService cuts segment ranges out of registered tracks into
// standalone WAV files.
type ExportService interface {
	// ExportSegment writes the segment's [Start, End) range to the
	// configured backend and records it. Re-exporting the same segment
	// overwrites the previous record.
	ExportSegment(ctx context.Context, track *models.Track, seg models.Segment) (*models.Export, error)

	// GetByFilename retrieves an export record by its filename.
	GetByFilename(ctx context.Context, filename string) (*models.Export, error)

	// Open returns the exported file's content for download.
	Open(ctx context.Context, export *models.Export) (io.ReadCloser, error)

	// List returns all exports for a track, newest first.
	List(ctx context.Context, trackDigest string) ([]models.Export, error)
}

// ExportRepository is the data-access layer beneath ExportService.
type ExportRepository interface {
	Upsert(ctx context.Context, export *models.Export) error
	GetByFilename(ctx context.Context, filename string) (*models.Export, error)
	ListByDigest(ctx context.Context, trackDigest string) ([]models.Export, error)
}

// StoredObject is the result of persisting an exported file.
type StoredObject struct {
	// Location is backend-specific: a filesystem path or an S3 key.
	Location string
	// URL is where clients download the file from.
	URL string
}

// Backend persists exported files. Implementations exist for the local
// filesystem and for S3.
type Backend interface {
	Store(ctx context.Context, filename, sourcePath string) (*StoredObject, error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
