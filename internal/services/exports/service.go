package exports

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/pkg/ffmpeg"
	"github.com/bakerbass/guitarchops/pkg/logger"
)

// Cutter extracts [start, end) seconds from inputPath into outputPath.
// Split out so tests can run without an ffmpeg binary.
type Cutter func(inputPath, outputPath string, start, end float64) error

// service implements ExportService
type service struct {
	repo    ExportRepository
	backend Backend
	cut     Cutter
	tempDir string
}

// NewService creates a new export service.
func NewService(repo ExportRepository, backend Backend, tempDir string) ExportService {
	return &service{repo: repo, backend: backend, cut: ffmpeg.ExportRange, tempDir: tempDir}
}

// NewServiceWithCutter creates an export service with a custom cutter.
func NewServiceWithCutter(repo ExportRepository, backend Backend, tempDir string, cut Cutter) ExportService {
	return &service{repo: repo, backend: backend, cut: cut, tempDir: tempDir}
}

// ExportSegment cuts the segment range and persists it.
func (s *service) ExportSegment(ctx context.Context, track *models.Track, seg models.Segment) (*models.Export, error) {
	if seg.End <= seg.Start || seg.Start < 0 {
		return nil, fmt.Errorf("%w: [%.3f, %.3f)", ErrInvalidSegment, seg.Start, seg.End)
	}

	filename := fmt.Sprintf("%s_%s.wav", track.Digest[:12], seg.ID)
	tmpPath := filepath.Join(s.tempDir, filename)
	if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}

	if err := s.cut(track.Path, tmpPath, seg.Start, seg.End); err != nil {
		return nil, fmt.Errorf("cutting segment %s: %w", seg.ID, err)
	}

	stored, err := s.backend.Store(ctx, filename, tmpPath)
	if err != nil {
		return nil, fmt.Errorf("storing export %s: %w", filename, err)
	}

	export := &models.Export{
		TrackDigest: track.Digest,
		SegmentID:   seg.ID,
		Filename:    filename,
		Location:    stored.Location,
		URL:         stored.URL,
		Start:       seg.Start,
		End:         seg.End,
	}
	if err := s.repo.Upsert(ctx, export); err != nil {
		return nil, fmt.Errorf("recording export: %w", err)
	}

	log := logger.With("exports")
	log.Info().Str("file", filename).
		Str("segment", seg.ID).Msg("segment exported")
	return export, nil
}

// GetByFilename retrieves an export record by filename
func (s *service) GetByFilename(ctx context.Context, filename string) (*models.Export, error) {
	return s.repo.GetByFilename(ctx, filename)
}

// Open returns the exported file's content for download
func (s *service) Open(ctx context.Context, export *models.Export) (io.ReadCloser, error) {
	return s.backend.Open(ctx, export.Location)
}

// List returns all exports for a track, newest first
func (s *service) List(ctx context.Context, trackDigest string) ([]models.Export, error) {
	return s.repo.ListByDigest(ctx, trackDigest)
}
