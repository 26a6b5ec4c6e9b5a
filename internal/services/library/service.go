package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bakerbass/guitarchops/internal/audio"
	"github.com/bakerbass/guitarchops/internal/models"
	"github.com/bakerbass/guitarchops/pkg/ffmpeg"
	"github.com/bakerbass/guitarchops/pkg/logger"
)

// Digester computes a content digest for a file. Satisfied by the
// content cache service.
type Digester interface {
	KeyForFile(path string) (string, error)
}

// Converter transcodes an input file to WAV. Split out so tests can run
// without an ffmpeg binary.
type Converter func(inputPath, outputPath string) error

// service implements TrackService
type service struct {
	repo       TrackRepository
	digester   Digester
	convert    Converter
	storageDir string
}

// NewService creates a new track service. Converted and registered WAV
// files are kept under storageDir, named by content digest.
func NewService(repo TrackRepository, digester Digester, storageDir string) TrackService {
	return &service{
		repo:       repo,
		digester:   digester,
		convert:    ffmpeg.ConvertToWAV,
		storageDir: storageDir,
	}
}

// NewServiceWithConverter creates a track service with a custom converter.
func NewServiceWithConverter(repo TrackRepository, digester Digester, storageDir string, convert Converter) TrackService {
	return &service{
		repo:       repo,
		digester:   digester,
		convert:    convert,
		storageDir: storageDir,
	}
}

// Register ingests an uploaded file and records the resulting track.
func (s *service) Register(ctx context.Context, sourcePath, originalName string) (*models.Track, error) {
	log := logger.With("library")

	wavPath := sourcePath
	if !strings.EqualFold(filepath.Ext(sourcePath), ".wav") {
		base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
		wavPath = filepath.Join(s.storageDir, base+".wav")
		log.Debug().Str("source", sourcePath).Str("wav", wavPath).Msg("transcoding upload to WAV")
		if err := s.convert(sourcePath, wavPath); err != nil {
			return nil, fmt.Errorf("converting %s to WAV: %w", originalName, err)
		}
		// The staged source is no longer needed once the WAV exists.
		if err := os.Remove(sourcePath); err != nil {
			log.Warn().Err(err).Str("source", sourcePath).Msg("removing staged upload failed")
		}
	}

	digest, err := s.digester.KeyForFile(wavPath)
	if err != nil {
		return nil, fmt.Errorf("computing content digest: %w", err)
	}

	// The stored WAV is named by digest so byte-identical uploads land
	// on the same file.
	finalPath := filepath.Join(s.storageDir, digest+".wav")
	if wavPath != finalPath {
		if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
		if err := os.Rename(wavPath, finalPath); err != nil {
			return nil, fmt.Errorf("storing WAV file: %w", err)
		}
	}

	f, err := audio.Open(finalPath)
	if err != nil {
		return nil, fmt.Errorf("reading audio info: %w", err)
	}
	defer f.Close()

	stat, err := os.Stat(finalPath)
	if err != nil {
		return nil, fmt.Errorf("reading file size: %w", err)
	}

	track := &models.Track{
		Digest:       digest,
		OriginalName: originalName,
		Path:         finalPath,
		Duration:     f.Duration(),
		SampleRate:   f.SampleRate(),
		Channels:     f.Channels(),
		Frames:       f.Frames(),
		Size:         stat.Size(),
	}

	if err := s.repo.Upsert(ctx, track); err != nil {
		return nil, fmt.Errorf("recording track: %w", err)
	}

	log.Info().Str("digest", digest).Str("name", originalName).
		Float64("duration", track.Duration).Msg("track registered")
	return track, nil
}

// GetByDigest retrieves a registered track by its content digest
func (s *service) GetByDigest(ctx context.Context, digest string) (*models.Track, error) {
	if digest == "" {
		return nil, ErrInvalidDigest
	}
	return s.repo.GetByDigest(ctx, digest)
}

// List returns all registered tracks, newest first
func (s *service) List(ctx context.Context) ([]models.Track, error) {
	return s.repo.List(ctx)
}
