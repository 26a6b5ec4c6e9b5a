package contentcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/bakerbass/guitarchops/internal/models"
)

// service implements CacheService
type service struct {
	repo CacheRepository
}

// NewService creates a new content cache service
func NewService(repo CacheRepository) CacheService {
	return &service{repo: repo}
}

// KeyForFile computes the SHA-256 digest of the file's full content.
func (s *service) KeyForFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file for digest: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing file content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// GetPeaks retrieves the cached PeakSet for a digest
func (s *service) GetPeaks(ctx context.Context, digest string) (*models.PeakSet, error) {
	if digest == "" {
		return nil, ErrInvalidDigest
	}
	entry, err := s.repo.Get(ctx, digest, models.CacheKindPeaks)
	if err != nil {
		return nil, err
	}
	return entry.PeakSet()
}

// PutPeaks stores a PeakSet under the digest
func (s *service) PutPeaks(ctx context.Context, digest string, peaks *models.PeakSet) error {
	if digest == "" {
		return ErrInvalidDigest
	}
	entry := &models.AnalysisCache{Digest: digest}
	if err := entry.SetPeakSet(peaks); err != nil {
		return fmt.Errorf("encoding peaks payload: %w", err)
	}
	return s.repo.Put(ctx, entry)
}

// GetSegments retrieves the cached AnalysisResult for a digest
func (s *service) GetSegments(ctx context.Context, digest string) (*models.AnalysisResult, error) {
	if digest == "" {
		return nil, ErrInvalidDigest
	}
	entry, err := s.repo.Get(ctx, digest, models.CacheKindSegments)
	if err != nil {
		return nil, err
	}
	return entry.AnalysisResult()
}

// PutSegments stores an AnalysisResult under the digest
func (s *service) PutSegments(ctx context.Context, digest string, result *models.AnalysisResult) error {
	if digest == "" {
		return ErrInvalidDigest
	}
	entry := &models.AnalysisCache{Digest: digest}
	if err := entry.SetAnalysisResult(result); err != nil {
		return fmt.Errorf("encoding segments payload: %w", err)
	}
	return s.repo.Put(ctx, entry)
}
