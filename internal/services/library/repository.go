package library

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bakerbass/guitarchops/internal/models"
)

// repository implements TrackRepository on GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new track repository
func NewRepository(db *gorm.DB) TrackRepository {
	return &repository{db: db}
}

// Upsert stores a track, replacing the record for an existing digest
func (r *repository) Upsert(ctx context.Context, track *models.Track) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "digest"}},
			DoUpdates: clause.AssignmentColumns([]string{"original_name", "path", "duration", "sample_rate", "channels", "frames", "size"}),
		}).
		Create(track).Error
}

// GetByDigest retrieves a track by its content digest
func (r *repository) GetByDigest(ctx context.Context, digest string) (*models.Track, error) {
	var track models.Track
	err := r.db.WithContext(ctx).
		Where("digest = ?", digest).
		First(&track).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, err
	}

	return &track, nil
}

// List returns all tracks, newest first
func (r *repository) List(ctx context.Context) ([]models.Track, error) {
	var tracks []models.Track
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&tracks).Error
	return tracks, err
}
