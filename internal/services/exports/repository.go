package exports

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bakerbass/guitarchops/internal/models"
)

// repository implements ExportRepository on GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new export repository
func NewRepository(db *gorm.DB) ExportRepository {
	return &repository{db: db}
}

// Upsert stores an export record, replacing one with the same filename
func (r *repository) Upsert(ctx context.Context, export *models.Export) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "filename"}},
			DoUpdates: clause.AssignmentColumns([]string{"track_digest", "segment_id", "location", "url", "start", "end"}),
		}).
		Create(export).Error
}

// GetByFilename retrieves an export record by filename
func (r *repository) GetByFilename(ctx context.Context, filename string) (*models.Export, error) {
	var export models.Export
	err := r.db.WithContext(ctx).
		Where("filename = ?", filename).
		First(&export).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}

	return &export, nil
}

// ListByDigest returns all exports for a track, newest first
func (r *repository) ListByDigest(ctx context.Context, trackDigest string) ([]models.Export, error) {
	var exports []models.Export
	err := r.db.WithContext(ctx).
		Where("track_digest = ?", trackDigest).
		Order("created_at DESC").
		Find(&exports).Error
	return exports, err
}
