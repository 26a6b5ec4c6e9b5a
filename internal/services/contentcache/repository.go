package contentcache

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bakerbass/guitarchops/internal/models"
)

// repository implements CacheRepository on GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new cache repository
func NewRepository(db *gorm.DB) CacheRepository {
	return &repository{db: db}
}

// Get retrieves the record for a (digest, kind) pair
func (r *repository) Get(ctx context.Context, digest string, kind models.CacheKind) (*models.AnalysisCache, error) {
	var entry models.AnalysisCache
	err := r.db.WithContext(ctx).
		Where("digest = ? AND kind = ?", digest, kind).
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	return &entry, nil
}

// Put stores a record, replacing any existing one for the (digest, kind)
// pair. Concurrent computations for the same digest produce identical
// payloads, so the upsert needs no locking.
func (r *repository) Put(ctx context.Context, entry *models.AnalysisCache) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "digest"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(entry).Error
}
