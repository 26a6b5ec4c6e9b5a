package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// CacheKind distinguishes the artifact stored under a content digest.
type CacheKind string

const (
	CacheKindPeaks    CacheKind = "peaks"
	CacheKindSegments CacheKind = "segments"
)

// AnalysisCache is one content-addressed cache record. Digest is the
// SHA-256 of the whole file's bytes, so a byte-identical file hits the
// cache regardless of path or name. Records are never mutated in place:
// a changed file produces a new digest and a new row. Rows are never
// evicted; the table grows for the life of the database.
type AnalysisCache struct {
	gorm.Model
	Digest  string    `json:"digest" gorm:"not null;size:64;uniqueIndex:idx_cache_digest_kind"`
	Kind    CacheKind `json:"kind" gorm:"not null;size:16;uniqueIndex:idx_cache_digest_kind"`
	Payload []byte    `json:"-" gorm:"type:blob;not null"` // JSON-encoded PeakSet or AnalysisResult
}

// TableName specifies the table name for GORM
func (AnalysisCache) TableName() string {
	return "analysis_cache"
}

// PeakSet decodes the payload as a PeakSet.
func (c *AnalysisCache) PeakSet() (*PeakSet, error) {
	var ps PeakSet
	if err := json.Unmarshal(c.Payload, &ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

// SetPeakSet encodes and stores a PeakSet payload.
func (c *AnalysisCache) SetPeakSet(ps *PeakSet) error {
	data, err := json.Marshal(ps)
	if err != nil {
		return err
	}
	c.Kind = CacheKindPeaks
	c.Payload = data
	return nil
}

// AnalysisResult decodes the payload as an AnalysisResult.
func (c *AnalysisCache) AnalysisResult() (*AnalysisResult, error) {
	var res AnalysisResult
	if err := json.Unmarshal(c.Payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetAnalysisResult encodes and stores an AnalysisResult payload.
func (c *AnalysisCache) SetAnalysisResult(res *AnalysisResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	c.Kind = CacheKindSegments
	c.Payload = data
	return nil
}
