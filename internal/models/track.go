package models

// Track is a registered audio file. Path always points at the decoded WAV
// copy; OriginalName keeps whatever the user uploaded. Digest is the
// SHA-256 of the WAV bytes and doubles as the public file identifier.
type Track struct {
	ID           uint    `json:"-" gorm:"primarykey"`
	Digest       string  `json:"file_id" gorm:"not null;size:64;uniqueIndex"`
	OriginalName string  `json:"filename" gorm:"not null"`
	Path         string  `json:"-" gorm:"not null"`
	Duration     float64 `json:"duration" gorm:"not null"`
	SampleRate   int     `json:"samplerate" gorm:"not null"`
	Channels     int     `json:"channels" gorm:"not null"`
	Frames       int64   `json:"frames" gorm:"not null"`
	Size         int64   `json:"size"`
	CreatedAt    int64   `json:"-" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Track) TableName() string {
	return "tracks"
}

// Export records one exported segment range written by the export service.
type Export struct {
	ID          uint    `json:"-" gorm:"primarykey"`
	TrackDigest string  `json:"file_id" gorm:"not null;index"`
	SegmentID   string  `json:"segment_id" gorm:"not null"`
	Filename    string  `json:"filename" gorm:"not null;uniqueIndex"`
	Location    string  `json:"-" gorm:"not null"`
	URL         string  `json:"url"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	CreatedAt   int64   `json:"-" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Export) TableName() string {
	return "exports"
}
