package models

import "fmt"

// SegmentType identifies which segmenter family produced a segment.
// Segments of different types are never compared or merged across types.
type SegmentType string

const (
	SegmentTypeSilence SegmentType = "silence"
	SegmentTypeOnset   SegmentType = "onset"
	SegmentTypeKey     SegmentType = "key"
	SegmentTypeTempo   SegmentType = "tempo"
)

// AllSegmentTypes lists every segment type in reporting order.
var AllSegmentTypes = []SegmentType{
	SegmentTypeSilence,
	SegmentTypeOnset,
	SegmentTypeKey,
	SegmentTypeTempo,
}

// ValidSegmentType reports whether t names a known segment type.
func ValidSegmentType(t SegmentType) bool {
	switch t {
	case SegmentTypeSilence, SegmentTypeOnset, SegmentTypeKey, SegmentTypeTempo:
		return true
	}
	return false
}

// Segment is a typed, time-bounded region of the recording.
// Start and End are seconds relative to file start, End > Start.
// Key is set only for key segments, BPM only for tempo segments.
type Segment struct {
	ID         string      `json:"id"`
	Start      float64     `json:"start"`
	End        float64     `json:"end"`
	Duration   float64     `json:"duration"`
	Type       SegmentType `json:"type"`
	Confidence float64     `json:"confidence"`
	Key        string      `json:"key,omitempty"`
	BPM        float64     `json:"tempo,omitempty"`
}

// SegmentID builds the stable per-run identifier "{type}_{ordinal}".
func SegmentID(t SegmentType, ordinal int) string {
	return fmt.Sprintf("%s_%d", t, ordinal)
}

// RawEstimate is one per-chunk feature estimate before merging.
// Time is the start time of the chunk the estimate came from.
// Label carries key signatures ("C major"), BPM carries tempo values.
type RawEstimate struct {
	Time       float64 `json:"time"`
	Label      string  `json:"label,omitempty"`
	BPM        float64 `json:"bpm,omitempty"`
	Confidence float64 `json:"confidence"`
}

// SegmentSet holds the four independent per-type segment sequences.
// No type implies or constrains another.
type SegmentSet struct {
	Silence []Segment `json:"silence"`
	Onset   []Segment `json:"onset"`
	Key     []Segment `json:"key"`
	Tempo   []Segment `json:"tempo"`
}

// ByType returns the sequence for the given type.
func (s *SegmentSet) ByType(t SegmentType) []Segment {
	switch t {
	case SegmentTypeSilence:
		return s.Silence
	case SegmentTypeOnset:
		return s.Onset
	case SegmentTypeKey:
		return s.Key
	case SegmentTypeTempo:
		return s.Tempo
	}
	return nil
}

// SetByType replaces the sequence for the given type.
func (s *SegmentSet) SetByType(t SegmentType, segs []Segment) {
	switch t {
	case SegmentTypeSilence:
		s.Silence = segs
	case SegmentTypeOnset:
		s.Onset = segs
	case SegmentTypeKey:
		s.Key = segs
	case SegmentTypeTempo:
		s.Tempo = segs
	}
}

// AnalysisResult is the outcome of one segmentation request.
// A failed segment type shows up as an empty sequence plus an entry in
// Errors; other types are unaffected.
type AnalysisResult struct {
	FilePath string            `json:"filepath"`
	Segments SegmentSet        `json:"segments"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// NewAnalysisResult returns a result with empty (non-nil) sequences so the
// serialized form always carries all four keys.
func NewAnalysisResult(filePath string) *AnalysisResult {
	return &AnalysisResult{
		FilePath: filePath,
		Segments: SegmentSet{
			Silence: []Segment{},
			Onset:   []Segment{},
			Key:     []Segment{},
			Tempo:   []Segment{},
		},
	}
}

// AddError records a per-type failure note.
func (r *AnalysisResult) AddError(t SegmentType, msg string) {
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[string(t)] = msg
}
