// Package segments turns raw per-window feature estimates into the four
// segment families: silence, onset, key and tempo.
package segments

import (
	"math"

	"github.com/bakerbass/guitarchops/internal/models"
)

// tailConfidence marks the final segment of a merge run. No estimate
// attests to a boundary at end-of-file, so the tail always carries the
// lowest confidence in the scale.
const tailConfidence = 0.7

// ChangePredicate reports whether two estimates belong to different runs.
type ChangePredicate func(a, b models.RawEstimate) bool

// KeyPredicate treats any difference in the key label as a change.
func KeyPredicate(a, b models.RawEstimate) bool {
	return a.Label != b.Label
}

// TempoPredicate treats a BPM difference above tolerance as a change.
func TempoPredicate(tolerance float64) ChangePredicate {
	return func(a, b models.RawEstimate) bool {
		return math.Abs(a.BPM-b.BPM) > tolerance
	}
}

// Merger folds a time-ordered stream of raw estimates into coalesced
// segments. A change of value opens a pending candidate run; the current
// run is closed only once the candidate has persisted for the minimum
// segment duration, so transient estimator flips shorter than that are
// dropped rather than splitting the run. Closed runs shorter than the
// minimum are discarded outright, leaving a gap.
type Merger struct {
	typ     models.SegmentType
	changed ChangePredicate
	minDur  float64 // seconds
}

// NewKeyMerger merges key-signature estimates.
func NewKeyMerger(minSegmentDuration float64) *Merger {
	return &Merger{
		typ:     models.SegmentTypeKey,
		changed: KeyPredicate,
		minDur:  minSegmentDuration,
	}
}

// NewTempoMerger merges tempo estimates with the given BPM tolerance.
func NewTempoMerger(minSegmentDuration, toleranceBPM float64) *Merger {
	return &Merger{
		typ:     models.SegmentTypeTempo,
		changed: TempoPredicate(toleranceBPM),
		minDur:  minSegmentDuration,
	}
}

// Merge reduces estimates (in time order) into segments. totalDuration
// is the file's full duration; the final segment always extends to it.
// An empty estimate stream yields no segments.
func (m *Merger) Merge(estimates []models.RawEstimate, totalDuration float64) []models.Segment {
	segs := []models.Segment{}
	if len(estimates) == 0 {
		return segs
	}

	emit := func(value models.RawEstimate, start, end, confidence float64) {
		seg := models.Segment{
			ID:         models.SegmentID(m.typ, len(segs)),
			Start:      start,
			End:        end,
			Duration:   end - start,
			Type:       m.typ,
			Confidence: confidence,
		}
		switch m.typ {
		case models.SegmentTypeKey:
			seg.Key = value.Label
		case models.SegmentTypeTempo:
			seg.BPM = value.BPM
		}
		segs = append(segs, seg)
	}

	current := estimates[0]
	start := estimates[0].Time
	var candidate *models.RawEstimate

	for _, est := range estimates[1:] {
		switch {
		case candidate == nil:
			if m.changed(current, est) {
				c := est
				candidate = &c
			}
		case !m.changed(*candidate, est):
			// The candidate value is holding. Once it has lasted the
			// minimum duration, the previous run is over.
			if est.Time-candidate.Time >= m.minDur {
				if candidate.Time-start >= m.minDur {
					emit(current, start, candidate.Time, est.Confidence)
				}
				current = *candidate
				start = candidate.Time
				candidate = nil
			}
		case !m.changed(current, est):
			// Back to the current run's value: the candidate was noise.
			candidate = nil
		default:
			c := est
			candidate = &c
		}
	}

	if candidate != nil && totalDuration-candidate.Time >= m.minDur {
		if candidate.Time-start >= m.minDur {
			emit(current, start, candidate.Time, candidate.Confidence)
		}
		emit(*candidate, candidate.Time, totalDuration, tailConfidence)
	} else {
		emit(current, start, totalDuration, tailConfidence)
	}
	return segs
}
