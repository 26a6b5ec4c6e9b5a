package segments

import "github.com/bakerbass/guitarchops/internal/models"

// onsetConfidence is fixed for onset segments: the boundary comes
// straight from the detector, but the detector itself is heuristic.
const onsetConfidence = 0.8

// FromOnsets converts sorted onset times into segments. Each pair of
// consecutive onsets whose gap is at least minDuration becomes one
// segment; shorter gaps are skipped. Onsets are point events, so no
// merge or hysteresis logic applies.
func FromOnsets(onsets []float64, minDuration float64) []models.Segment {
	segs := []models.Segment{}
	for i := 0; i+1 < len(onsets); i++ {
		start, end := onsets[i], onsets[i+1]
		if end-start < minDuration {
			continue
		}
		segs = append(segs, models.Segment{
			ID:         models.SegmentID(models.SegmentTypeOnset, len(segs)),
			Start:      start,
			End:        end,
			Duration:   end - start,
			Type:       models.SegmentTypeOnset,
			Confidence: onsetConfidence,
		})
	}
	return segs
}
