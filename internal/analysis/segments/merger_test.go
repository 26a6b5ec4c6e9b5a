package segments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerbass/guitarchops/internal/models"
)

func keyEst(t float64, label string, conf float64) models.RawEstimate {
	return models.RawEstimate{Time: t, Label: label, Confidence: conf}
}

func tempoEst(t, bpm, conf float64) models.RawEstimate {
	return models.RawEstimate{Time: t, BPM: bpm, Confidence: conf}
}

func TestMergeKeyChangeWithTail(t *testing.T) {
	estimates := []models.RawEstimate{
		keyEst(0, "C major", 0.9),
		keyEst(10, "C major", 0.9),
		keyEst(20, "G major", 0.8),
	}

	segs := NewKeyMerger(5.0).Merge(estimates, 30.0)
	require.Len(t, segs, 2)

	assert.Equal(t, "key_0", segs[0].ID)
	assert.Equal(t, 0.0, segs[0].Start)
	assert.Equal(t, 20.0, segs[0].End)
	assert.Equal(t, "C major", segs[0].Key)
	assert.Equal(t, 0.8, segs[0].Confidence)

	assert.Equal(t, "key_1", segs[1].ID)
	assert.Equal(t, 20.0, segs[1].Start)
	assert.Equal(t, 30.0, segs[1].End)
	assert.Equal(t, "G major", segs[1].Key)
	assert.Equal(t, 0.7, segs[1].Confidence)
}

func TestMergeDropsTransientFlip(t *testing.T) {
	// The 2-second G major blip never reaches the minimum duration, so
	// the C major run continues through it.
	estimates := []models.RawEstimate{
		keyEst(0, "C major", 0.9),
		keyEst(2, "G major", 0.9),
		keyEst(4, "C major", 0.9),
	}

	segs := NewKeyMerger(5.0).Merge(estimates, 10.0)
	require.Len(t, segs, 1)

	assert.Equal(t, 0.0, segs[0].Start)
	assert.Equal(t, 10.0, segs[0].End)
	assert.Equal(t, "C major", segs[0].Key)
}

func TestMergeConfirmedChangeMidStream(t *testing.T) {
	estimates := []models.RawEstimate{
		keyEst(0, "C major", 0.9),
		keyEst(10, "G major", 0.8),
		keyEst(16, "G major", 0.85),
	}

	segs := NewKeyMerger(5.0).Merge(estimates, 30.0)
	require.Len(t, segs, 2)

	// The closing confidence comes from the estimate that confirmed
	// the change.
	assert.Equal(t, "C major", segs[0].Key)
	assert.Equal(t, 0.0, segs[0].Start)
	assert.Equal(t, 10.0, segs[0].End)
	assert.Equal(t, 0.85, segs[0].Confidence)

	assert.Equal(t, "G major", segs[1].Key)
	assert.Equal(t, 10.0, segs[1].Start)
	assert.Equal(t, 30.0, segs[1].End)
	assert.Equal(t, 0.7, segs[1].Confidence)
}

func TestMergeDiscardsShortFirstRun(t *testing.T) {
	// The initial C major run lasts only 2 seconds before G major takes
	// over for good: too short to emit, so it leaves a gap.
	estimates := []models.RawEstimate{
		keyEst(0, "C major", 0.9),
		keyEst(2, "G major", 0.9),
		keyEst(8, "G major", 0.85),
	}

	segs := NewKeyMerger(5.0).Merge(estimates, 20.0)
	require.Len(t, segs, 1)

	assert.Equal(t, 2.0, segs[0].Start)
	assert.Equal(t, 20.0, segs[0].End)
	assert.Equal(t, "G major", segs[0].Key)
}

func TestMergeEmptyInput(t *testing.T) {
	segs := NewKeyMerger(5.0).Merge(nil, 30.0)
	assert.Empty(t, segs)
}

func TestMergeSingleEstimate(t *testing.T) {
	segs := NewKeyMerger(5.0).Merge([]models.RawEstimate{keyEst(0, "D minor", 0.6)}, 12.0)
	require.Len(t, segs, 1)

	assert.Equal(t, 0.0, segs[0].Start)
	assert.Equal(t, 12.0, segs[0].End)
	assert.Equal(t, "D minor", segs[0].Key)
	assert.Equal(t, 0.7, segs[0].Confidence)
}

func TestMergeTempoTolerance(t *testing.T) {
	// Fluctuations within the tolerance never open a candidate run.
	estimates := []models.RawEstimate{
		tempoEst(0, 120, 0.9),
		tempoEst(10, 123, 0.9),
		tempoEst(20, 118, 0.9),
	}

	segs := NewTempoMerger(5.0, 5.0).Merge(estimates, 30.0)
	require.Len(t, segs, 1)

	assert.Equal(t, 120.0, segs[0].BPM)
	assert.Equal(t, 0.0, segs[0].Start)
	assert.Equal(t, 30.0, segs[0].End)
}

func TestMergeTempoChange(t *testing.T) {
	estimates := []models.RawEstimate{
		tempoEst(0, 120, 0.9),
		tempoEst(10, 120, 0.9),
		tempoEst(20, 90, 0.8),
	}

	segs := NewTempoMerger(5.0, 5.0).Merge(estimates, 30.0)
	require.Len(t, segs, 2)

	assert.Equal(t, "tempo_0", segs[0].ID)
	assert.Equal(t, 120.0, segs[0].BPM)
	assert.Equal(t, 20.0, segs[0].End)
	assert.Equal(t, "tempo_1", segs[1].ID)
	assert.Equal(t, 90.0, segs[1].BPM)
	assert.Equal(t, 30.0, segs[1].End)
}

func TestMergeCoverageNoOverlap(t *testing.T) {
	estimates := []models.RawEstimate{
		keyEst(0, "C major", 0.9),
		keyEst(10, "G major", 0.9),
		keyEst(20, "G major", 0.9),
		keyEst(30, "A minor", 0.9),
		keyEst(32, "G major", 0.9),
		keyEst(40, "E minor", 0.9),
		keyEst(50, "E minor", 0.9),
	}

	segs := NewKeyMerger(5.0).Merge(estimates, 60.0)
	require.NotEmpty(t, segs)

	for i, seg := range segs {
		assert.Greater(t, seg.End, seg.Start)
		assert.GreaterOrEqual(t, seg.Duration, 5.0)
		if i > 0 {
			assert.GreaterOrEqual(t, seg.Start, segs[i-1].End, "segments must not overlap")
		}
	}
	assert.Equal(t, 60.0, segs[len(segs)-1].End)
}
