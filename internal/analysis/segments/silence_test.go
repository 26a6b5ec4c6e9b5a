package segments

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerbass/guitarchops/internal/models"
)

const silenceTestRate = 8000

// quietLoudQuiet builds a signal with zeros everywhere except a sine
// burst between loudStart and loudEnd (seconds).
func quietLoudQuiet(duration, loudStart, loudEnd float64) []float64 {
	out := make([]float64, int(duration*silenceTestRate))
	lo := int(loudStart * silenceTestRate)
	hi := int(loudEnd * silenceTestRate)
	for i := lo; i < hi && i < len(out); i++ {
		out[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/silenceTestRate)
	}
	return out
}

func TestSilenceQuietLoudQuiet(t *testing.T) {
	// 60 seconds: silence, then 20 seconds of sound, then silence.
	signal := quietLoudQuiet(60, 20, 40)

	segs := Silence(signal, silenceTestRate, 500, -40.0, 10)
	require.Len(t, segs, 1)

	seg := segs[0]
	assert.Equal(t, "silence_0", seg.ID)
	assert.Equal(t, models.SegmentTypeSilence, seg.Type)
	assert.Equal(t, 1.0, seg.Confidence)
	assert.InDelta(t, 20.0, seg.Start, 0.011)
	assert.InDelta(t, 40.0, seg.End, 0.011)
}

func TestSilenceAllQuiet(t *testing.T) {
	segs := Silence(make([]float64, 10*silenceTestRate), silenceTestRate, 500, -40.0, 10)
	assert.Empty(t, segs)
}

func TestSilenceAllLoud(t *testing.T) {
	signal := quietLoudQuiet(10, 0, 10)

	segs := Silence(signal, silenceTestRate, 500, -40.0, 10)
	require.Len(t, segs, 1)

	assert.Equal(t, 0.0, segs[0].Start)
	assert.InDelta(t, 10.0, segs[0].End, 0.011)
}

func TestSilenceShortGapFoldedIn(t *testing.T) {
	// A 200ms quiet gap inside sound is below the 500ms minimum and
	// must not split the segment.
	signal := quietLoudQuiet(10, 1, 9)
	lo := int(4.0 * silenceTestRate)
	hi := int(4.2 * silenceTestRate)
	for i := lo; i < hi; i++ {
		signal[i] = 0
	}

	segs := Silence(signal, silenceTestRate, 500, -40.0, 10)
	require.Len(t, segs, 1)

	assert.InDelta(t, 1.0, segs[0].Start, 0.011)
	assert.InDelta(t, 9.0, segs[0].End, 0.011)
}

func TestSilenceLongGapSplits(t *testing.T) {
	signal := quietLoudQuiet(10, 1, 9)
	lo := int(4.0 * silenceTestRate)
	hi := int(5.0 * silenceTestRate)
	for i := lo; i < hi; i++ {
		signal[i] = 0
	}

	segs := Silence(signal, silenceTestRate, 500, -40.0, 10)
	require.Len(t, segs, 2)

	assert.Equal(t, "silence_0", segs[0].ID)
	assert.Equal(t, "silence_1", segs[1].ID)
	assert.InDelta(t, 4.0, segs[0].End, 0.011)
	assert.InDelta(t, 5.0, segs[1].Start, 0.011)
}

func TestSilenceEmptySignal(t *testing.T) {
	assert.Empty(t, Silence(nil, silenceTestRate, 500, -40.0, 10))
}

func TestSilenceBelowThresholdIsQuiet(t *testing.T) {
	// -46 dBFS tone stays under a -40 dBFS threshold.
	signal := make([]float64, 10*silenceTestRate)
	for i := range signal {
		signal[i] = 0.005 * math.Sin(2*math.Pi*440*float64(i)/silenceTestRate)
	}

	segs := Silence(signal, silenceTestRate, 500, -40.0, 10)
	assert.Empty(t, segs)
}
