package estimators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 44100

// chord synthesizes a sum of equal-amplitude sines.
func chord(freqs []float64, duration float64) []float64 {
	n := int(duration * testSampleRate)
	out := make([]float64, n)
	for _, f := range freqs {
		for i := range out {
			out[i] += 0.3 * math.Sin(2*math.Pi*f*float64(i)/testSampleRate)
		}
	}
	return out
}

// clickTrain synthesizes silence with short decaying 1 kHz bursts at the
// given times.
func clickTrain(times []float64, duration float64) []float64 {
	n := int(duration * testSampleRate)
	out := make([]float64, n)
	burstLen := 1024
	for _, t := range times {
		start := int(t * testSampleRate)
		for i := 0; i < burstLen && start+i < n; i++ {
			decay := 1.0 - float64(i)/float64(burstLen)
			out[start+i] = 0.9 * decay * math.Sin(2*math.Pi*1000*float64(i)/testSampleRate)
		}
	}
	return out
}

func TestChromaKeyMajorTriad(t *testing.T) {
	// C6, E6, G6: bin spacing is below a semitone at these frequencies,
	// so spectral leakage stays within the chord's pitch classes.
	samples := chord([]float64{1046.50, 1318.51, 1567.98}, 1.0)

	result, err := NewChromaKey().Key(samples, testSampleRate)
	require.NoError(t, err)

	assert.Equal(t, "C", result.Key)
	assert.Equal(t, "major", result.Mode)
	assert.Equal(t, "C major", result.Label())
	assert.Greater(t, result.Confidence, 0.5)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestChromaKeyMinorTriad(t *testing.T) {
	// A5, C6, E6.
	samples := chord([]float64{880.00, 1046.50, 1318.51}, 1.0)

	result, err := NewChromaKey().Key(samples, testSampleRate)
	require.NoError(t, err)

	assert.Equal(t, "A", result.Key)
	assert.Equal(t, "minor", result.Mode)
}

func TestChromaKeyWindowTooShort(t *testing.T) {
	_, err := NewChromaKey().Key(make([]float64, frameSize-1), testSampleRate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEstimator)
}

func TestSpectralFluxOnsetDetectsBursts(t *testing.T) {
	expected := []float64{0.5, 1.5, 2.5}
	samples := clickTrain(expected, 3.0)

	onsets, err := NewSpectralFluxOnset().Onsets(samples, testSampleRate)
	require.NoError(t, err)
	require.Len(t, onsets, len(expected))

	for i, want := range expected {
		assert.InDelta(t, want, onsets[i], 0.1, "onset %d", i)
	}
}

func TestSpectralFluxOnsetSilence(t *testing.T) {
	onsets, err := NewSpectralFluxOnset().Onsets(make([]float64, 2*testSampleRate), testSampleRate)
	require.NoError(t, err)
	assert.Empty(t, onsets)
}

func TestSpectralFluxOnsetShortWindow(t *testing.T) {
	onsets, err := NewSpectralFluxOnset().Onsets(make([]float64, frameSize), testSampleRate)
	require.NoError(t, err)
	assert.Empty(t, onsets)
}

func TestAutocorrTempoPulseTrain(t *testing.T) {
	// Bursts every 0.5s, i.e. 120 BPM.
	times := []float64{}
	for ts := 0.25; ts < 6.0; ts += 0.5 {
		times = append(times, ts)
	}
	samples := clickTrain(times, 6.0)

	result, err := NewAutocorrTempo().Tempo(samples, testSampleRate)
	require.NoError(t, err)

	assert.InDelta(t, 120.0, result.BPM, 10.0)
	assert.Greater(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestAutocorrTempoFlatSignal(t *testing.T) {
	result, err := NewAutocorrTempo().Tempo(make([]float64, 4*testSampleRate), testSampleRate)
	require.NoError(t, err)

	assert.Zero(t, result.BPM)
	assert.Zero(t, result.Confidence)
}

func TestAutocorrTempoWindowTooShort(t *testing.T) {
	_, err := NewAutocorrTempo().Tempo(make([]float64, frameSize), testSampleRate)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEstimator)
}

func TestNewRegistrySpectralBackend(t *testing.T) {
	reg := NewRegistry(Options{OnsetBackend: "spectral"})

	assert.IsType(t, &SpectralFluxOnset{}, reg.Onset)
	assert.IsType(t, &ChromaKey{}, reg.Key)
	assert.IsType(t, &AutocorrTempo{}, reg.Tempo)
}

func TestNewRegistryExplicitAubio(t *testing.T) {
	reg := NewRegistry(Options{OnsetBackend: "aubio", AubioPath: "aubio"})
	assert.IsType(t, &AubioOnset{}, reg.Onset)
}

func TestEstimatorsDeterministic(t *testing.T) {
	samples := chord([]float64{1046.50, 1318.51, 1567.98}, 1.0)

	a, err := NewChromaKey().Key(samples, testSampleRate)
	require.NoError(t, err)
	b, err := NewChromaKey().Key(samples, testSampleRate)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
