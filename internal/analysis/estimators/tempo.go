package estimators

import "fmt"

// Tempo search range in BPM.
const (
	tempoMinBPM = 30.0
	tempoMaxBPM = 240.0
)

// AutocorrTempo estimates tempo by autocorrelating the onset strength
// envelope and picking the strongest lag in the musical tempo range.
type AutocorrTempo struct{}

// NewAutocorrTempo returns the built-in tempo estimator.
func NewAutocorrTempo() *AutocorrTempo {
	return &AutocorrTempo{}
}

// Tempo estimates the window's tempo in BPM.
func (e *AutocorrTempo) Tempo(samples []float64, sampleRate int) (TempoResult, error) {
	frames := magnitudeFrames(samples)
	if len(frames) < 8 {
		return TempoResult{}, fmt.Errorf("%w: window too short for tempo estimation", ErrEstimator)
	}
	envelope := spectralFlux(frames)

	// Lags corresponding to the BPM search range, in envelope frames.
	framesPerSecond := float64(sampleRate) / hopSize
	minLag := int(framesPerSecond * 60.0 / tempoMaxBPM)
	maxLag := int(framesPerSecond * 60.0 / tempoMinBPM)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(envelope) {
		maxLag = len(envelope) - 1
	}
	if maxLag <= minLag {
		return TempoResult{}, fmt.Errorf("%w: window too short for tempo search range", ErrEstimator)
	}

	corr := make([]float64, maxLag+1)
	var best, sum float64
	bestLag := minLag
	for lag := minLag; lag <= maxLag; lag++ {
		var acc float64
		for i := lag; i < len(envelope); i++ {
			acc += envelope[i] * envelope[i-lag]
		}
		corr[lag] = acc
		sum += acc
		if acc > best {
			best = acc
			bestLag = lag
		}
	}

	if best <= 0 {
		// Flat envelope, no periodicity to speak of.
		return TempoResult{BPM: 0, Confidence: 0}, nil
	}

	bpm := 60.0 * framesPerSecond / float64(bestLag)

	// Confidence follows the peak-to-mean ratio of the autocorrelation.
	meanCorr := sum / float64(maxLag-minLag+1)
	confidence := 0.0
	if meanCorr > 0 {
		confidence = clamp01(best / meanCorr / 4.0)
	}

	return TempoResult{BPM: bpm, Confidence: confidence}, nil
}
