package estimators

// SpectralFluxOnset detects onsets by peak-picking the half-wave
// rectified spectral flux of the window.
type SpectralFluxOnset struct {
	// threshold multiplier over the flux mean+stddev
	sensitivity float64
}

// NewSpectralFluxOnset returns the built-in onset estimator.
func NewSpectralFluxOnset() *SpectralFluxOnset {
	return &SpectralFluxOnset{sensitivity: 1.5}
}

// Onsets returns onset times in seconds relative to the window start.
func (e *SpectralFluxOnset) Onsets(samples []float64, sampleRate int) ([]float64, error) {
	frames := magnitudeFrames(samples)
	if len(frames) < 3 {
		return []float64{}, nil
	}
	flux := spectralFlux(frames)

	mu := mean(flux)
	threshold := mu + e.sensitivity*stddev(flux, mu) + 1e-9

	onsets := []float64{}
	lastPick := -10 * hopSize // enforce a minimum spacing of two hops
	for t := 1; t < len(flux)-1; t++ {
		if flux[t] <= threshold {
			continue
		}
		if flux[t] < flux[t-1] || flux[t] <= flux[t+1] {
			continue
		}
		if t*hopSize-lastPick < 2*hopSize {
			continue
		}
		onsets = append(onsets, float64(t*hopSize)/float64(sampleRate))
		lastPick = t * hopSize
	}
	return onsets, nil
}
