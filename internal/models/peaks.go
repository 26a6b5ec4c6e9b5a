package models

// PeakEnvelope holds the reduced amplitude data for a single resolution.
// The three slices are always the same length, one entry per bin.
type PeakEnvelope struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
	RMS []float64 `json:"rms"`
}

// Bins returns the number of bins in the envelope.
func (e PeakEnvelope) Bins() int {
	return len(e.Min)
}

// PeakSet is the multi-resolution amplitude summary of one audio file.
// Audio is always mixed down to mono before reduction, so Channels is 1.
// Immutable once produced; serialized as-is into the content cache.
type PeakSet struct {
	SampleRate  int                  `json:"samplerate"`
	Duration    float64              `json:"duration"`
	Channels    int                  `json:"channels"`
	Resolutions map[int]PeakEnvelope `json:"resolutions"`
}
