package estimators

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// STFT frame parameters shared by the built-in estimators.
const (
	frameSize = 1024
	hopSize   = 256
)

// magnitudeFrames computes Hann-windowed FFT magnitude spectra over the
// signal with the shared frame and hop sizes. Returns one spectrum of
// frameSize/2+1 bins per frame; a signal shorter than one frame yields
// no frames.
func magnitudeFrames(samples []float64) [][]float64 {
	if len(samples) < frameSize {
		return nil
	}
	hann := window.Hann(frameSize)
	numFrames := (len(samples)-frameSize)/hopSize + 1
	frames := make([][]float64, 0, numFrames)

	buf := make([]float64, frameSize)
	for start := 0; start+frameSize <= len(samples); start += hopSize {
		for i := 0; i < frameSize; i++ {
			buf[i] = samples[start+i] * hann[i]
		}
		spectrum := fft.FFTReal(buf)
		mags := make([]float64, frameSize/2+1)
		for k := range mags {
			mags[k] = cmplx.Abs(spectrum[k])
		}
		frames = append(frames, mags)
	}
	return frames
}

// spectralFlux computes the half-wave rectified spectral flux between
// consecutive magnitude frames. The first frame's flux is zero.
func spectralFlux(frames [][]float64) []float64 {
	flux := make([]float64, len(frames))
	for t := 1; t < len(frames); t++ {
		var sum float64
		for k := range frames[t] {
			if d := frames[t][k] - frames[t-1][k]; d > 0 {
				sum += d
			}
		}
		flux[t] = sum
	}
	return flux
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64, mu float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		d := x - mu
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// pearson computes the Pearson correlation coefficient of two
// equal-length vectors. Returns 0 when either vector is constant.
func pearson(a, b []float64) float64 {
	muA, muB := mean(a), mean(b)
	var num, denA, denB float64
	for i := range a {
		da, db := a[i]-muA, b[i]-muB
		num += da * db
		denA += da * da
		denB += db * db
	}
	if denA == 0 || denB == 0 {
		return 0
	}
	return num / math.Sqrt(denA*denB)
}
