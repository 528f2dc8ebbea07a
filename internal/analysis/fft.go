package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(pad(data))
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

func pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// DominantFrequency returns the strongest non-zero frequency in hertz of a
// series sampled at rate samples per second. The mean is removed first so a
// constant offset does not win. It returns 0 for fewer than four samples.
func DominantFrequency(series []float64, rate float64) float64 {
	if len(series) < 4 || rate <= 0 {
		return 0
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}
	ps := PowerSpectrum(centered)

	best, idx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, idx = ps[i], i
		}
	}
	n := 2 * len(ps)
	return float64(idx) * rate / float64(n)
}
