package engine

import "gonum.org/v1/gonum/dsp/window"

// Hann returns a symmetric Hann (raised-cosine) window of length n:
//
//	w[i] = 0.5 - 0.5*cos(2*pi*i/(n-1))
//
// The endpoints are zero. A length-1 window is the single value 1.
func Hann(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{1}
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return window.Hann(w)
}
