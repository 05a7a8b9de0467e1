// Package analysis provides signal measurements used to verify and report
// on transform output: dominant frequency, RMS energy and peak level.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-audio-stretch/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

// minSpectrumLen is the shortest input for which a spectrum is computed.
const minSpectrumLen = 4

// DominantFrequency returns the frequency in Hz of the strongest non-DC
// component of x, refined by parabolic interpolation over the peak bin and
// its neighbours. It returns 0 when x is too short or silent.
func DominantFrequency(x []float64, sampleRate float64) float64 {
	n := len(x)
	if n < minSpectrumLen || sampleRate <= 0 {
		return 0
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, x)

	mags := make([]float64, len(coeffs))
	peakBin := 0
	for k := 1; k < len(coeffs); k++ {
		mags[k] = cmplx.Abs(coeffs[k])
		if mags[k] > mags[peakBin] {
			peakBin = k
		}
	}
	if peakBin == 0 || mags[peakBin] == 0 {
		return 0
	}

	offset := 0.0
	if peakBin > 1 && peakBin < len(mags)-1 {
		alpha, beta, gamma := mags[peakBin-1], mags[peakBin], mags[peakBin+1]
		if denom := alpha - 2*beta + gamma; denom != 0 {
			offset = 0.5 * (alpha - gamma) / denom
		}
	}

	return (float64(peakBin) + offset) * sampleRate / float64(n)
}

// RMS returns the root-mean-square level of x, or 0 for an empty slice.
func RMS[F simdops.Float](x []F) float64 {
	if len(x) == 0 {
		return 0
	}
	energy := simdops.For[F]().DotProductUnsafe(x, x)
	return math.Sqrt(float64(energy) / float64(len(x)))
}

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean[F simdops.Float](x []F) float64 {
	if len(x) == 0 {
		return 0
	}
	return float64(simdops.For[F]().Sum(x)) / float64(len(x))
}

// Peak returns max(|x|), or 0 for an empty slice.
func Peak[F simdops.Float](x []F) float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(float64(v)); a > peak {
			peak = a
		}
	}
	return peak
}

// BlockRMS returns the RMS of consecutive blocks of size blockSize within
// x[start:end]. A trailing partial block is ignored.
func BlockRMS(x []float64, start, end, blockSize int) []float64 {
	start = max(start, 0)
	end = min(end, len(x))
	if blockSize <= 0 || end-start < blockSize {
		return nil
	}

	blocks := make([]float64, 0, (end-start)/blockSize)
	for pos := start; pos+blockSize <= end; pos += blockSize {
		blocks = append(blocks, RMS(x[pos:pos+blockSize]))
	}
	return blocks
}
