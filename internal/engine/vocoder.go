package engine

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-audio-stretch/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

// PhaseWrap selects how the running phase of each bin is reduced after
// every analysis frame.
type PhaseWrap int

const (
	// WrapTrue reduces the accumulated phase modulo 2*pi.
	WrapTrue PhaseWrap = iota

	// WrapLegacy reproduces ((phase + advance) mod 2) * pi, which is what
	// the classic NumPy recipe computes due to operator precedence.
	// Kept for bit-compatible comparisons against that recipe.
	WrapLegacy
)

// String returns the wrap mode name.
func (w PhaseWrap) String() string {
	switch w {
	case WrapTrue:
		return "true"
	case WrapLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// VocoderConfig holds the analysis geometry of a Vocoder.
type VocoderConfig struct {
	WindowSize int
	Hop        int
	Wrap       PhaseWrap
	EnableSIMD bool
}

// Vocoder is a short-time Fourier analysis/resynthesis engine that changes
// duration while preserving pitch.
//
// Per analysis position i:
//  1. Window frames a1 = x[i:i+N] and a2 = x[i+h:i+h+N] with a Hann window
//  2. Accumulate the per-bin phase advance angle(S2 * conj(S1))
//  3. Resynthesize |S2| with the accumulated phase, window again and
//     overlap-add at i/factor
//
// A Vocoder owns its working buffers and is not safe for concurrent use.
// Every Stretch call starts from zeroed phase, so successive calls are
// independent.
type Vocoder struct {
	windowSize int
	hop        int
	wrap       PhaseWrap
	scale      float64 // 1/N for IFFT normalization (gonum doesn't normalize)

	fft    *fourier.CmplxFFT
	window []float64
	ops    *simdops.Ops64
	cops   *simdops.ComplexOps

	// Working buffers
	phase     []float64
	frame1    []complex128
	frame2    []complex128
	spectrum1 []complex128
	spectrum2 []complex128
	conj1     []complex128
	cross     []complex128
	synthesis []complex128
	timeFrame []complex128
}

// NewVocoder creates a vocoder for the given geometry. The geometry must
// already be validated: WindowSize > 0 and 0 < Hop < WindowSize.
func NewVocoder(cfg VocoderConfig) *Vocoder {
	n := cfg.WindowSize
	return &Vocoder{
		windowSize: n,
		hop:        cfg.Hop,
		wrap:       cfg.Wrap,
		scale:      1.0 / float64(n),
		fft:        fourier.NewCmplxFFT(n),
		window:     Hann(n),
		ops:        simdops.Select[float64](cfg.EnableSIMD),
		cops:       simdops.Complex(cfg.EnableSIMD),
		phase:      make([]float64, n),
		frame1:     make([]complex128, n),
		frame2:     make([]complex128, n),
		spectrum1:  make([]complex128, n),
		spectrum2:  make([]complex128, n),
		conj1:      make([]complex128, n),
		cross:      make([]complex128, n),
		synthesis:  make([]complex128, n),
		timeFrame:  make([]complex128, n),
	}
}

// WindowSize returns the analysis window length.
func (v *Vocoder) WindowSize() int { return v.windowSize }

// Hop returns the analysis hop.
func (v *Vocoder) Hop() int { return v.hop }

// OutputLen returns the length of the overlap-add buffer for an input of
// n samples: int(n/factor + windowSize).
func (v *Vocoder) OutputLen(n int, factor float64) int {
	return int(float64(n)/factor + float64(v.windowSize))
}

// Frames returns the number of analysis frames Stretch processes for an
// input of n samples.
func (v *Vocoder) Frames(n int, factor float64) int {
	limit := float64(n - (v.windowSize + v.hop))
	step := float64(v.hop) * factor
	frames := 0
	for pos := 0.0; pos < limit; pos = float64(frames) * step {
		frames++
	}
	return frames
}

// Stretch returns the raw overlap-add output for input stretched by
// 1/factor, before peak normalization. The result has OutputLen samples.
//
// An input shorter than windowSize+hop produces no frames and the result
// is all zeros.
func (v *Vocoder) Stretch(input []float64, factor float64) []float64 {
	output := make([]float64, v.OutputLen(len(input), factor))
	clear(v.phase)

	limit := float64(len(input) - (v.windowSize + v.hop))
	step := float64(v.hop) * factor

	for k := 0; ; k++ {
		pos := float64(k) * step
		if pos >= limit {
			break
		}
		i := int(pos)
		v.analyze(input[i:i+v.windowSize], input[i+v.hop:i+v.hop+v.windowSize])
		v.overlapAdd(output, int(float64(i)/factor))
	}

	return output
}

// analyze windows and transforms both frames, advances the running phase
// and leaves the rephased time frame in v.timeFrame.
func (v *Vocoder) analyze(a1, a2 []float64) {
	for j, w := range v.window {
		v.frame1[j] = complex(w*a1[j], 0)
		v.frame2[j] = complex(w*a2[j], 0)
	}

	v.spectrum1 = v.fft.Coefficients(v.spectrum1, v.frame1)
	v.spectrum2 = v.fft.Coefficients(v.spectrum2, v.frame2)

	// angle(S2/S1) == angle(S2*conj(S1)) wherever S1 != 0, and stays finite
	// on silent bins where the quotient would be NaN.
	for j, s := range v.spectrum1 {
		v.conj1[j] = cmplx.Conj(s)
	}
	v.cops.Mul(v.cross, v.spectrum2, v.conj1)

	for j, c := range v.cross {
		v.phase[j] = v.wrapPhase(v.phase[j] + cmplx.Phase(c))
		v.synthesis[j] = cmplx.Rect(cmplx.Abs(v.spectrum2[j]), v.phase[j])
	}

	v.timeFrame = v.fft.Sequence(v.timeFrame, v.synthesis)
}

// overlapAdd accumulates the windowed real part of v.timeFrame into output
// starting at offset. Samples past the end of output are dropped.
func (v *Vocoder) overlapAdd(output []float64, offset int) {
	end := min(offset+v.windowSize, len(output))
	for j := 0; offset+j < end; j++ {
		output[offset+j] += v.window[j] * real(v.timeFrame[j]) * v.scale
	}
}

// Normalize peak-normalizes a Stretch result in place using the vocoder's
// SIMD setting. See Normalize.
func (v *Vocoder) Normalize(buf []float64) {
	Normalize(buf, v.ops)
}

func (v *Vocoder) wrapPhase(p float64) float64 {
	if v.wrap == WrapLegacy {
		return floorMod(p, legacyPhaseModulus) * math.Pi
	}
	return floorMod(p, twoPi)
}

// floorMod returns x mod m with the sign of m, matching Python's % operator.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}
