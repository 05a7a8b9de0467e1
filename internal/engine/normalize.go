package engine

import (
	"math"

	"github.com/tphakala/go-audio-stretch/internal/simdops"
)

// Peak returns max(|x|) over buf, or 0 for an empty buffer.
func Peak(buf []float64) float64 {
	peak := 0.0
	for _, v := range buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// Normalize scales buf in place so that its peak magnitude becomes exactly
// 2^12. A silent buffer is left untouched.
//
// The power-of-two gain is applied before the division by peak, so the
// peak sample lands on 2^12 without rounding.
func Normalize(buf []float64, ops *simdops.Ops64) {
	peak := Peak(buf)
	if peak == 0 {
		return
	}
	ops.Scale(buf, buf, normalizationPeak)
	for i := range buf {
		buf[i] /= peak
	}
}

// Quantize16 converts buf to 16-bit PCM, truncating toward zero and
// saturating at the int16 range.
func Quantize16(buf []float64) []int16 {
	out := make([]int16, len(buf))
	for i, v := range buf {
		out[i] = clampInt16(v)
	}
	return out
}

// ToFloat64 promotes 16-bit PCM to the float64 working representation
// without rescaling.
func ToFloat64(samples []int16) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}

func clampInt16(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= maxInt16:
		return maxInt16
	case v <= minInt16:
		return minInt16
	default:
		return int16(v)
	}
}
