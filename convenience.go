package stretch

import (
	"math"

	"github.com/tphakala/go-audio-stretch/internal/engine"
)

// Common semitone shifts for convenience.
const (
	// SemitonesOctave shifts by a full octave.
	SemitonesOctave = 12.0

	// SemitonesFifth shifts by a perfect fifth.
	SemitonesFifth = 7.0

	// SemitonesFourth shifts by a perfect fourth.
	SemitonesFourth = 5.0
)

// DemoTones is the transposition set used for quick listening tests.
var DemoTones = []float64{5, 10, 20, -5, -10, -20}

func newDefault() *Transformer {
	return &Transformer{config: DefaultConfig()}
}

// Speedx is a convenience function for one-shot speed change with the
// default configuration.
func Speedx(s []int16, factor float64) ([]int16, error) {
	return newDefault().Speedx(s, factor)
}

// Stretch is a convenience function for one-shot time stretching with the
// default 8192/2048 geometry.
func Stretch(s []int16, factor float64) ([]int16, error) {
	return newDefault().Stretch(s, factor)
}

// PitchShift is a convenience function for one-shot pitch shifting with the
// default 8192/2048 geometry.
func PitchShift(s []int16, n float64) ([]int16, error) {
	return newDefault().PitchShift(s, n)
}

// PitchShiftBatch is a convenience function for shifting one signal by
// several semitone counts with the default configuration.
func PitchShiftBatch(s []int16, ns []float64) ([][]int16, error) {
	return newDefault().PitchShiftBatch(s, ns)
}

// Int16ToFloat64 converts 16-bit PCM to float64 without rescaling.
func Int16ToFloat64(s []int16) []float64 {
	return engine.ToFloat64(s)
}

// Float64ToInt16 converts float64 samples to 16-bit PCM, rounding to the
// nearest integer and saturating at the int16 range.
func Float64ToInt16(s []float64) []int16 {
	out := make([]int16, len(s))
	for i, v := range s {
		switch r := math.Round(v); {
		case math.IsNaN(r):
			out[i] = 0
		case r >= math.MaxInt16:
			out[i] = math.MaxInt16
		case r <= math.MinInt16:
			out[i] = math.MinInt16
		default:
			out[i] = int16(r)
		}
	}
	return out
}
