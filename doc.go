// Package stretch provides phase-vocoder time stretching and pitch shifting
// for mono 16-bit audio in pure Go.
//
// Three transforms are offered:
//
//   - [Speedx]: nearest-sample resampling. Duration and pitch change together,
//     like playing a tape faster or slower.
//   - [Stretch]: short-time Fourier analysis/resynthesis with per-bin phase
//     accumulation. Duration changes by 1/factor, pitch is preserved.
//   - [PitchShift]: Stretch by the inverse semitone ratio, then Speedx back to
//     the original duration. Pitch moves by n semitones, duration is kept.
//
// # Quick Start
//
//	shifted, err := stretch.PitchShift(samples, 12) // one octave up
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For non-default window geometry, create a [Transformer]:
//
//	cfg := stretch.DefaultConfig()
//	cfg.WindowSize = 2048
//	cfg.Hop = 512
//	t, err := stretch.New(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	slower, err := t.Stretch(samples, 0.5) // twice as long
//
// # Factors
//
// A factor above 1 speeds up and shortens; below 1 slows down and lengthens.
// Factors must be positive and finite, within 1/256 to 256. Semitone counts
// map to factors through [SemitoneRatio], 2^(n/12).
//
// # Output Level
//
// Stretch and PitchShift peak-normalize their result so that the largest
// magnitude is 2^12, four bits below 16-bit full scale. Speedx never changes
// sample values.
//
// # Degenerate Input
//
// Input shorter than WindowSize+Hop yields no analysis frames. Stretch then
// returns silence of the usual output length and PitchShift returns an empty
// slice. Neither is reported as an error.
//
// # Phase Wrapping
//
// The per-bin phase accumulator is wrapped modulo 2*pi by default. The
// popular NumPy recipe this design follows writes (phase + angle) % 2*np.pi,
// which wraps modulo 2 and then multiplies by pi; [PhaseWrapLegacy]
// reproduces that behavior for comparisons.
//
// # Thread Safety
//
// All transforms are pure: each call allocates its own FFT plan, phase
// accumulator and overlap-add buffer. A [Transformer] may be shared freely
// between goroutines. [Transformer.PitchShiftBatch] uses this to shift one
// signal by several amounts concurrently.
package stretch
