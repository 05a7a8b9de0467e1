package stretch

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/tphakala/go-audio-stretch/internal/engine"
)

// Config holds the analysis geometry and execution options shared by all
// transforms of a Transformer.
type Config struct {
	// WindowSize is the analysis window length in samples. A power of two
	// is conventional for FFT efficiency but not required.
	WindowSize int

	// Hop is the offset between the two analysis frames of each step, and
	// the synthesis frame spacing. Must satisfy 0 < Hop < WindowSize.
	// Conventionally WindowSize/4.
	Hop int

	// PhaseWrap selects how accumulated bin phases are wrapped.
	PhaseWrap PhaseWrapMode

	// EnableSIMD allows the use of SIMD kernels when available.
	// Set to false to force the pure Go implementation.
	EnableSIMD bool

	// EnableParallel runs the shifts of PitchShiftBatch concurrently.
	EnableParallel bool
}

// PhaseWrapMode enumerates phase accumulator wrapping strategies.
type PhaseWrapMode int

const (
	// PhaseWrapTrue wraps accumulated phase modulo 2*pi.
	PhaseWrapTrue PhaseWrapMode = iota

	// PhaseWrapLegacy computes ((phase + advance) mod 2) * pi, reproducing
	// the widely copied NumPy pitch-shift recipe bit for bit.
	PhaseWrapLegacy
)

// String returns the mode name as accepted by ParsePhaseWrap.
func (m PhaseWrapMode) String() string {
	switch m {
	case PhaseWrapTrue:
		return "true"
	case PhaseWrapLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("PhaseWrapMode(%d)", int(m))
	}
}

// ParsePhaseWrap maps "true" or "legacy" to a PhaseWrapMode.
func ParsePhaseWrap(s string) (PhaseWrapMode, error) {
	switch s {
	case "true", "":
		return PhaseWrapTrue, nil
	case "legacy":
		return PhaseWrapLegacy, nil
	default:
		return 0, fmt.Errorf("%w: unknown phase wrap %q", ErrInvalidConfig, s)
	}
}

// Common errors returned by the transforms.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid stretch configuration")

	// ErrInvalidWindowConfig indicates a window geometry with no meaningful
	// overlap: non-positive sizes or a hop not smaller than the window.
	ErrInvalidWindowConfig = errors.New("invalid window configuration")

	// ErrInvalidFactor indicates a non-positive, non-finite or out of range
	// factor or semitone count.
	ErrInvalidFactor = errors.New("invalid factor")

	// ErrEmptyInput indicates a batch call without any work to do.
	ErrEmptyInput = errors.New("empty input")
)

// DefaultConfig returns the default geometry (8192/2048) with true phase
// wrapping, SIMD and parallel batches enabled.
func DefaultConfig() Config {
	return Config{
		WindowSize:     DefaultWindowSize,
		Hop:            DefaultHop,
		PhaseWrap:      PhaseWrapTrue,
		EnableSIMD:     true,
		EnableParallel: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidWindowConfig, c.WindowSize)
	}

	if c.Hop <= 0 {
		return fmt.Errorf("%w: hop must be positive, got %d", ErrInvalidWindowConfig, c.Hop)
	}

	if c.Hop >= c.WindowSize {
		return fmt.Errorf("%w: hop (%d) must be smaller than window size (%d)", ErrInvalidWindowConfig, c.Hop, c.WindowSize)
	}

	if c.PhaseWrap != PhaseWrapTrue && c.PhaseWrap != PhaseWrapLegacy {
		return fmt.Errorf("%w: unknown phase wrap mode %d", ErrInvalidConfig, int(c.PhaseWrap))
	}

	return nil
}

// ValidateFactor checks that factor is a usable speed or stretch factor.
func ValidateFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: factor must be finite, got %v", ErrInvalidFactor, factor)
	}

	if factor <= 0 {
		return fmt.Errorf("%w: factor must be positive, got %v", ErrInvalidFactor, factor)
	}

	if factor < minFactor || factor > maxFactor {
		return fmt.Errorf("%w: factor out of range (%v to %v), got %v", ErrInvalidFactor, minFactor, maxFactor, factor)
	}

	return nil
}

// SemitoneRatio returns the equal-tempered frequency ratio 2^(n/12) for a
// shift of n semitones.
func SemitoneRatio(n float64) float64 {
	return math.Pow(octaveRatio, n/semitonesPerOctave)
}

// Transformer applies the speed, stretch and pitch-shift transforms with a
// fixed configuration.
//
// A Transformer holds no mutable state: every call allocates its own
// working buffers, so a single instance is safe for concurrent use.
type Transformer struct {
	config Config
}

// New creates a Transformer with the specified configuration.
func New(config *Config) (*Transformer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Transformer{config: *config}, nil
}

// Config returns a copy of the active configuration.
func (t *Transformer) Config() Config {
	return t.config
}

// Speedx changes speed and pitch together by picking the nearest original
// sample at every position k*factor. The result has about len(s)/factor
// samples.
func (t *Transformer) Speedx(s []int16, factor float64) ([]int16, error) {
	if err := ValidateFactor(factor); err != nil {
		return nil, err
	}
	return engine.Speedx(s, factor), nil
}

// Stretch changes duration by 1/factor while preserving pitch, using a
// phase vocoder. The result has int(len(s)/factor + WindowSize) samples and
// is peak-normalized to 2^12.
//
// Input shorter than WindowSize+Hop is not an error: no analysis frame
// fits, and the result is silence.
func (t *Transformer) Stretch(s []int16, factor float64) ([]int16, error) {
	if err := ValidateFactor(factor); err != nil {
		return nil, err
	}
	return t.stretch(s, factor), nil
}

func (t *Transformer) stretch(s []int16, factor float64) []int16 {
	v := engine.NewVocoder(engine.VocoderConfig{
		WindowSize: t.config.WindowSize,
		Hop:        t.config.Hop,
		Wrap:       engineWrap(t.config.PhaseWrap),
		EnableSIMD: t.config.EnableSIMD,
	})

	output := v.Stretch(engine.ToFloat64(s), factor)
	v.Normalize(output)
	return engine.Quantize16(output)
}

// PitchShift shifts pitch by n semitones (positive raises, negative lowers)
// while keeping the duration close to len(s).
//
// It stretches by the inverse of 2^(n/12), drops the first WindowSize
// samples of vocoder start-up transient, then speeds the remainder up by
// 2^(n/12). When nothing survives the trim the result is empty.
func (t *Transformer) PitchShift(s []int16, n float64) ([]int16, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%w: semitones must be finite, got %v", ErrInvalidFactor, n)
	}

	factor := SemitoneRatio(n)
	if err := ValidateFactor(factor); err != nil {
		return nil, fmt.Errorf("%v semitones: %w", n, err)
	}

	stretched := t.stretch(s, 1.0/factor)
	if len(stretched) <= t.config.WindowSize {
		return []int16{}, nil
	}
	return engine.Speedx(stretched[t.config.WindowSize:], factor), nil
}

// PitchShiftBatch shifts s by each semitone count in ns and returns the
// results in the same order. When EnableParallel is set every shift runs in
// its own goroutine; otherwise they run sequentially.
func (t *Transformer) PitchShiftBatch(s []int16, ns []float64) ([][]int16, error) {
	if len(ns) == 0 {
		return nil, fmt.Errorf("%w: no semitone values", ErrEmptyInput)
	}

	output := make([][]int16, len(ns))

	if !t.config.EnableParallel || len(ns) == 1 {
		for i, n := range ns {
			shifted, err := t.PitchShift(s, n)
			if err != nil {
				return nil, fmt.Errorf("shift %d: %w", i, err)
			}
			output[i] = shifted
		}
		return output, nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(ns))

	for i, n := range ns {
		wg.Add(1)
		go func(idx int, semitones float64) {
			defer wg.Done()

			shifted, err := t.PitchShift(s, semitones)
			if err != nil {
				errChan <- fmt.Errorf("shift %d: %w", idx, err)
				return
			}
			output[idx] = shifted
		}(i, n)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

func engineWrap(m PhaseWrapMode) engine.PhaseWrap {
	if m == PhaseWrapLegacy {
		return engine.WrapLegacy
	}
	return engine.WrapTrue
}
