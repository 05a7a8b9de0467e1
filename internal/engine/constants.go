package engine

import "math"

// Phase vocoder constants
const (
	// Default analysis window length in samples (2^13).
	DefaultWindowSize = 8192

	// Default analysis hop in samples (2^11, a quarter window).
	DefaultHop = 2048

	// Output peak after normalization: 2^(16-4), leaving 4 bits of headroom
	// below the 16-bit full scale.
	normalizationPeak = 1 << (16 - 4)

	twoPi = 2 * math.Pi

	// Modulus of the legacy phase wrap, which reduces modulo 2 and then
	// multiplies by pi.
	legacyPhaseModulus = 2.0
)

// 16-bit PCM limits
const (
	maxInt16 = math.MaxInt16
	minInt16 = math.MinInt16
)
