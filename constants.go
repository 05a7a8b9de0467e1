package stretch

import "github.com/tphakala/go-audio-stretch/internal/engine"

// Window geometry defaults
const (
	DefaultWindowSize = engine.DefaultWindowSize // 2^13 samples
	DefaultHop        = engine.DefaultHop        // 2^11 samples, a quarter window
)

// Factor limits
const (
	minFactor = 1.0 / 256.0 // Minimum speed/stretch factor (1/256)
	maxFactor = 256.0       // Maximum speed/stretch factor (256x)
)

// Equal temperament
const (
	semitonesPerOctave = 12.0
	octaveRatio        = 2.0
)
