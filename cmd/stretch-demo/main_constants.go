package main

// Default command-line flag values
const (
	defaultSampleRate = 44100.0 // CD quality sample rate
	defaultFrequency  = 440.0   // A4 test tone
	defaultDuration   = 1.0     // Seconds of test signal
	defaultSemitones  = 12.0    // One octave
)

// Test signal parameters
const (
	testSignalAmplitude = 10000.0 // Well below 16-bit full scale
)

// Demo factors for the stretch and speed comparisons
var demoFactors = []float64{0.5, 0.75, 1.5, 2.0}
