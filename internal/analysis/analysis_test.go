package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sine(n int, freq, rate, amp float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return x
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		freq float64
	}{
		{"A4", 440},
		{"A5", 880},
		{"1kHz", 1000},
		{"off-bin", 523.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := sine(44100, tt.freq, 44100, 1000)
			got := DominantFrequency(x, 44100)
			assert.InDelta(t, tt.freq, got, 1.0)
		})
	}
}

func TestDominantFrequency_Degenerate(t *testing.T) {
	assert.Zero(t, DominantFrequency(nil, 44100))
	assert.Zero(t, DominantFrequency([]float64{1, 2}, 44100))
	assert.Zero(t, DominantFrequency(make([]float64, 1024), 44100), "silence has no dominant component")
	assert.Zero(t, DominantFrequency(sine(1024, 440, 44100, 1), 0))
}

func TestRMS(t *testing.T) {
	x := sine(48000, 1000, 48000, 2)
	assert.InDelta(t, 2/math.Sqrt2, RMS(x), 1e-3)

	x32 := make([]float32, len(x))
	for i, v := range x {
		x32[i] = float32(v)
	}
	assert.InDelta(t, 2/math.Sqrt2, RMS(x32), 1e-3)

	assert.Zero(t, RMS([]float64{}))
}

func TestMeanAndPeak(t *testing.T) {
	x := []float64{-4, 1, 2, 3}
	assert.InDelta(t, 0.5, Mean(x), 1e-12)
	assert.InDelta(t, 4.0, Peak(x), 1e-12)
	assert.Zero(t, Mean([]float32{}))
	assert.Zero(t, Peak([]float32{}))
}

func TestBlockRMS(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = 3
	}

	blocks := BlockRMS(x, 10, 95, 20)
	require.Len(t, blocks, 4)
	for _, b := range blocks {
		assert.InDelta(t, 3.0, b, 1e-12)
	}

	assert.Nil(t, BlockRMS(x, 0, 10, 20))
	assert.Nil(t, BlockRMS(x, 0, 100, 0))
}
