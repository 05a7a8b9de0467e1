package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-audio-stretch/internal/simdops"
)

func TestNormalize_PeakMapsTo4096(t *testing.T) {
	tests := []struct {
		name  string
		input []float64
		want  []float64
	}{
		{"positive peak", []float64{0.5, 1, -0.25}, []float64{2048, 4096, -1024}},
		{"negative peak", []float64{0.1, -2, 1}, []float64{204.8, -4096, 2048}},
		{"already scaled", []float64{4096, 0, -4096}, []float64{4096, 0, -4096}},
	}

	for _, tt := range tests {
		for _, useSIMD := range []bool{true, false} {
			buf := append([]float64(nil), tt.input...)
			Normalize(buf, simdops.Select[float64](useSIMD))
			assert.InDeltaSlice(t, tt.want, buf, 1e-9, "%s simd=%v", tt.name, useSIMD)
			assert.InDelta(t, float64(normalizationPeak), Peak(buf), 1e-9)
		}
	}
}

func TestNormalize_PeakQuantizesExactly(t *testing.T) {
	for _, useSIMD := range []bool{true, false} {
		ops := simdops.Select[float64](useSIMD)
		for i := range 1000 {
			p := 0.37 + float64(i)*1.618033988749895
			buf := []float64{p, -p / 2, p / 3}
			Normalize(buf, ops)

			q := Quantize16(buf)
			assert.Equal(t, int16(normalizationPeak), q[0], "p=%v simd=%v", p, useSIMD)
			assert.Equal(t, -q[0]/2, q[1], "p=%v simd=%v", p, useSIMD)
		}
	}
}

func TestNormalize_SilenceUntouched(t *testing.T) {
	buf := make([]float64, 16)
	Normalize(buf, simdops.For[float64]())
	for _, v := range buf {
		assert.False(t, math.IsNaN(v))
		assert.Zero(t, v)
	}

	Normalize(nil, simdops.For[float64]())
}

func TestPeak(t *testing.T) {
	assert.Zero(t, Peak(nil))
	assert.InDelta(t, 3.0, Peak([]float64{1, -3, 2}), 0)
}

func TestQuantize16_TruncatesAndSaturates(t *testing.T) {
	got := Quantize16([]float64{1.7, -1.7, 0.4, 40000, -40000, math.NaN(), 4096})
	assert.Equal(t, []int16{1, -1, 0, 32767, -32768, 0, 4096}, got)
}

func TestToFloat64(t *testing.T) {
	assert.Equal(t, []float64{-32768, 0, 1, 32767}, ToFloat64([]int16{-32768, 0, 1, 32767}))
	assert.Empty(t, ToFloat64(nil))
}
