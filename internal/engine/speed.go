// Package engine implements the time-stretch, speed and pitch-shift kernels.
package engine

import "math"

// Speedx resamples input by picking the nearest original sample at each
// synthetic position k*factor, for k = 0, 1, 2, ... while k*factor < len(input).
//
// No interpolation is performed, so pitch and duration change together.
// Positions are rounded half to even, and a position that rounds onto
// len(input) is dropped rather than padded. factor must be positive and
// finite; callers validate it.
func Speedx[T any](input []T, factor float64) []T {
	n := len(input)
	if n == 0 {
		return []T{}
	}

	output := make([]T, 0, SpeedxLen(n, factor))
	limit := float64(n)
	for k := 0; ; k++ {
		pos := float64(k) * factor
		if pos >= limit {
			break
		}
		idx := int(math.RoundToEven(pos))
		if idx >= n {
			break
		}
		output = append(output, input[idx])
	}
	return output
}

// SpeedxLen returns the upper bound ceil(n/factor) on the Speedx output length.
func SpeedxLen(n int, factor float64) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / factor))
}
