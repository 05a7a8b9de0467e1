// Package simdops provides generic SIMD operations for float32 and float64 types,
// plus the complex128 kernels used by the spectral code.
//
// Every table has a pure Go twin so callers can switch acceleration off
// without touching the calling code.
package simdops

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []F) F

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)
}

// ComplexOps groups complex128 kernels.
type ComplexOps struct {
	// Mul computes the elementwise product dst[i] = a[i] * b[i].
	Mul func(dst, a, b []complex128)
}

var (
	ops32 = Ops[float32]{
		DotProductUnsafe: f32.DotProductUnsafe,
		Sum:              f32.Sum,
		Scale:            f32.Scale,
	}
	ops64 = Ops[float64]{
		DotProductUnsafe: f64.DotProductUnsafe,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
	}
	generic32 = Ops[float32]{
		DotProductUnsafe: dotGeneric[float32],
		Sum:              sumGeneric[float32],
		Scale:            scaleGeneric[float32],
	}
	generic64 = Ops[float64]{
		DotProductUnsafe: dotGeneric[float64],
		Sum:              sumGeneric[float64],
		Scale:            scaleGeneric[float64],
	}

	complexSIMD    = ComplexOps{Mul: c128.Mul}
	complexGeneric = ComplexOps{Mul: mulComplexGeneric}
)

// For returns the SIMD Ops instance for type F.
// The type switch happens at instantiation time, not in hot paths.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Generic returns the pure Go Ops instance for type F.
func Generic[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&generic32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&generic64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Select returns the SIMD table when useSIMD is true, the pure Go one otherwise.
func Select[F Float](useSIMD bool) *Ops[F] {
	if useSIMD {
		return For[F]()
	}
	return Generic[F]()
}

// Complex returns the complex128 kernels, SIMD-backed when useSIMD is true.
func Complex(useSIMD bool) *ComplexOps {
	if useSIMD {
		return &complexSIMD
	}
	return &complexGeneric
}

// Info describes the instruction set the SIMD tables dispatch to.
func Info() string {
	return cpu.Info()
}

// Ops64 is the table used by the float64 engine.
type Ops64 = Ops[float64]

func dotGeneric[F Float](a, b []F) F {
	var sum F
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func sumGeneric[F Float](a []F) F {
	var sum F
	for _, v := range a {
		sum += v
	}
	return sum
}

func scaleGeneric[F Float](dst, a []F, s F) {
	for i := range a {
		dst[i] = a[i] * s
	}
}

func mulComplexGeneric(dst, a, b []complex128) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}
