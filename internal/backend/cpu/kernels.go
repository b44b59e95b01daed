package cpu

import "github.com/klauspost/cpuid/v2"

// hasFastKernels reports whether the host CPU supports the vector features
// the unrolled kernels are tuned for.
func hasFastKernels() bool {
	return cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3)
}

// applySlice applies a binary op over equal-length slices.
// The unrolled variant gives the compiler independent chains to vectorize.
func applySlice[T float32 | float64](dst, a, b []T, f func(x, y T) T, unrolled bool) {
	if !unrolled {
		for i := range dst {
			dst[i] = f(a[i], b[i])
		}
		return
	}

	n := len(dst)
	i := 0
	for ; i+4 <= n; i += 4 {
		dst[i] = f(a[i], b[i])
		dst[i+1] = f(a[i+1], b[i+1])
		dst[i+2] = f(a[i+2], b[i+2])
		dst[i+3] = f(a[i+3], b[i+3])
	}
	for ; i < n; i++ {
		dst[i] = f(a[i], b[i])
	}
}

// applyUnary applies a unary op over equal-length slices.
func applyUnary[T float32 | float64](dst, src []T, f func(x T) T) {
	for i := range dst {
		dst[i] = f(src[i])
	}
}
