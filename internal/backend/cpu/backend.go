// Package cpu implements the CPU compute backend.
//
// Kernels pick an unrolled fast path when the host CPU advertises AVX2/FMA
// (detected via klauspost/cpuid) and run elementwise loops through the
// parallel helper. Reductions are always sequential left-to-right so that a
// fixed seed reproduces a training run exactly.
package cpu

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/parallel"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device   tensor.Device
	par      parallel.Config
	unrolled bool
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		par:      parallel.DefaultConfig(),
		unrolled: hasFastKernels(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binary dispatches an element-wise binary op through the fast same-shape
// path or the broadcasting slow path.
func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if !needsBroadcast {
		// Fast path: same shape. Reuse a's buffer when nothing else holds it.
		if a.IsUnique() {
			cpu.sameShapeInto(a, a, b, f32, f64)
			return a
		}
		result := newRaw(outShape, a.DType(), cpu.device, name)
		cpu.sameShapeInto(result, a, b, f32, f64)
		return result
	}

	result := newRaw(outShape, a.DType(), cpu.device, name)
	broadcastInto(result, a, b, f32, f64)
	return result
}

// sameShapeInto applies the op over equal-shaped operands.
func (cpu *CPUBackend) sameShapeInto(dst, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64,
) {
	n := a.NumElements()
	switch a.DType() {
	case tensor.Float32:
		d, x, y := dst.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		parallel.ForRange(n, func(s, e int) {
			applySlice(d[s:e], x[s:e], y[s:e], f32, cpu.unrolled)
		}, cpu.par)
	case tensor.Float64:
		d, x, y := dst.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		parallel.ForRange(n, func(s, e int) {
			applySlice(d[s:e], x[s:e], y[s:e], f64, cpu.unrolled)
		}, cpu.par)
	}
}

// newRaw allocates a result tensor or panics with the op name.
func newRaw(shape tensor.Shape, dtype tensor.DataType, device tensor.Device, op string) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// broadcastInto applies the op with full NumPy-style index mapping.
func broadcastInto(dst, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64,
) {
	outShape := dst.Shape()
	aIdx := broadcastIndexer(outShape, a.Shape())
	bIdx := broadcastIndexer(outShape, b.Shape())

	switch a.DType() {
	case tensor.Float32:
		d, x, y := dst.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := range d {
			d[i] = f32(x[aIdx[i]], y[bIdx[i]])
		}
	case tensor.Float64:
		d, x, y := dst.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		for i := range d {
			d[i] = f64(x[aIdx[i]], y[bIdx[i]])
		}
	}
}

// broadcastIndexer precomputes, for every flat index of outShape, the flat
// index into a tensor of shape inShape broadcast up to outShape.
func broadcastIndexer(outShape, inShape tensor.Shape) []int {
	outStrides := outShape.ComputeStrides()
	inStrides := inShape.ComputeStrides()
	offset := len(outShape) - len(inShape)

	idx := make([]int, outShape.NumElements())
	for i := range idx {
		rem := i
		flat := 0
		for d := 0; d < len(outShape); d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]

			in := d - offset
			if in < 0 {
				continue
			}
			if inShape[in] == 1 {
				continue // broadcast dimension, coordinate pinned to 0
			}
			flat += coord * inStrides[in]
		}
		idx[i] = flat
	}
	return idx
}
