package cpu

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/parallel"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) → (M, N).
// Rows of the result are computed independently, so the row loop may run in
// parallel without affecting determinism.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v @ %v", aShape, bShape))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", aShape, bShape))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch: %s vs %s", a.DType(), b.DType()))
	}

	m, k, n := aShape[0], aShape[1], bShape[1]
	result := newRaw(tensor.Shape{m, n}, a.DType(), cpu.device, "matmul")

	switch a.DType() {
	case tensor.Float32:
		matmulRows(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n, cpu.par)
	case tensor.Float64:
		matmulRows(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n, cpu.par)
	}

	return result
}

// matmulRows computes dst = a @ b row by row in ikj order, which walks both
// b and dst sequentially for cache-friendly access.
func matmulRows[T float32 | float64](dst, a, b []T, m, k, n int, par parallel.Config) {
	parallel.For(m, func(i int) {
		row := dst[i*n : (i+1)*n]
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			brow := b[p*n : (p+1)*n]
			for j := range row {
				row[j] += av * brow[j]
			}
		}
	}, par)
}

// Transpose permutes tensor dimensions. With no axes, all dimensions are
// reversed. Only 1D (identity copy) and 2D tensors are supported.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()

	switch len(shape) {
	case 1:
		result := newRaw(shape, t.DType(), cpu.device, "transpose")
		copyData(result, t)
		return result
	case 2:
		if len(axes) != 0 && !(len(axes) == 2 && axes[0] == 1 && axes[1] == 0) {
			if len(axes) == 2 && axes[0] == 0 && axes[1] == 1 {
				result := newRaw(shape, t.DType(), cpu.device, "transpose")
				copyData(result, t)
				return result
			}
			panic(fmt.Sprintf("transpose: invalid axes %v for shape %v", axes, shape))
		}

		rows, cols := shape[0], shape[1]
		result := newRaw(tensor.Shape{cols, rows}, t.DType(), cpu.device, "transpose")
		switch t.DType() {
		case tensor.Float32:
			transpose2D(result.AsFloat32(), t.AsFloat32(), rows, cols)
		case tensor.Float64:
			transpose2D(result.AsFloat64(), t.AsFloat64(), rows, cols)
		}
		return result
	default:
		panic(fmt.Sprintf("transpose: only 1D and 2D tensors supported, got shape %v", shape))
	}
}

func transpose2D[T float32 | float64](dst, src []T, rows, cols int) {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
}

// Reshape returns a tensor with the same elements and a new shape.
// The data is copied so the result is a distinct value on the autodiff tape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.NumElements(), newShape, newShape.NumElements()))
	}

	result := newRaw(newShape, t.DType(), cpu.device, "reshape")
	copyData(result, t)
	return result
}

func copyData(dst, src *tensor.RawTensor) {
	switch src.DType() {
	case tensor.Float32:
		copy(dst.AsFloat32(), src.AsFloat32())
	case tensor.Float64:
		copy(dst.AsFloat64(), src.AsFloat64())
	}
}
