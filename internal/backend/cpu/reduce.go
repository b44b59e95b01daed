package cpu

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// Sum reduces the whole tensor to a single-element tensor {1}.
// The accumulation runs strictly left-to-right: floating-point addition is
// not associative, and a fixed order keeps runs reproducible.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := newRaw(tensor.Shape{1}, x.DType(), cpu.device, "sum")

	switch x.DType() {
	case tensor.Float32:
		var acc float32
		for _, v := range x.AsFloat32() {
			acc += v
		}
		result.AsFloat32()[0] = acc
	case tensor.Float64:
		var acc float64
		for _, v := range x.AsFloat64() {
			acc += v
		}
		result.AsFloat64()[0] = acc
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

// Mean reduces the whole tensor to its arithmetic mean, shape {1}.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.Sum(x)
	n := x.NumElements()

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] /= float32(n)
	case tensor.Float64:
		result.AsFloat64()[0] /= float64(n)
	}

	return result
}
