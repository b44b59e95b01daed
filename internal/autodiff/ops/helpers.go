package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// reduceBroadcast sums a gradient down to the shape of the input it belongs
// to. When the forward pass broadcast an input up (e.g. a {1, n} bias row
// added to a {m, n} activation), every output element that read the same
// input element contributes to that element's gradient.
func reduceBroadcast(grad *tensor.RawTensor, target tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(target) {
		return grad
	}

	result, err := tensor.NewRaw(target, grad.DType(), backend.Device())
	if err != nil {
		panic(err)
	}

	idx := broadcastIndex(grad.Shape(), target)
	switch grad.DType() {
	case tensor.Float32:
		src, dst := grad.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[idx[i]] += v
		}
	case tensor.Float64:
		src, dst := grad.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[idx[i]] += v
		}
	}

	return result
}

// broadcastIndex maps every flat index of outShape onto the flat index of
// the corresponding element in a tensor of shape inShape broadcast up to
// outShape.
func broadcastIndex(outShape, inShape tensor.Shape) []int {
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
			if in < 0 || inShape[in] == 1 {
				continue
			}
			flat += coord * inStrides[in]
		}
		idx[i] = flat
	}
	return idx
}

// fullLike creates a tensor of the given shape filled with value.
func fullLike(shape tensor.Shape, dtype tensor.DataType, device tensor.Device, value float64) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(err)
	}

	switch dtype {
	case tensor.Float32:
		data := result.AsFloat32()
		for i := range data {
			data[i] = float32(value)
		}
	case tensor.Float64:
		data := result.AsFloat64()
		for i := range data {
			data[i] = value
		}
	}

	return result
}
