package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// SumOp represents a full reduction: output = Σ x_i, shape {1}.
//
// Every input element contributes with weight 1, so the scalar output
// gradient is broadcast back to the input shape unchanged.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	g := scalarValue(outputGrad)
	return []*tensor.RawTensor{fullLike(op.input.Shape(), op.input.DType(), backend.Device(), g)}
}

// Inputs returns the input tensor.
func (op *SumOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *SumOp) Output() *tensor.RawTensor { return op.output }

// MeanOp represents a full reduction to the mean: output = (Σ x_i) / n.
//
// Every input element contributes with weight 1/n.
type MeanOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewMeanOp creates a new MeanOp.
func NewMeanOp(input, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{input: input, output: output}
}

// Backward broadcasts the scalar gradient divided by n to the input shape.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	g := scalarValue(outputGrad) / float64(op.input.NumElements())
	return []*tensor.RawTensor{fullLike(op.input.Shape(), op.input.DType(), backend.Device(), g)}
}

// Inputs returns the input tensor.
func (op *MeanOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *MeanOp) Output() *tensor.RawTensor { return op.output }

// scalarValue reads the single element of a {1}-shaped gradient.
func scalarValue(t *tensor.RawTensor) float64 {
	switch t.DType() {
	case tensor.Float32:
		return float64(t.AsFloat32()[0])
	case tensor.Float64:
		return t.AsFloat64()[0]
	default:
		panic("scalarValue: unsupported dtype")
	}
}
