package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// ScalarOp represents the element-wise combination of a tensor with a
// constant: output = x ∘ c for ∘ in {*, +, -, /}. The constant is not a
// tensor, so the only gradient flows to x.
type ScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	// factor is d(output_i)/d(x_i): the scalar for Mul, 1 for Add/Sub,
	// 1/scalar for Div.
	factor float64
}

// NewMulScalarOp records output = x * c.
func NewMulScalarOp(input, output *tensor.RawTensor, scalar float64) *ScalarOp {
	return &ScalarOp{input: input, output: output, factor: scalar}
}

// NewAddScalarOp records output = x + c.
func NewAddScalarOp(input, output *tensor.RawTensor) *ScalarOp {
	return &ScalarOp{input: input, output: output, factor: 1}
}

// NewSubScalarOp records output = x - c.
func NewSubScalarOp(input, output *tensor.RawTensor) *ScalarOp {
	return &ScalarOp{input: input, output: output, factor: 1}
}

// NewDivScalarOp records output = x / c.
func NewDivScalarOp(input, output *tensor.RawTensor, scalar float64) *ScalarOp {
	return &ScalarOp{input: input, output: output, factor: 1 / scalar}
}

// Backward scales the output gradient by the constant factor.
func (op *ScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	if op.factor == 1 {
		return []*tensor.RawTensor{outputGrad}
	}
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.factor)}
}

// Inputs returns the input tensor.
func (op *ScalarOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ScalarOp) Output() *tensor.RawTensor {
	return op.output
}
