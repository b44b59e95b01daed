package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// ExpOp represents the exponential: output = exp(x).
//
// Since d(exp(x))/dx = exp(x) and the output already holds exp(x):
// grad_input = outputGrad * output.
type ExpOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewExpOp creates a new ExpOp.
func NewExpOp(input, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{input: input, output: output}
}

// Backward computes grad_input = outputGrad * exp(x).
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// Inputs returns the input tensor.
func (op *ExpOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *ExpOp) Output() *tensor.RawTensor { return op.output }

// SqrtOp represents the square root: output = sqrt(x).
//
// d(sqrt(x))/dx = 1 / (2 * sqrt(x)) = 1 / (2 * output).
type SqrtOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(input, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{input: input, output: output}
}

// Backward computes grad_input = outputGrad / (2 * sqrt(x)).
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, backend.MulScalar(op.output, 2))}
}

// Inputs returns the input tensor.
func (op *SqrtOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *SqrtOp) Output() *tensor.RawTensor { return op.output }

// SinOp represents the sine: output = sin(x).
//
// d(sin(x))/dx = cos(x), so grad_input = outputGrad * cos(input).
type SinOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSinOp creates a new SinOp.
func NewSinOp(input, output *tensor.RawTensor) *SinOp {
	return &SinOp{input: input, output: output}
}

// Backward computes grad_input = outputGrad * cos(input).
func (op *SinOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, backend.Cos(op.input))}
}

// Inputs returns the input tensor.
func (op *SinOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *SinOp) Output() *tensor.RawTensor { return op.output }

// CosOp represents the cosine: output = cos(x).
//
// d(cos(x))/dx = -sin(x), so grad_input = -outputGrad * sin(input).
type CosOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewCosOp creates a new CosOp.
func NewCosOp(input, output *tensor.RawTensor) *CosOp {
	return &CosOp{input: input, output: output}
}

// Backward computes grad_input = -outputGrad * sin(input).
func (op *CosOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := backend.Mul(outputGrad, backend.Sin(op.input))
	return []*tensor.RawTensor{backend.MulScalar(grad, -1)}
}

// Inputs returns the input tensor.
func (op *CosOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *CosOp) Output() *tensor.RawTensor { return op.output }
