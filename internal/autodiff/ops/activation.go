package ops

import "github.com/pinn-ml/pinn/internal/tensor"

// TanhOp represents the hyperbolic tangent activation: output = tanh(x).
//
// d(tanh(x))/dx = 1 - tanh²(x), and the output already holds tanh(x):
// grad_input = outputGrad * (1 - output²).
type TanhOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewTanhOp creates a new TanhOp.
func NewTanhOp(input, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{input: input, output: output}
}

// Backward computes grad_input = outputGrad * (1 - tanh²(x)).
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	outputSquared := backend.Mul(op.output, op.output)
	derivative := backend.MulScalar(backend.SubScalar(outputSquared, 1), -1) // 1 - tanh²
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}

// Inputs returns the input tensor.
func (op *TanhOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *TanhOp) Output() *tensor.RawTensor { return op.output }

// SigmoidOp represents the logistic activation: output = σ(x).
//
// d(σ(x))/dx = σ(x) * (1 - σ(x)):
// grad_input = outputGrad * output * (1 - output).
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{input: input, output: output}
}

// Backward computes grad_input = outputGrad * σ(x) * (1 - σ(x)).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	oneMinus := backend.MulScalar(backend.SubScalar(op.output, 1), -1)
	derivative := backend.Mul(op.output, oneMinus)
	return []*tensor.RawTensor{backend.Mul(outputGrad, derivative)}
}

// Inputs returns the input tensor.
func (op *SigmoidOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *SigmoidOp) Output() *tensor.RawTensor { return op.output }

// ReLUOp represents the rectifier activation: output = max(0, x).
//
// The derivative is 1 for x > 0 and 0 for x < 0. At exactly 0 the function
// has a kink; the right derivative (0) is used there, which is harmless
// because continuous sampling hits the kink with probability zero.
type ReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

// Backward masks the output gradient where the input was non-positive.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad, err := tensor.NewRaw(op.input.Shape(), op.input.DType(), backend.Device())
	if err != nil {
		panic(err)
	}

	switch op.input.DType() {
	case tensor.Float32:
		in, g, dst := op.input.AsFloat32(), outputGrad.AsFloat32(), grad.AsFloat32()
		for i, v := range in {
			if v > 0 {
				dst[i] = g[i]
			}
		}
	case tensor.Float64:
		in, g, dst := op.input.AsFloat64(), outputGrad.AsFloat64(), grad.AsFloat64()
		for i, v := range in {
			if v > 0 {
				dst[i] = g[i]
			}
		}
	}

	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *ReLUOp) Inputs() []*tensor.RawTensor { return []*tensor.RawTensor{op.input} }

// Output returns the output tensor.
func (op *ReLUOp) Output() *tensor.RawTensor { return op.output }
