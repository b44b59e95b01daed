package nn

import (
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Parameter represents a trainable parameter in a network: a named tensor
// whose values the optimizer mutates between iterations.
//
// During a loss evaluation the parameter tensor is only read; the optimizer
// is the sole writer, for the duration of a training run.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float64, B]
	grad   *tensor.Tensor[float64, B]
}

// NewParameter creates a new trainable parameter.
// The tensor should be initialized before creating the Parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float64, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float64, B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before the first backward pass.
func (p *Parameter[B]) Grad() *tensor.Tensor[float64, B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float64, B]) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
// Called before each training iteration to avoid accumulating gradients
// from previous iterations.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}

// NumValues returns the number of scalar values in the parameter.
func (p *Parameter[B]) NumValues() int {
	return p.tensor.NumElements()
}
