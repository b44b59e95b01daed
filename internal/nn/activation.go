package nn

import (
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Tanh applies the hyperbolic tangent element-wise.
//
// Tanh is the default activation for PINN approximators: it is smooth
// everywhere, so the difference quotient used by the residual loss sees a
// differentiable surrogate.
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a Tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies tanh element-wise.
func (t *Tanh[B]) Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return input.Tanh()
}

// Parameters returns nil; Tanh has no trainable parameters.
func (t *Tanh[B]) Parameters() []*Parameter[B] {
	return nil
}

// Sigmoid applies the logistic function element-wise.
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies sigmoid element-wise.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return input.Sigmoid()
}

// Parameters returns nil; Sigmoid has no trainable parameters.
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// ReLU applies max(0, x) element-wise.
//
// ReLU is not smooth at zero, which makes it a poor choice for residual
// losses built on difference quotients. It is provided for data-only
// regression networks.
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU element-wise.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return input.ReLU()
}

// Parameters returns nil; ReLU has no trainable parameters.
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}
