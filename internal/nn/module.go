// Package nn implements the neural network building blocks for PINN
// approximators.
//
// This package provides:
//   - Module interface: base interface for all network components
//   - Parameter: trainable parameters with gradient tracking
//   - Linear: fully connected layer
//   - Activations: Tanh, Sigmoid, ReLU
//   - Sequential: container for stacking layers, with build-time
//     dimension-chain validation
//   - Loss functions: MSE and sum-of-squares, expressed as recorded tensor
//     arithmetic so gradients flow through them
//
// Everything works in float64: the residual finite-difference step used by
// the physics loss is tied to the working precision, and float32 would not
// leave enough mantissa for a usable difference quotient.
package nn

import (
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose to build networks:
//
//	model, err := nn.NewChain(
//	    nn.NewLinear(1, 16, rng, backend),
//	    nn.NewTanh[B](),
//	    nn.NewLinear(16, 1, rng, backend),
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	// Inputs are batches of row vectors: shape [batch, features].
	Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B]

	// Parameters returns all trainable parameters of this module.
	// Modules without trainable state (activations) return nil.
	Parameters() []*Parameter[B]
}
