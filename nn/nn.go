// Copyright 2026 PINN ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/pinn-ml/pinn/internal/nn"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Module is the base interface for all network components.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a named trainable tensor with gradient tracking.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a trainable parameter from an initialized tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float64, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Linear is a fully connected layer computing y = x @ W^T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a fully connected layer with Xavier-initialized
// weights and zero biases. The rng makes initialization reproducible.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, rng, backend)
}

// Tanh is the hyperbolic tangent activation.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a Tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// Sigmoid is the logistic activation.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// ReLU is the rectified linear activation.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sequential chains modules into left-to-right composition.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container without dimension checks.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// NewChain creates a sequential container and validates that consecutive
// Linear layers' dimensions chain. Returns an error before any training
// can start if they do not.
func NewChain[B tensor.Backend](modules ...Module[B]) (*Sequential[B], error) {
	return nn.NewChain(modules...)
}

// MSELoss computes the mean squared error between predictions and targets.
func MSELoss[B tensor.Backend](predictions, targets *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return nn.MSELoss(predictions, targets)
}

// SumSquaredLoss computes the unnormalized sum of squared errors.
func SumSquaredLoss[B tensor.Backend](predictions, targets *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return nn.SumSquaredLoss(predictions, targets)
}

// Xavier returns a tensor initialized with the Glorot uniform scheme.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float64, B] {
	return nn.Xavier(fanIn, fanOut, shape, rng, backend)
}
