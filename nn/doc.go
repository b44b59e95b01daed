// Copyright 2026 PINN ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for neural network building blocks.
//
// The package exposes:
//   - Module: the interface all network components implement
//   - Linear: fully connected layer with Xavier initialization
//   - Tanh, Sigmoid, ReLU: element-wise activations
//   - Sequential and NewChain: layer composition with build-time
//     dimension validation
//   - MSELoss, SumSquaredLoss: loss functions as recorded tensor
//     arithmetic
//
// Everything computes in float64; see the pinn package for why the
// working precision matters.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	model, err := nn.NewChain(
//	    nn.NewLinear(1, 32, rng, backend),
//	    nn.NewTanh[B](),
//	    nn.NewLinear(32, 1, rng, backend),
//	)
package nn
