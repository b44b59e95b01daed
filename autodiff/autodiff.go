// Copyright 2026 PINN ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// It wraps any backend with a gradient tape that records operations during
// the forward pass and replays them in reverse to compute exact gradients.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//
//	backend.GetTape().StartRecording()
//	loss := model.Forward(input) // operations recorded
//	grads := autodiff.Backward(loss, backend)
//	backend.GetTape().StopRecording()
package autodiff

import (
	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// BackwardCapable is the constraint for backends that support the
// backward pass. Backend implements it.
type BackwardCapable = autodiff.BackwardCapable

// GradientTape records operations for the backward pass.
type GradientTape = autodiff.GradientTape

// New creates an autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// Backward computes the gradient of t with respect to every tensor in the
// recorded computation, returned as a map keyed by raw tensor.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}
