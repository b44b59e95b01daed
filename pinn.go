// Copyright 2026 PINN ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pinn provides the public API for physics-informed neural
// network training.
//
// A physics-informed network approximates the solution of a differential
// equation by minimizing a composite of two loss terms: a residual loss
// measuring violation of the equation at collocation points, and an
// optional data loss measuring deviation from observations.
//
// Example, approximating u' = cos(2*pi*t) with u(0) = 1:
//
//	backend := autodiff.New(cpu.New())
//	rng := rand.New(rand.NewSource(1))
//
//	approx, err := pinn.NewMLP[*autodiff.Backend[*cpu.Backend]](
//	    pinn.MLPConfig{Hidden: []int{32, 32}}, rng, backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	approx = approx.WithInitialValue(1.0)
//
//	problem := &pinn.Problem[*autodiff.Backend[*cpu.Backend]]{
//	    Approx: approx,
//	    RHS: func(u, t *tensor.Tensor[float64, *autodiff.Backend[*cpu.Backend]]) *tensor.Tensor[float64, *autodiff.Backend[*cpu.Backend]] {
//	        return t.MulScalar(2 * math.Pi).Cos()
//	    },
//	    Collocation: pinn.UniformGrid(0, 1, 64, backend),
//	}
//
//	optimizer := optim.NewAdam(approx.Parameters(), optim.AdamConfig{LR: 0.005})
//	trainer, err := pinn.NewTrainer(backend, approx.Parameters(), optimizer,
//	    pinn.TrainerConfig{Steps: 5000})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := trainer.Run(problem)
package pinn

import (
	"math/rand"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/nn"
	"github.com/pinn-ml/pinn/internal/optim"
	"github.com/pinn-ml/pinn/internal/pinn"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Approximator is a parameterized function with an optional
// initial-condition wrapper g(t) = u0 + t*NN(t).
type Approximator[B autodiff.BackwardCapable] = pinn.Approximator[B]

// MLPConfig describes a feed-forward approximator.
type MLPConfig = pinn.MLPConfig

// Activation selects the hidden-layer nonlinearity of an MLP.
type Activation = pinn.Activation

// Activation constants.
const (
	ActTanh    Activation = pinn.ActTanh
	ActSigmoid Activation = pinn.ActSigmoid
	ActReLU    Activation = pinn.ActReLU
)

// RHS is the right-hand side of the target equation u' = f(u, t) in
// tensor form.
type RHS[B autodiff.BackwardCapable] = pinn.RHS[B]

// Problem bundles an approximator with residual and data loss terms.
type Problem[B autodiff.BackwardCapable] = pinn.Problem[B]

// Trainer drives the optimization loop.
type Trainer[B autodiff.BackwardCapable] = pinn.Trainer[B]

// TrainerConfig configures the optimization loop.
type TrainerConfig = pinn.TrainerConfig

// Report summarizes a finished run.
type Report = pinn.Report

// Callback receives (step, loss) at the configured cadence.
type Callback = pinn.Callback

// State is the trainer life-cycle state.
type State = pinn.State

// Trainer states.
const (
	StateInitialized      State = pinn.StateInitialized
	StateRunning          State = pinn.StateRunning
	StateBudgetReached    State = pinn.StateBudgetReached
	StateThresholdReached State = pinn.StateThresholdReached
	StateStopped          State = pinn.StateStopped
	StateFailed           State = pinn.StateFailed
)

// ErrStopTraining stops the training loop cleanly when returned from a
// callback.
var ErrStopTraining = pinn.ErrStopTraining

// ConfigError reports an invalid configuration, surfaced before training
// starts.
type ConfigError = pinn.ConfigError

// EvalError reports a non-finite loss or gradient; the run is aborted and
// the parameters rolled back to their last finite state.
type EvalError = pinn.EvalError

// NewMLP constructs a feed-forward approximator.
func NewMLP[B autodiff.BackwardCapable](config MLPConfig, rng *rand.Rand, backend B) (*Approximator[B], error) {
	return pinn.NewMLP(config, rng, backend)
}

// New wraps an existing module as an approximator.
func New[B autodiff.BackwardCapable](net nn.Module[B], backend B) *Approximator[B] {
	return pinn.New(net, backend)
}

// NewTrainer validates the configuration and creates a trainer.
func NewTrainer[B autodiff.BackwardCapable](backend B, params []*nn.Parameter[B], optimizer optim.Optimizer, config TrainerConfig) (*Trainer[B], error) {
	return pinn.NewTrainer(backend, params, optimizer, config)
}

// ResidualLoss measures violation of g'(t) = f(g(t), t) at the given
// collocation points.
func ResidualLoss[B autodiff.BackwardCapable](g *Approximator[B], f RHS[B], points *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return pinn.ResidualLoss(g, f, points)
}

// DataLoss measures deviation from observed (input, output) pairs.
func DataLoss[B autodiff.BackwardCapable](g *Approximator[B], inputs, targets *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return pinn.DataLoss(g, inputs, targets)
}

// CompositeLoss returns dataLoss + lambda*residualLoss.
func CompositeLoss[B autodiff.BackwardCapable](dataLoss, residualLoss *tensor.Tensor[float64, B], lambda float64) *tensor.Tensor[float64, B] {
	return pinn.CompositeLoss(dataLoss, residualLoss, lambda)
}

// UniformGrid returns n evenly spaced collocation points on [t0, t1].
func UniformGrid[B tensor.Backend](t0, t1 float64, n int, backend B) *tensor.Tensor[float64, B] {
	return pinn.UniformGrid(t0, t1, n, backend)
}

// RandomUniform returns n collocation points drawn uniformly from
// [t0, t1).
func RandomUniform[B tensor.Backend](t0, t1 float64, n int, rng *rand.Rand, backend B) *tensor.Tensor[float64, B] {
	return pinn.RandomUniform(t0, t1, n, rng, backend)
}
