// Package optim implements the optimization algorithms used by the training
// loop.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with optional momentum
//   - Adam: adaptive moment estimation
//
// Optimizers mutate parameter storage directly through float64 slices.
// Updates never go through the backend, so they are invisible to a recording
// gradient tape and cost no graph nodes.
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 1e-3})
//
//	for step := range steps {
//	    backend.GetTape().StartRecording()
//	    loss := computeLoss(model)
//	    grads := autodiff.Backward(loss, backend)
//	    backend.GetTape().StopRecording()
//
//	    optimizer.Step(grads)
//	    optimizer.ZeroGrad()
//	}
package optim

import (
	"github.com/pinn-ml/pinn/internal/nn"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one gradient update to all parameters, given the
	// gradient map produced by autodiff.Backward. Parameters absent from
	// the map (not part of the recorded graph) are skipped.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients. Call before each backward
	// pass to prevent accumulation across iterations.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// gradientFor looks up the gradient recorded for a parameter's storage.
// Returns nil when the parameter did not participate in the forward pass.
func gradientFor[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) []float64 {
	raw := grads[param.Tensor().Raw()]
	if raw == nil {
		return nil
	}
	return raw.AsFloat64()
}
