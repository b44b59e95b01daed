package nn

import (
	"github.com/pinn-ml/pinn/internal/tensor"
)

// MSELoss computes the mean squared error between predictions and targets
// as recorded tensor arithmetic, so gradients flow through the reduction.
//
// Returns a scalar tensor of shape (1).
func MSELoss[B tensor.Backend](predictions, targets *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	diff := predictions.Sub(targets)
	return diff.Mul(diff).Mean()
}

// SumSquaredLoss computes the unnormalized sum of squared errors
// sum_i (predictions_i - targets_i)^2.
//
// Unlike MSELoss this does not divide by the batch size: each observation
// contributes its full squared error regardless of how many there are.
// Returns a scalar tensor of shape (1).
func SumSquaredLoss[B tensor.Backend](predictions, targets *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	diff := predictions.Sub(targets)
	return diff.Mul(diff).Sum()
}
