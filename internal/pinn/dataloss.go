package pinn

import (
	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/nn"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// DataLoss measures how far the approximator deviates from observed
// (input, output) pairs:
//
//	sum_i ( g(x_i) - y_i )^2
//
// The sum is not normalized by the observation count: with sparse data
// every observation keeps its full weight against the residual term, and
// the regularization coefficient absorbs any rescaling.
//
// Returns a non-negative scalar tensor of shape (1); zero iff every
// observation is matched exactly.
func DataLoss[B autodiff.BackwardCapable](g *Approximator[B], inputs, targets *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	return nn.SumSquaredLoss(g.Forward(inputs), targets)
}
