package pinn

import (
	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// CompositeLoss combines a data loss and a residual loss into the training
// objective
//
//	L_data + lambda * L_ode
//
// With sparse or non-generic observations pure data fitting is
// under-determined: the optimizer finds functions that match the data and
// diverge everywhere else. A positive lambda pulls the solution toward
// functions that also satisfy the assumed equation in the data-free
// regions. lambda = 0 recovers the plain data loss.
func CompositeLoss[B autodiff.BackwardCapable](dataLoss, residualLoss *tensor.Tensor[float64, B], lambda float64) *tensor.Tensor[float64, B] {
	return dataLoss.Add(residualLoss.MulScalar(lambda))
}
