package pinn

import (
	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// RHS is the right-hand side of the target equation u' = f(u, t),
// expressed in tensor arithmetic so it participates in the recorded
// computation and gradients flow through it. Both arguments are batches of
// shape (n, 1); the result must have the same shape.
type RHS[B autodiff.BackwardCapable] func(u, t *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B]

// fdStep is sqrt of float64 machine epsilon, about 1.49e-8.
//
// For a forward difference quotient (g(t+eps) - g(t)) / eps the truncation
// error shrinks with eps while the cancellation error grows as
// ulp(g)/eps; the crossover sits near sqrt(machine epsilon) for the
// working precision. This is the reason the whole stack computes in
// float64: with float32 the optimum step would leave only ~3 significant
// digits in the quotient.
const fdStep = 1.4901161193847656e-08

// ResidualLoss measures how far g is from satisfying g'(t) = f(g(t), t)
// at the given collocation points:
//
//	mean_i ( D[g](t_i) - f(g(t_i), t_i) )^2
//
// The derivative D[g] is the forward difference quotient
// (g(t+eps) - g(t)) / eps at eps = fdStep. The entire expression,
// difference quotient included, is built from backend operations, so with
// the tape recording the gradient of this loss with respect to the
// parameters is the exact derivative of the quotient, not an approximation
// of the derivative.
//
// The residual is squared, never taken in absolute value, so the objective
// stays differentiable at zero and deviations of either sign penalize
// equally. The mean reduction makes the loss magnitude independent of the
// number of collocation points.
//
// Returns a non-negative scalar tensor of shape (1); zero iff the
// difference quotient matches f at every sampled point.
func ResidualLoss[B autodiff.BackwardCapable](g *Approximator[B], f RHS[B], points *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	u := g.Forward(points)
	uShifted := g.Forward(points.AddScalar(fdStep))

	deriv := uShifted.Sub(u).DivScalar(fdStep)
	residual := deriv.Sub(f(u, points))

	return residual.Mul(residual).Mean()
}
