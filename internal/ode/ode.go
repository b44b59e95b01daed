// Package ode provides a fixed-step Runge-Kutta solver for ordinary
// differential equations.
//
// The solver produces reference trajectories: sparse, possibly noisy samples
// drawn from them act as observations for the data-fitting loss, and dense
// trajectories serve as ground truth when evaluating a trained approximator.
package ode

import (
	"fmt"
	"math"
)

// Func is the right-hand side of the system u' = f(t, u).
type Func func(t float64, u []float64) []float64

// ScalarFunc is the right-hand side of a scalar equation u' = f(t, u).
type ScalarFunc func(t, u float64) float64

// Point is one sample of a trajectory.
type Point struct {
	T float64
	U []float64
}

// Solve integrates u' = f(t, u) from t0 to t1 with the classical
// fourth-order Runge-Kutta method, taking steps fixed steps.
//
// The returned trajectory has steps+1 points including both endpoints.
func Solve(f Func, u0 []float64, t0, t1 float64, steps int) ([]Point, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("ode: steps must be positive, got %d", steps)
	}
	if len(u0) == 0 {
		return nil, fmt.Errorf("ode: empty initial state")
	}
	if t1 <= t0 {
		return nil, fmt.Errorf("ode: t1 (%g) must be greater than t0 (%g)", t1, t0)
	}

	h := (t1 - t0) / float64(steps)
	dim := len(u0)

	trajectory := make([]Point, steps+1)
	u := append([]float64(nil), u0...)
	trajectory[0] = Point{T: t0, U: append([]float64(nil), u...)}

	for i := 1; i <= steps; i++ {
		t := t0 + float64(i-1)*h

		k1 := f(t, u)
		k2 := f(t+h/2, axpy(u, h/2, k1, dim))
		k3 := f(t+h/2, axpy(u, h/2, k2, dim))
		k4 := f(t+h, axpy(u, h, k3, dim))

		for j := 0; j < dim; j++ {
			u[j] += h / 6 * (k1[j] + 2*k2[j] + 2*k3[j] + k4[j])
			if math.IsNaN(u[j]) || math.IsInf(u[j], 0) {
				return nil, fmt.Errorf("ode: solution diverged at t=%g", t+h)
			}
		}

		trajectory[i] = Point{T: t0 + float64(i)*h, U: append([]float64(nil), u...)}
	}

	return trajectory, nil
}

// SolveScalar integrates a scalar equation u' = f(t, u) and returns the
// trajectory as parallel t and u slices, which is the form the sampling
// and evaluation code consumes.
func SolveScalar(f ScalarFunc, u0, t0, t1 float64, steps int) (ts, us []float64, err error) {
	wrapped := func(t float64, u []float64) []float64 {
		return []float64{f(t, u[0])}
	}

	trajectory, err := Solve(wrapped, []float64{u0}, t0, t1, steps)
	if err != nil {
		return nil, nil, err
	}

	ts = make([]float64, len(trajectory))
	us = make([]float64, len(trajectory))
	for i, p := range trajectory {
		ts[i] = p.T
		us[i] = p.U[0]
	}
	return ts, us, nil
}

// axpy computes u + a*k without mutating u.
func axpy(u []float64, a float64, k []float64, dim int) []float64 {
	out := make([]float64, dim)
	for j := 0; j < dim; j++ {
		out[j] = u[j] + a*k[j]
	}
	return out
}
