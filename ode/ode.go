// Copyright 2026 PINN ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ode provides the public API for the fixed-step Runge-Kutta
// solver used to generate reference trajectories.
//
// Example:
//
//	ts, us, err := ode.SolveScalar(func(t, u float64) float64 {
//	    return -u
//	}, 1.0, 0, 1, 100)
package ode

import (
	"github.com/pinn-ml/pinn/internal/ode"
)

// Func is the right-hand side of a system u' = f(t, u).
type Func = ode.Func

// ScalarFunc is the right-hand side of a scalar equation u' = f(t, u).
type ScalarFunc = ode.ScalarFunc

// Point is one sample of a trajectory.
type Point = ode.Point

// Solve integrates a system with the classical fourth-order Runge-Kutta
// method over a fixed step grid.
func Solve(f Func, u0 []float64, t0, t1 float64, steps int) ([]Point, error) {
	return ode.Solve(f, u0, t0, t1, steps)
}

// SolveScalar integrates a scalar equation and returns parallel time and
// state slices.
func SolveScalar(f ScalarFunc, u0, t0, t1 float64, steps int) (ts, us []float64, err error) {
	return ode.SolveScalar(f, u0, t0, t1, steps)
}
