package ode_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinn-ml/pinn/internal/ode"
)

func TestSolveScalarExponentialDecay(t *testing.T) {
	// u' = -u, u(0) = 1, solution u(t) = exp(-t).
	ts, us, err := ode.SolveScalar(func(_, u float64) float64 { return -u }, 1.0, 0, 1, 100)
	require.NoError(t, err)
	require.Len(t, ts, 101)
	require.Len(t, us, 101)

	assert.Equal(t, 0.0, ts[0])
	assert.Equal(t, 1.0, us[0])
	assert.InDelta(t, 1.0, ts[100], 1e-12)

	// RK4 with h=0.01 is accurate to far better than 1e-8 here.
	for i, tv := range ts {
		assert.InDelta(t, math.Exp(-tv), us[i], 1e-8, "t=%g", tv)
	}
}

func TestSolveFourthOrderConvergence(t *testing.T) {
	// Halving the step size should shrink the error by about 2^4.
	f := func(_, u float64) float64 { return -u }

	errAt := func(steps int) float64 {
		_, us, err := ode.SolveScalar(f, 1.0, 0, 1, steps)
		require.NoError(t, err)
		return math.Abs(us[len(us)-1] - math.Exp(-1))
	}

	coarse := errAt(16)
	fine := errAt(32)
	require.Greater(t, coarse, 0.0)
	ratio := coarse / fine
	assert.Greater(t, ratio, 12.0, "expected ~16x error reduction, got %gx", ratio)
}

func TestSolveSystemHarmonicOscillator(t *testing.T) {
	// u'' = -u as a first-order system: (x, v)' = (v, -x).
	// With x(0)=1, v(0)=0 the solution is x(t) = cos(t).
	f := func(_ float64, u []float64) []float64 {
		return []float64{u[1], -u[0]}
	}

	trajectory, err := ode.Solve(f, []float64{1, 0}, 0, 2*math.Pi, 1000)
	require.NoError(t, err)

	last := trajectory[len(trajectory)-1]
	assert.InDelta(t, 1.0, last.U[0], 1e-8)
	assert.InDelta(t, 0.0, last.U[1], 1e-8)
}

func TestSolveInvalidArguments(t *testing.T) {
	f := func(_ float64, u []float64) []float64 { return u }

	_, err := ode.Solve(f, []float64{1}, 0, 1, 0)
	assert.Error(t, err)

	_, err = ode.Solve(f, nil, 0, 1, 10)
	assert.Error(t, err)

	_, err = ode.Solve(f, []float64{1}, 1, 1, 10)
	assert.Error(t, err)
}

func TestSolveDetectsDivergence(t *testing.T) {
	// u' = u^2 with u(0)=1 blows up at t=1.
	_, err := ode.Solve(func(_ float64, u []float64) []float64 {
		return []float64{u[0] * u[0]}
	}, []float64{1}, 0, 2, 50)
	assert.ErrorContains(t, err, "diverged")
}
