package pinn_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinn-ml/pinn/internal/nn"
	"github.com/pinn-ml/pinn/internal/optim"
	"github.com/pinn-ml/pinn/internal/pinn"
)

// fitLine builds a pure data problem fitting y = 2x with a single linear
// layer, the convex quadratic toy objective.
func fitLine(t *testing.T) (testBackend, *pinn.Approximator[testBackend], *pinn.Problem[testBackend]) {
	t.Helper()
	backend := newBackend()
	rng := rand.New(rand.NewSource(42))

	layer := nn.NewLinear(1, 1, rng, backend)
	approx := pinn.New[testBackend](layer, backend)

	xs := column(t, backend, []float64{-1, -0.5, 0, 0.5, 1})
	ys := column(t, backend, []float64{-2, -1, 0, 1, 2})

	return backend, approx, &pinn.Problem[testBackend]{
		Approx:      approx,
		DataInputs:  xs,
		DataTargets: ys,
	}
}

func TestTrainerConvergesOnConvexQuadratic(t *testing.T) {
	backend, approx, problem := fitLine(t)

	optimizer := optim.NewSGD(approx.Parameters(), optim.SGDConfig{LR: 0.1})
	trainer, err := pinn.NewTrainer(backend, approx.Parameters(), optimizer,
		pinn.TrainerConfig{Steps: 500})
	require.NoError(t, err)

	report, err := trainer.Run(problem)
	require.NoError(t, err)

	assert.Equal(t, pinn.StateBudgetReached, report.State)
	assert.Equal(t, 500, report.Steps)
	assert.Less(t, report.FinalLoss, 1e-6)
	assert.NotEmpty(t, report.RunID)

	// The learned layer should be close to y = 2x.
	weight := approx.Parameters()[0].Tensor().Data()[0]
	bias := approx.Parameters()[1].Tensor().Data()[0]
	assert.InDelta(t, 2.0, weight, 1e-3)
	assert.InDelta(t, 0.0, bias, 1e-3)
}

func TestTrainerThresholdStop(t *testing.T) {
	backend, approx, problem := fitLine(t)

	optimizer := optim.NewSGD(approx.Parameters(), optim.SGDConfig{LR: 0.1})
	trainer, err := pinn.NewTrainer(backend, approx.Parameters(), optimizer,
		pinn.TrainerConfig{Steps: 10000, Threshold: 1e-3})
	require.NoError(t, err)

	report, err := trainer.Run(problem)
	require.NoError(t, err)

	assert.Equal(t, pinn.StateThresholdReached, report.State)
	assert.Less(t, report.Steps, 10000)
	assert.Less(t, report.FinalLoss, 1e-3)
}

func TestTrainerCallbackCadenceAndStop(t *testing.T) {
	backend, approx, problem := fitLine(t)

	var steps []int
	callback := func(step int, loss float64) error {
		steps = append(steps, step)
		if step >= 30 {
			return pinn.ErrStopTraining
		}
		return nil
	}

	optimizer := optim.NewSGD(approx.Parameters(), optim.SGDConfig{LR: 0.1})
	trainer, err := pinn.NewTrainer(backend, approx.Parameters(), optimizer,
		pinn.TrainerConfig{Steps: 1000, Callback: callback, CallbackEvery: 10})
	require.NoError(t, err)

	report, err := trainer.Run(problem)
	require.NoError(t, err)

	assert.Equal(t, pinn.StateStopped, report.State)
	assert.Equal(t, []int{10, 20, 30}, steps)
	assert.Equal(t, 30, report.Steps)
}

func TestTrainerCallbackErrorsTolerated(t *testing.T) {
	backend, approx, problem := fitLine(t)

	calls := 0
	callback := func(step int, loss float64) error {
		calls++
		return errors.New("telemetry sink unavailable")
	}

	optimizer := optim.NewSGD(approx.Parameters(), optim.SGDConfig{LR: 0.1})
	trainer, err := pinn.NewTrainer(backend, approx.Parameters(), optimizer,
		pinn.TrainerConfig{Steps: 50, Callback: callback, CallbackEvery: 10})
	require.NoError(t, err)

	report, err := trainer.Run(problem)
	require.NoError(t, err)

	// Callback failures never abort training.
	assert.Equal(t, pinn.StateBudgetReached, report.State)
	assert.Equal(t, 5, calls)
}

func TestTrainerDivergenceIsFatal(t *testing.T) {
	backend, approx, problem := fitLine(t)

	// A step size this large makes gradient descent on the quadratic
	// diverge geometrically until the loss overflows.
	optimizer := optim.NewSGD(approx.Parameters(), optim.SGDConfig{LR: 1e6})
	trainer, err := pinn.NewTrainer(backend, approx.Parameters(), optimizer,
		pinn.TrainerConfig{Steps: 1000})
	require.NoError(t, err)

	report, err := trainer.Run(problem)

	var evalErr *pinn.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Greater(t, evalErr.Step, 1)
	assert.False(t, math.IsNaN(evalErr.LastLoss))
	assert.Equal(t, pinn.StateFailed, report.State)
	assert.Equal(t, pinn.StateFailed, trainer.State())

	// Parameters were rolled back to the last state with a finite loss.
	for _, p := range approx.Parameters() {
		for _, v := range p.Tensor().Data() {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

func TestTrainerConfigValidation(t *testing.T) {
	backend, approx, _ := fitLine(t)
	params := approx.Parameters()
	good := optim.NewSGD(params, optim.SGDConfig{LR: 0.1})

	var cfgErr *pinn.ConfigError

	_, err := pinn.NewTrainer(backend, params, good, pinn.TrainerConfig{Steps: 0})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Steps", cfgErr.Field)

	_, err = pinn.NewTrainer(backend, params, nil, pinn.TrainerConfig{Steps: 10})
	require.ErrorAs(t, err, &cfgErr)

	bad := optim.NewSGD(params, optim.SGDConfig{LR: 0.1})
	bad.SetLR(-1)
	_, err = pinn.NewTrainer(backend, params, bad, pinn.TrainerConfig{Steps: 10})
	require.ErrorAs(t, err, &cfgErr)

	_, err = pinn.NewTrainer(backend, nil, good, pinn.TrainerConfig{Steps: 10})
	require.ErrorAs(t, err, &cfgErr)

	_, err = pinn.NewTrainer(backend, params, good, pinn.TrainerConfig{Steps: 10, Threshold: -1})
	require.ErrorAs(t, err, &cfgErr)
}

func TestProblemValidation(t *testing.T) {
	backend, approx, _ := fitLine(t)

	var cfgErr *pinn.ConfigError

	// No loss term at all.
	err := (&pinn.Problem[testBackend]{Approx: approx}).Validate()
	require.ErrorAs(t, err, &cfgErr)

	// Residual term with an empty sample set.
	err = (&pinn.Problem[testBackend]{
		Approx: approx,
		RHS:    zeroRHS,
	}).Validate()
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Collocation", cfgErr.Field)

	// Negative regularization weight.
	err = (&pinn.Problem[testBackend]{
		Approx:      approx,
		RHS:         zeroRHS,
		Collocation: pinn.UniformGrid(0, 1, 10, backend),
		DataInputs:  column(t, backend, []float64{0}),
		DataTargets: column(t, backend, []float64{1}),
		Lambda:      -0.5,
	}).Validate()
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Lambda", cfgErr.Field)

	// Mismatched data lengths.
	err = (&pinn.Problem[testBackend]{
		Approx:      approx,
		DataInputs:  column(t, backend, []float64{0, 1}),
		DataTargets: column(t, backend, []float64{1}),
	}).Validate()
	require.ErrorAs(t, err, &cfgErr)

	// A valid pure-physics problem.
	err = (&pinn.Problem[testBackend]{
		Approx:      approx,
		RHS:         zeroRHS,
		Collocation: pinn.UniformGrid(0, 1, 10, backend),
	}).Validate()
	assert.NoError(t, err)
}
