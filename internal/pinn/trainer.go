package pinn

import (
	"errors"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/nn"
	"github.com/pinn-ml/pinn/internal/optim"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// State is the trainer's position in its life cycle.
type State int

const (
	// StateInitialized: parameters set, no iteration run yet.
	StateInitialized State = iota
	// StateRunning: inside the iteration loop.
	StateRunning
	// StateBudgetReached: terminal, the configured iteration budget was
	// exhausted. This is the default way training ends.
	StateBudgetReached
	// StateThresholdReached: terminal, the loss dropped below the
	// configured stopping threshold.
	StateThresholdReached
	// StateStopped: terminal, the progress callback returned
	// ErrStopTraining.
	StateStopped
	// StateFailed: terminal, the loss or a gradient went non-finite.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateBudgetReached:
		return "budget-reached"
	case StateThresholdReached:
		return "threshold-reached"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Callback receives the 1-based iteration index and the loss value at the
// configured cadence. Returning ErrStopTraining stops the run cleanly; any
// other error is logged and training continues.
type Callback func(step int, loss float64) error

// TrainerConfig configures the optimization loop.
type TrainerConfig struct {
	// Steps is the iteration budget. Required, must be positive.
	Steps int

	// Threshold, when positive, stops training as soon as the loss drops
	// below it. Zero disables threshold stopping; the budget is then the
	// only terminal condition.
	Threshold float64

	// Callback, when set, is invoked every CallbackEvery iterations.
	Callback Callback

	// CallbackEvery defaults to 1 when a callback is set.
	CallbackEvery int
}

// Report summarizes a finished training run.
type Report struct {
	// RunID uniquely identifies the run in logs and telemetry.
	RunID string

	// State is the terminal state the trainer ended in.
	State State

	// Steps is the number of iterations actually executed.
	Steps int

	// FinalLoss is the last finite loss value observed.
	FinalLoss float64
}

// Trainer owns the parameter vector for the duration of a run and drives
// the iterate: evaluate loss, backpropagate, update parameters.
type Trainer[B autodiff.BackwardCapable] struct {
	backend   B
	params    []*nn.Parameter[B]
	optimizer optim.Optimizer
	config    TrainerConfig

	state State
}

// NewTrainer validates the configuration and creates a trainer. The
// optimizer must already hold the same parameters.
func NewTrainer[B autodiff.BackwardCapable](backend B, params []*nn.Parameter[B], optimizer optim.Optimizer, config TrainerConfig) (*Trainer[B], error) {
	if config.Steps <= 0 {
		return nil, &ConfigError{Field: "Steps", Reason: "iteration budget must be positive"}
	}
	if optimizer == nil {
		return nil, &ConfigError{Field: "Optimizer", Reason: "optimizer is required"}
	}
	if optimizer.GetLR() <= 0 {
		return nil, &ConfigError{Field: "Optimizer", Reason: "step size must be positive"}
	}
	if len(params) == 0 {
		return nil, &ConfigError{Field: "Params", Reason: "no trainable parameters"}
	}
	if config.Threshold < 0 {
		return nil, &ConfigError{Field: "Threshold", Reason: "must be non-negative"}
	}
	if config.CallbackEvery < 0 {
		return nil, &ConfigError{Field: "CallbackEvery", Reason: "must be non-negative"}
	}
	if config.Callback != nil && config.CallbackEvery == 0 {
		config.CallbackEvery = 1
	}

	return &Trainer[B]{
		backend:   backend,
		params:    params,
		optimizer: optimizer,
		config:    config,
		state:     StateInitialized,
	}, nil
}

// State returns the trainer's current state.
func (t *Trainer[B]) State() State {
	return t.state
}

// Run trains the problem until the budget is exhausted, the threshold is
// reached, the callback stops the run, or an evaluation fails.
//
// On an EvalError the parameters are restored to the snapshot taken after
// the last finite loss evaluation, so the caller never observes a
// corrupted parameter vector. The returned Report is valid in every case,
// including failure.
func (t *Trainer[B]) Run(problem *Problem[B]) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		FinalLoss: math.NaN(),
	}

	if err := problem.Validate(); err != nil {
		report.State = t.state
		return report, err
	}

	t.state = StateRunning
	tape := t.backend.GetTape()
	snapshot := t.snapshotParams()
	lastLoss := math.NaN()

	for step := 1; step <= t.config.Steps; step++ {
		tape.Clear()
		tape.StartRecording()
		loss := problem.Loss()
		grads := autodiff.Backward(loss, t.backend)
		tape.StopRecording()
		tape.Clear()

		value := loss.Item()
		if !isFinite(value) || !gradsFinite(grads) {
			t.restoreParams(snapshot)
			t.state = StateFailed
			report.State = t.state
			report.Steps = step - 1
			report.FinalLoss = lastLoss
			return report, &EvalError{Step: step, LastLoss: lastLoss}
		}

		// The current parameters produced a finite loss; remember them
		// before the optimizer moves on, so a later divergence can roll
		// back to a valid state.
		t.captureParams(snapshot)
		lastLoss = value

		t.optimizer.Step(grads)
		t.optimizer.ZeroGrad()

		if t.config.Callback != nil && step%t.config.CallbackEvery == 0 {
			if err := t.config.Callback(step, value); err != nil {
				if errors.Is(err, ErrStopTraining) {
					t.state = StateStopped
					report.State = t.state
					report.Steps = step
					report.FinalLoss = value
					return report, nil
				}
				// Callback failures must not abort training.
				log.Printf("pinn: callback error at step %d: %v", step, err)
			}
		}

		if t.config.Threshold > 0 && value < t.config.Threshold {
			t.state = StateThresholdReached
			report.State = t.state
			report.Steps = step
			report.FinalLoss = value
			return report, nil
		}
	}

	t.state = StateBudgetReached
	report.State = t.state
	report.Steps = t.config.Steps
	report.FinalLoss = lastLoss
	return report, nil
}

// snapshotParams allocates a copy buffer per parameter.
func (t *Trainer[B]) snapshotParams() [][]float64 {
	snapshot := make([][]float64, len(t.params))
	for i, p := range t.params {
		snapshot[i] = append([]float64(nil), p.Tensor().Data()...)
	}
	return snapshot
}

// captureParams refreshes an existing snapshot in place.
func (t *Trainer[B]) captureParams(snapshot [][]float64) {
	for i, p := range t.params {
		copy(snapshot[i], p.Tensor().Data())
	}
}

func (t *Trainer[B]) restoreParams(snapshot [][]float64) {
	for i, p := range t.params {
		copy(p.Tensor().Data(), snapshot[i])
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func gradsFinite(grads map[*tensor.RawTensor]*tensor.RawTensor) bool {
	for _, g := range grads {
		for _, v := range g.AsFloat64() {
			if !isFinite(v) {
				return false
			}
		}
	}
	return true
}
