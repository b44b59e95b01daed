package pinn

import (
	"errors"
	"fmt"
)

// ErrStopTraining can be returned by a progress callback to stop the
// training loop early. The trainer treats it as a clean stop, not a
// failure.
var ErrStopTraining = errors.New("stop training")

// ConfigError reports an invalid training or problem configuration.
// Configuration is validated before the first iteration, so a ConfigError
// always means no training happened.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pinn: invalid config %s: %s", e.Field, e.Reason)
}

// EvalError reports a non-finite loss or gradient during training.
// A NaN or Inf indicates divergence (typically a step size too large), so
// the run is aborted rather than allowed to corrupt the parameters further.
//
// Step is the 1-based iteration at which the non-finite value appeared.
// LastLoss is the most recent finite loss value, or NaN if the very first
// evaluation was already non-finite. The trainer restores the parameters to
// the state that produced LastLoss before returning.
type EvalError struct {
	Step     int
	LastLoss float64
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("pinn: non-finite loss at step %d (last finite loss: %g)", e.Step, e.LastLoss)
}
