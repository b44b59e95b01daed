package pinn

import (
	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Problem describes a training objective: an approximator, an optional
// equation residual over collocation points, an optional set of
// observations, and the weight trading the two off.
type Problem[B autodiff.BackwardCapable] struct {
	Approx *Approximator[B]

	// RHS and collocation points for the residual term. RHS nil disables
	// the residual, leaving a pure data-fitting problem.
	RHS         RHS[B]
	Collocation *tensor.Tensor[float64, B]

	// Sampler, when set, regenerates the collocation points before every
	// loss evaluation (stochastic collocation). When nil the fixed
	// Collocation batch is reused.
	Sampler func() *tensor.Tensor[float64, B]

	// Observed (input, output) pairs for the data term. Nil inputs
	// disable it, leaving a pure physics problem.
	DataInputs  *tensor.Tensor[float64, B]
	DataTargets *tensor.Tensor[float64, B]

	// Lambda weights the residual term against the data term. Ignored
	// unless both terms are present.
	Lambda float64
}

// Validate checks the problem before training starts. The zero-iteration
// guarantee: a problem that fails validation was never evaluated.
func (p *Problem[B]) Validate() error {
	if p.Approx == nil {
		return &ConfigError{Field: "Approx", Reason: "approximator is required"}
	}
	if p.RHS == nil && p.DataInputs == nil {
		return &ConfigError{Field: "Problem", Reason: "need a residual term or a data term"}
	}
	if p.RHS != nil {
		if p.Sampler == nil && (p.Collocation == nil || p.Collocation.NumElements() == 0) {
			return &ConfigError{Field: "Collocation", Reason: "empty sample set"}
		}
	}
	if p.DataInputs != nil {
		if p.DataTargets == nil {
			return &ConfigError{Field: "DataTargets", Reason: "targets required when inputs are set"}
		}
		if p.DataInputs.NumElements() == 0 {
			return &ConfigError{Field: "DataInputs", Reason: "empty sample set"}
		}
		if p.DataInputs.Shape()[0] != p.DataTargets.Shape()[0] {
			return &ConfigError{Field: "DataTargets", Reason: "input and target counts differ"}
		}
	}
	if p.Lambda < 0 {
		return &ConfigError{Field: "Lambda", Reason: "must be non-negative"}
	}
	return nil
}

// Loss evaluates the training objective for the current parameters,
// building the composite from whichever terms the problem defines. Called
// by the trainer once per iteration with the tape recording.
func (p *Problem[B]) Loss() *tensor.Tensor[float64, B] {
	var residual *tensor.Tensor[float64, B]
	if p.RHS != nil {
		points := p.Collocation
		if p.Sampler != nil {
			points = p.Sampler()
		}
		residual = ResidualLoss(p.Approx, p.RHS, points)
	}

	if p.DataInputs == nil {
		return residual
	}

	dataLoss := DataLoss(p.Approx, p.DataInputs, p.DataTargets)
	if residual == nil {
		return dataLoss
	}
	return CompositeLoss(dataLoss, residual, p.Lambda)
}
