// Package pinn implements physics-informed neural network training: a
// feed-forward approximator with an initial-condition wrapper, a
// differential-equation residual loss over collocation points, a
// data-fitting loss over observations, and a trainer that minimizes their
// weighted sum.
//
// The pipeline is deliberately small. Parameters flow into the
// approximator, the approximator into the loss terms, the loss gradient
// back into the parameters via the optimizer, and around again:
//
//	approx, _ := pinn.NewMLP(pinn.MLPConfig{Hidden: []int{32, 32}}, rng, backend)
//	approx = approx.WithInitialValue(1.0)
//
//	problem := &pinn.Problem[B]{
//	    Approx:      approx,
//	    RHS:         rhs,
//	    Collocation: pinn.UniformGrid(0, 1, 50, backend),
//	}
//
//	trainer, _ := pinn.NewTrainer(backend, approx.Parameters(), optimizer, cfg)
//	report, err := trainer.Run(problem)
package pinn

import (
	"fmt"
	"math/rand"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/nn"
	"github.com/pinn-ml/pinn/internal/tensor"
)

// Activation selects the nonlinearity used between hidden layers of an MLP
// approximator.
type Activation int

const (
	// ActTanh is the default. Smooth everywhere, which matters because the
	// residual loss differentiates the approximator.
	ActTanh Activation = iota
	ActSigmoid
	// ActReLU is non-smooth at zero; acceptable for data-only fitting,
	// a poor choice under a residual loss.
	ActReLU
)

// Approximator is a parameterized function g intended to approximate the
// solution of a differential equation. It wraps a network with an optional
// initial-condition transform g(t) = u0 + t*NN(t), which pins g(0) to u0
// exactly for every parameter vector.
type Approximator[B autodiff.BackwardCapable] struct {
	net     nn.Module[B]
	backend B

	hasInitialValue bool
	u0              float64
}

// MLPConfig describes a feed-forward approximator.
type MLPConfig struct {
	// InputDim and OutputDim default to 1, the scalar-ODE case.
	InputDim  int
	OutputDim int

	// Hidden lists the hidden-layer widths in order.
	Hidden []int

	// Activation between hidden layers. Defaults to ActTanh. The final
	// layer is always linear so the output range is unconstrained.
	Activation Activation
}

// NewMLP constructs a feed-forward approximator: Linear/activation pairs
// for each hidden width, then a final linear layer. Weights are Xavier
// initialized from rng, biases start at zero.
//
// Returns a ConfigError if any declared width is non-positive.
func NewMLP[B autodiff.BackwardCapable](config MLPConfig, rng *rand.Rand, backend B) (*Approximator[B], error) {
	if config.InputDim == 0 {
		config.InputDim = 1
	}
	if config.OutputDim == 0 {
		config.OutputDim = 1
	}
	if config.InputDim < 0 || config.OutputDim < 0 {
		return nil, &ConfigError{Field: "MLPConfig", Reason: "negative input or output dimension"}
	}
	for i, w := range config.Hidden {
		if w <= 0 {
			return nil, &ConfigError{Field: "MLPConfig.Hidden", Reason: fmt.Sprintf("non-positive width at index %d", i)}
		}
	}

	var modules []nn.Module[B]
	in := config.InputDim
	for _, width := range config.Hidden {
		modules = append(modules, nn.NewLinear(in, width, rng, backend))
		modules = append(modules, newActivation[B](config.Activation))
		in = width
	}
	modules = append(modules, nn.NewLinear(in, config.OutputDim, rng, backend))

	net, err := nn.NewChain(modules...)
	if err != nil {
		return nil, &ConfigError{Field: "MLPConfig", Reason: err.Error()}
	}

	return &Approximator[B]{net: net, backend: backend}, nil
}

// New wraps an existing module as an approximator. The module's layer
// dimensions must already chain; use nn.NewChain to validate.
func New[B autodiff.BackwardCapable](net nn.Module[B], backend B) *Approximator[B] {
	return &Approximator[B]{net: net, backend: backend}
}

// WithInitialValue returns a copy of the approximator whose output is
// transformed as g(t) = u0 + t*NN(t), so that g(0) == u0 holds identically
// regardless of the parameter values. This satisfies the initial condition
// by construction and removes the need for a boundary-penalty loss term.
func (a *Approximator[B]) WithInitialValue(u0 float64) *Approximator[B] {
	clone := *a
	clone.hasInitialValue = true
	clone.u0 = u0
	return &clone
}

// Forward evaluates g on a batch of inputs with shape (n, in_dim). All
// operations go through the backend, so a recording tape captures the full
// computation including the initial-value transform.
func (a *Approximator[B]) Forward(t *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	out := a.net.Forward(t)
	if !a.hasInitialValue {
		return out
	}
	return t.Mul(out).AddScalar(a.u0)
}

// Parameters returns the trainable parameters of the underlying network.
func (a *Approximator[B]) Parameters() []*nn.Parameter[B] {
	return a.net.Parameters()
}

// Backend returns the backend the approximator evaluates on.
func (a *Approximator[B]) Backend() B {
	return a.backend
}

// Eval evaluates a scalar approximator at the given points with the tape
// not recording. Intended for inspection after training, not for loss
// computation.
func (a *Approximator[B]) Eval(ts []float64) []float64 {
	tape := a.backend.GetTape()
	wasRecording := tape.IsRecording()
	if wasRecording {
		tape.StopRecording()
		defer tape.StartRecording()
	}

	input, err := tensor.FromSlice(ts, tensor.Shape{len(ts), 1}, a.backend)
	if err != nil {
		panic("pinn: eval: " + err.Error())
	}
	out := a.Forward(input)
	return append([]float64(nil), out.Data()...)
}

func newActivation[B autodiff.BackwardCapable](act Activation) nn.Module[B] {
	switch act {
	case ActSigmoid:
		return nn.NewSigmoid[B]()
	case ActReLU:
		return nn.NewReLU[B]()
	default:
		return nn.NewTanh[B]()
	}
}
