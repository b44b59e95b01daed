package nn

import (
	"fmt"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// Sequential chains modules; Forward feeds each module's output into the
// next.
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a sequential container from the given modules.
// No dimension checking is performed; use NewChain for a validated build.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

// NewChain builds a Sequential and validates that the Linear layers chain:
// each layer's input width must equal the previous layer's output width.
// Activations pass dimensions through unchanged.
//
// A mismatch is a construction error, reported before any training starts,
// rather than a shape panic mid-iteration.
func NewChain[B tensor.Backend](modules ...Module[B]) (*Sequential[B], error) {
	if len(modules) == 0 {
		return nil, fmt.Errorf("nn: chain needs at least one module")
	}

	prevOut := -1
	for i, m := range modules {
		lin, ok := m.(*Linear[B])
		if !ok {
			continue
		}
		if prevOut >= 0 && lin.InFeatures() != prevOut {
			return nil, fmt.Errorf(
				"nn: layer %d expects %d input features but the previous layer produces %d",
				i, lin.InFeatures(), prevOut)
		}
		prevOut = lin.OutFeatures()
	}

	return NewSequential(modules...), nil
}

// Forward applies each module in order.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	out := input
	for _, m := range s.modules {
		out = m.Forward(out)
	}
	return out
}

// Parameters returns the parameters of all contained modules in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Len returns the number of contained modules.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}
