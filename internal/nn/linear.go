package nn

import (
	"fmt"
	"math/rand"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// Linear is a fully connected layer computing y = x @ W^T + b.
//
// The weight has shape (out_features, in_features) and the bias shape
// (out_features), matching the usual convention. Weights are Xavier
// initialized, biases start at zero.
type Linear[B tensor.Backend] struct {
	weight *Parameter[B]
	bias   *Parameter[B]

	inFeatures  int
	outFeatures int
}

// NewLinear creates a fully connected layer. The rng drives weight
// initialization; pass a seeded source for reproducible runs.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("nn: invalid Linear dimensions (%d, %d)", inFeatures, outFeatures))
	}

	weight := Xavier(inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, rng, backend)
	bias := Zeros(tensor.Shape{outFeatures}, backend)

	return &Linear[B]{
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", bias),
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
	}
}

// Forward computes x @ W^T + b for a batch x of shape (batch, in_features).
func (l *Linear[B]) Forward(input *tensor.Tensor[float64, B]) *tensor.Tensor[float64, B] {
	out := input.MatMul(l.weight.Tensor().T())
	// Reshape the bias to (1, out_features) so broadcasting adds it to
	// every row of the batch.
	return out.Add(l.bias.Tensor().Reshape(1, l.outFeatures))
}

// Parameters returns the weight and bias.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// InFeatures returns the input width of the layer.
func (l *Linear[B]) InFeatures() int { return l.inFeatures }

// OutFeatures returns the output width of the layer.
func (l *Linear[B]) OutFeatures() int { return l.outFeatures }
