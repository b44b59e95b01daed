package nn

import (
	"math"
	"math/rand"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Draws values from the uniform distribution
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))), which keeps
// the variance of activations roughly constant across layers.
//
// The random source is supplied by the caller so a fixed seed reproduces
// the same initialization (and therefore the same training run).
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float64, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[float64](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = (rng.Float64()*2.0 - 1.0) * bound
	}

	return t
}

// Zeros creates a tensor filled with zeros. Used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float64, B] {
	return tensor.Zeros[float64](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float64, B] {
	return tensor.Ones[float64](shape, backend)
}
