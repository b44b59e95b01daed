package pinn

import (
	"math/rand"

	"github.com/pinn-ml/pinn/internal/tensor"
)

// UniformGrid returns n evenly spaced collocation points covering
// [t0, t1], as a column batch of shape (n, 1).
func UniformGrid[B tensor.Backend](t0, t1 float64, n int, backend B) *tensor.Tensor[float64, B] {
	return tensor.Linspace(t0, t1, n, backend)
}

// RandomUniform returns n collocation points drawn uniformly from
// [t0, t1), as a column batch of shape (n, 1). Pass a seeded rng for
// reproducible sampling.
func RandomUniform[B tensor.Backend](t0, t1 float64, n int, rng *rand.Rand, backend B) *tensor.Tensor[float64, B] {
	t := tensor.Zeros[float64](tensor.Shape{n, 1}, backend)
	data := t.Data()
	for i := range data {
		data[i] = t0 + rng.Float64()*(t1-t0)
	}
	return t
}
