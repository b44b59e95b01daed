package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float64](Shape{3, 1}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float64](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Scalar creates a single-element tensor holding the given value.
func Scalar[T DType, B Backend](value T, b B) *Tensor[T, B] {
	return Full[T, B](Shape{1}, value, b)
}

// Rand creates a tensor with values drawn uniformly from [0, 1).
// The caller supplies the random source so a fixed seed reproduces a run.
func Rand[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = T(rng.Float64())
	}
	return t
}

// Randn creates a tensor with values drawn from the standard normal
// distribution N(0, 1), using the Box-Muller transform.
func Randn[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := 0; i < len(data); i += 2 {
		u1 := rng.Float64()
		u2 := rng.Float64()
		r := math.Sqrt(-2.0 * math.Log(1-u1))
		data[i] = T(r * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = T(r * math.Sin(2.0*math.Pi*u2))
		}
	}
	return t
}

// Linspace creates a column tensor of shape {n, 1} with n evenly spaced
// values from start to end inclusive. This is the natural layout for a
// batch of collocation points fed to a feed-forward network.
func Linspace[T DType, B Backend](start, end T, n int, b B) *Tensor[T, B] {
	if n < 1 {
		panic("Linspace: n must be >= 1")
	}

	t := Zeros[T, B](Shape{n, 1}, b)
	data := t.Data()
	if n == 1 {
		data[0] = start
		return t
	}

	step := (float64(end) - float64(start)) / float64(n-1)
	for i := range data {
		data[i] = T(float64(start) + float64(i)*step)
	}
	// Land exactly on the endpoint regardless of rounding.
	data[n-1] = end
	return t
}
