package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/backend/cpu"
	"github.com/pinn-ml/pinn/internal/nn"
	"github.com/pinn-ml/pinn/internal/tensor"
)

type testBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func TestLinearForward(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(1))

	layer := nn.NewLinear(2, 3, rng, backend)

	// Fix the parameters to known values: W (3x2), b (3).
	copy(layer.Parameters()[0].Tensor().Data(), []float64{1, 2, 3, 4, 5, 6})
	copy(layer.Parameters()[1].Tensor().Data(), []float64{0.5, -0.5, 1})

	x, err := tensor.FromSlice([]float64{1, 1, 2, 0}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	out := layer.Forward(x)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 3}))

	// Row 1: [1+2, 3+4, 5+6] + b, row 2: [2, 6, 10] + b.
	want := []float64{3.5, 6.5, 12, 2.5, 5.5, 11}
	for i, v := range out.Data() {
		assert.InDelta(t, want[i], v, 1e-12, "index %d", i)
	}
}

func TestLinearParameterShapes(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(4, 2, rand.New(rand.NewSource(1)), backend)

	params := layer.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "weight", params[0].Name())
	assert.True(t, params[0].Tensor().Shape().Equal(tensor.Shape{2, 4}))
	assert.Equal(t, "bias", params[1].Name())
	assert.True(t, params[1].Tensor().Shape().Equal(tensor.Shape{2}))
	assert.Equal(t, 8, params[0].NumValues())
}

func TestXavierBoundsAndReproducibility(t *testing.T) {
	backend := autodiff.New(cpu.New())

	fanIn, fanOut := 10, 20
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	w := nn.Xavier(fanIn, fanOut, tensor.Shape{fanOut, fanIn}, rand.New(rand.NewSource(3)), backend)
	for _, v := range w.Data() {
		assert.LessOrEqual(t, math.Abs(v), bound)
	}

	w2 := nn.Xavier(fanIn, fanOut, tensor.Shape{fanOut, fanIn}, rand.New(rand.NewSource(3)), backend)
	assert.Equal(t, w.Data(), w2.Data(), "same seed must give same init")
}

func TestBiasStartsAtZero(t *testing.T) {
	backend := autodiff.New(cpu.New())
	layer := nn.NewLinear(3, 5, rand.New(rand.NewSource(1)), backend)

	for _, v := range layer.Parameters()[1].Tensor().Data() {
		assert.Zero(t, v)
	}
}

func TestActivationsForward(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x, err := tensor.FromSlice([]float64{-2, 0, 2}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	tanh := nn.NewTanh[testBackend]().Forward(x)
	for i, v := range []float64{-2, 0, 2} {
		assert.InDelta(t, math.Tanh(v), tanh.Data()[i], 1e-15)
	}

	relu := nn.NewReLU[testBackend]().Forward(x)
	assert.Equal(t, []float64{0, 0, 2}, relu.Data())

	sig := nn.NewSigmoid[testBackend]().Forward(x)
	assert.InDelta(t, 0.5, sig.Data()[1], 1e-15)

	assert.Nil(t, nn.NewTanh[testBackend]().Parameters())
}

func TestSequentialComposes(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(2))

	model, err := nn.NewChain(
		nn.NewLinear(1, 4, rng, backend),
		nn.NewTanh[testBackend](),
		nn.NewLinear(4, 1, rng, backend),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, model.Len())

	// 2 layers x (weight + bias).
	assert.Len(t, model.Parameters(), 4)

	x, err := tensor.FromSlice([]float64{0.5}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)
	out := model.Forward(x)
	assert.True(t, out.Shape().Equal(tensor.Shape{1, 1}))

	// An empty Sequential is the identity.
	id := nn.NewSequential[testBackend]()
	assert.Equal(t, x, id.Forward(x))
}

func TestNewChainValidation(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(1))

	_, err := nn.NewChain[testBackend]()
	assert.Error(t, err)

	_, err = nn.NewChain(
		nn.NewLinear(1, 8, rng, backend),
		nn.NewTanh[testBackend](),
		nn.NewLinear(4, 1, rng, backend),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layer 2")

	// Activations are dimension transparent.
	_, err = nn.NewChain(
		nn.NewLinear(1, 8, rng, backend),
		nn.NewTanh[testBackend](),
		nn.NewLinear(8, 1, rng, backend),
	)
	assert.NoError(t, err)
}

func TestMSEAndSumSquaredLoss(t *testing.T) {
	backend := autodiff.New(cpu.New())

	pred, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4, 1}, backend)
	require.NoError(t, err)
	targ, err := tensor.FromSlice([]float64{1, 1, 1, 1}, tensor.Shape{4, 1}, backend)
	require.NoError(t, err)

	// Squared errors: 0, 1, 4, 9.
	assert.InDelta(t, 14.0, nn.SumSquaredLoss(pred, targ).Item(), 1e-12)
	assert.InDelta(t, 3.5, nn.MSELoss(pred, targ).Item(), 1e-12)

	// Exact match gives exactly zero.
	assert.Equal(t, 0.0, nn.SumSquaredLoss(pred, pred.Clone()).Item())
}

func TestLossGradientFlows(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(9))

	layer := nn.NewLinear(1, 1, rng, backend)
	x, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float64{2, 4}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)

	tape := backend.Tape()
	tape.StartRecording()
	loss := nn.MSELoss(layer.Forward(x), y)
	grads := autodiff.Backward(loss, backend)
	tape.StopRecording()
	tape.Clear()

	// Reduction included on the tape: both parameters get gradients.
	for _, p := range layer.Parameters() {
		g := grads[p.Tensor().Raw()]
		require.NotNil(t, g, "missing gradient for %s", p.Name())
	}
}

func TestParameterGradLifecycle(t *testing.T) {
	backend := autodiff.New(cpu.New())
	w := tensor.Zeros[float64](tensor.Shape{2}, backend)
	p := nn.NewParameter("w", w)

	assert.Nil(t, p.Grad())
	g := tensor.Ones[float64](tensor.Shape{2}, backend)
	p.SetGrad(g)
	assert.Equal(t, g, p.Grad())
	p.ZeroGrad()
	assert.Nil(t, p.Grad())
	assert.Equal(t, 2, p.NumValues())
	assert.Equal(t, "w", p.Name())
}
