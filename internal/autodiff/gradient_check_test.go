package autodiff_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/backend/cpu"
	"github.com/pinn-ml/pinn/internal/nn"
	"github.com/pinn-ml/pinn/internal/tensor"
)

type adBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// checkGradients compares autodiff gradients of a scalar loss against
// central finite differences over every parameter value.
func checkGradients(t *testing.T, backend adBackend, params []*nn.Parameter[adBackend], loss func() *tensor.Tensor[float64, adBackend], tol float64) {
	t.Helper()
	tape := backend.Tape()

	// Autodiff pass.
	tape.Clear()
	tape.StartRecording()
	out := loss()
	grads := autodiff.Backward(out, backend)
	tape.StopRecording()
	tape.Clear()

	const eps = 1e-6
	for pi, p := range params {
		data := p.Tensor().Data()
		analytic := grads[p.Tensor().Raw()]
		if analytic == nil {
			t.Fatalf("param %d (%s): no gradient recorded", pi, p.Name())
		}
		analyticData := analytic.AsFloat64()

		for i := range data {
			orig := data[i]

			data[i] = orig + eps
			plus := loss().Item()
			data[i] = orig - eps
			minus := loss().Item()
			data[i] = orig

			numerical := (plus - minus) / (2 * eps)
			if math.Abs(analyticData[i]-numerical) > tol {
				t.Errorf("param %d (%s) value %d: autodiff %v vs numerical %v",
					pi, p.Name(), i, analyticData[i], numerical)
			}
		}
	}
}

func TestGradientCheckLinearMSE(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(1))

	layer := nn.NewLinear(1, 1, rng, backend)
	x, _ := tensor.FromSlice([]float64{-1, 0.5, 1}, tensor.Shape{3, 1}, backend)
	y, _ := tensor.FromSlice([]float64{1, 0.2, -0.4}, tensor.Shape{3, 1}, backend)

	checkGradients(t, backend, layer.Parameters(), func() *tensor.Tensor[float64, adBackend] {
		return nn.MSELoss(layer.Forward(x), y)
	}, 1e-6)
}

func TestGradientCheckTanhMLP(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(2))

	model, err := nn.NewChain(
		nn.NewLinear(1, 4, rng, backend),
		nn.NewTanh[adBackend](),
		nn.NewLinear(4, 1, rng, backend),
	)
	if err != nil {
		t.Fatal(err)
	}

	x, _ := tensor.FromSlice([]float64{-0.8, 0.1, 0.9}, tensor.Shape{3, 1}, backend)
	y, _ := tensor.FromSlice([]float64{0.3, -0.2, 0.7}, tensor.Shape{3, 1}, backend)

	checkGradients(t, backend, model.Parameters(), func() *tensor.Tensor[float64, adBackend] {
		return nn.SumSquaredLoss(model.Forward(x), y)
	}, 1e-5)
}

func TestGradientCheckSigmoidAndUnaryOps(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(3))

	model, err := nn.NewChain(
		nn.NewLinear(1, 3, rng, backend),
		nn.NewSigmoid[adBackend](),
		nn.NewLinear(3, 1, rng, backend),
	)
	if err != nil {
		t.Fatal(err)
	}

	x, _ := tensor.FromSlice([]float64{0.4, -0.6}, tensor.Shape{2, 1}, backend)

	// Exercise Exp, Sqrt, Sin and Cos on top of the network output.
	checkGradients(t, backend, model.Parameters(), func() *tensor.Tensor[float64, adBackend] {
		out := model.Forward(x)
		return out.Sin().Add(out.Cos()).Add(out.Mul(out).AddScalar(1).Sqrt()).Add(out.MulScalar(0.1).Exp()).Mean()
	}, 1e-5)
}

func TestGradientCheckDifferenceQuotient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(4))

	// The residual-style objective: a difference quotient of the model
	// output enters the loss. Gradients with respect to the parameters
	// must be the exact derivative of the quotient expression.
	model, err := nn.NewChain(
		nn.NewLinear(1, 4, rng, backend),
		nn.NewTanh[adBackend](),
		nn.NewLinear(4, 1, rng, backend),
	)
	if err != nil {
		t.Fatal(err)
	}

	pts, _ := tensor.FromSlice([]float64{0.2, 0.5, 0.8}, tensor.Shape{3, 1}, backend)
	const h = 1e-4 // coarse step keeps the numerical check well conditioned

	checkGradients(t, backend, model.Parameters(), func() *tensor.Tensor[float64, adBackend] {
		u := model.Forward(pts)
		uShift := model.Forward(pts.AddScalar(h))
		deriv := uShift.Sub(u).DivScalar(h)
		return deriv.Mul(deriv).Mean()
	}, 1e-4)
}

func TestGradientCheckReLUAwayFromKink(t *testing.T) {
	backend := autodiff.New(cpu.New())

	layer := nn.NewLinear(1, 1, rand.New(rand.NewSource(5)), backend)
	layer.Parameters()[0].Tensor().Data()[0] = 1.2
	layer.Parameters()[1].Tensor().Data()[0] = 0.5

	// Inputs chosen so no pre-activation lands on the kink.
	x, _ := tensor.FromSlice([]float64{-2, 1, 3}, tensor.Shape{3, 1}, backend)

	checkGradients(t, backend, layer.Parameters(), func() *tensor.Tensor[float64, adBackend] {
		return layer.Forward(x).ReLU().Sum()
	}, 1e-6)
}
