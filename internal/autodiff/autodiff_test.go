package autodiff_test

import (
	"math"
	"testing"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/backend/cpu"
	"github.com/pinn-ml/pinn/internal/tensor"
)

func TestAutodiffBackendName(t *testing.T) {
	backend := autodiff.New(cpu.New())
	if backend.Name() != "Autodiff(CPU)" {
		t.Errorf("Name() = %s, want Autodiff(CPU)", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", backend.Device())
	}
}

func TestTapeRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	if tape.IsRecording() {
		t.Error("tape should not record initially")
	}

	tape.StartRecording()
	if !tape.IsRecording() {
		t.Error("tape should record after StartRecording")
	}

	x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	_ = x.AddScalar(1)
	if tape.NumOps() != 1 {
		t.Errorf("NumOps = %d, want 1", tape.NumOps())
	}

	tape.StopRecording()
	_ = x.AddScalar(1)
	if tape.NumOps() != 1 {
		t.Errorf("op recorded while stopped: NumOps = %d", tape.NumOps())
	}

	tape.Clear()
	if tape.NumOps() != 0 {
		t.Errorf("Clear left %d ops", tape.NumOps())
	}
}

func TestBackwardSquare(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()
	defer tape.StopRecording()

	// y = x², dy/dx = 2x.
	x, _ := tensor.FromSlice([]float64{3}, tensor.Shape{1}, backend)
	y := x.Mul(x)

	grads := autodiff.Backward(y, backend)

	grad, ok := grads[x.Raw()]
	if !ok {
		t.Fatal("no gradient for x")
	}
	if got := grad.AsFloat64()[0]; math.Abs(got-6) > 1e-12 {
		t.Errorf("dy/dx = %v, want 6", got)
	}
}

func TestBackwardChain(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()
	defer tape.StopRecording()

	// y = (2x + 1)², dy/dx = 2 * (2x+1) * 2 = 8x + 4. At x=1: 12.
	x, _ := tensor.FromSlice([]float64{1}, tensor.Shape{1}, backend)
	inner := x.MulScalar(2).AddScalar(1)
	y := inner.Mul(inner)

	grads := autodiff.Backward(y, backend)
	if got := grads[x.Raw()].AsFloat64()[0]; math.Abs(got-12) > 1e-12 {
		t.Errorf("dy/dx = %v, want 12", got)
	}
}

func TestBackwardFanOutAccumulates(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()
	defer tape.StopRecording()

	// y = x*x + x: dy/dx = 2x + 1. At x=4: 9.
	x, _ := tensor.FromSlice([]float64{4}, tensor.Shape{1}, backend)
	y := x.Mul(x).Add(x)

	grads := autodiff.Backward(y, backend)
	if got := grads[x.Raw()].AsFloat64()[0]; math.Abs(got-9) > 1e-12 {
		t.Errorf("dy/dx = %v, want 9", got)
	}
}

func TestBackwardMeanDistributesGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()
	defer tape.StopRecording()

	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4}, backend)
	y := x.Mean()

	grads := autodiff.Backward(y, backend)
	for i, g := range grads[x.Raw()].AsFloat64() {
		if math.Abs(g-0.25) > 1e-12 {
			t.Errorf("grad[%d] = %v, want 0.25", i, g)
		}
	}
}

func TestBackwardThroughMatMul(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()
	defer tape.StopRecording()

	// loss = sum(x @ w) with x (1x2), w (2x1).
	// d(loss)/dw = xᵀ broadcast over columns = x values.
	x, _ := tensor.FromSlice([]float64{2, 3}, tensor.Shape{1, 2}, backend)
	w, _ := tensor.FromSlice([]float64{5, 7}, tensor.Shape{2, 1}, backend)
	loss := x.MatMul(w).Sum()

	grads := autodiff.Backward(loss, backend)

	gw := grads[w.Raw()].AsFloat64()
	if math.Abs(gw[0]-2) > 1e-12 || math.Abs(gw[1]-3) > 1e-12 {
		t.Errorf("d(loss)/dw = %v, want [2 3]", gw)
	}

	gx := grads[x.Raw()].AsFloat64()
	if math.Abs(gx[0]-5) > 1e-12 || math.Abs(gx[1]-7) > 1e-12 {
		t.Errorf("d(loss)/dx = %v, want [5 7]", gx)
	}
}

func TestBackwardThroughBroadcastAdd(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()
	defer tape.StopRecording()

	// loss = sum(m + row) where row broadcasts over 3 rows: the row
	// gradient accumulates one contribution per output row.
	m, _ := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, backend)
	row, _ := tensor.FromSlice([]float64{10, 20}, tensor.Shape{1, 2}, backend)
	loss := m.Add(row).Sum()

	grads := autodiff.Backward(loss, backend)

	gr := grads[row.Raw()]
	if !gr.Shape().Equal(tensor.Shape{1, 2}) {
		t.Fatalf("row grad shape = %v, want [1 2]", gr.Shape())
	}
	for i, g := range gr.AsFloat64() {
		if math.Abs(g-3) > 1e-12 {
			t.Errorf("row grad[%d] = %v, want 3", i, g)
		}
	}
}

func TestForwardValuesUnchangedByRecording(t *testing.T) {
	// The same expression must produce identical values with and without
	// the tape running.
	eval := func(record bool) float64 {
		backend := autodiff.New(cpu.New())
		if record {
			backend.Tape().StartRecording()
			defer backend.Tape().StopRecording()
		}
		x, _ := tensor.FromSlice([]float64{0.3, -0.7}, tensor.Shape{2}, backend)
		return x.Tanh().MulScalar(2).Exp().Sum().Item()
	}

	if on, off := eval(true), eval(false); on != off {
		t.Errorf("recording changed forward value: %v vs %v", on, off)
	}
}

func TestInputsSurviveGraphOps(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()
	defer tape.StopRecording()

	// With the tape on, operands must never be overwritten in place even
	// when their buffers are unique.
	x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	y, _ := tensor.FromSlice([]float64{10, 20}, tensor.Shape{2}, backend)
	_ = x.Add(y)

	if x.Data()[0] != 1 || x.Data()[1] != 2 {
		t.Errorf("x mutated by Add: %v", x.Data())
	}
}
