// Command pinn trains a physics-informed neural network on a builtin
// ordinary differential equation and compares the learned solution against
// a Runge-Kutta reference trajectory.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/pinn-ml/pinn/internal/autodiff"
	"github.com/pinn-ml/pinn/internal/backend/cpu"
	"github.com/pinn-ml/pinn/internal/ode"
	"github.com/pinn-ml/pinn/internal/optim"
	"github.com/pinn-ml/pinn/internal/pinn"
	"github.com/pinn-ml/pinn/internal/tensor"
)

const version = "v0.1.0-dev"

type backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// problemDef bundles a builtin equation: its right-hand side in tensor form
// for the residual loss, in scalar form for the reference solver, and the
// initial condition.
type problemDef struct {
	u0     float64
	rhs    pinn.RHS[backend]
	scalar ode.ScalarFunc
}

func builtinProblem(name string) (problemDef, error) {
	switch name {
	case "cosine":
		// u' = cos(2*pi*t), u(0) = 1.
		return problemDef{
			u0: 1,
			rhs: func(u, t *tensor.Tensor[float64, backend]) *tensor.Tensor[float64, backend] {
				return t.MulScalar(2 * math.Pi).Cos()
			},
			scalar: func(t, _ float64) float64 { return math.Cos(2 * math.Pi * t) },
		}, nil
	case "decay":
		// u' = -u, u(0) = 1.
		return problemDef{
			u0: 1,
			rhs: func(u, t *tensor.Tensor[float64, backend]) *tensor.Tensor[float64, backend] {
				return u.MulScalar(-1)
			},
			scalar: func(_, u float64) float64 { return -u },
		}, nil
	default:
		return problemDef{}, fmt.Errorf("unknown problem %q (want cosine or decay)", name)
	}
}

func main() {
	log.SetFlags(0)

	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("pinn %s\n", version)
		return
	}

	if len(os.Args) > 1 && os.Args[1] == "train" {
		if err := runTrain(os.Args[2:]); err != nil {
			log.Fatalf("pinn: %v", err)
		}
		return
	}

	fmt.Println("pinn - physics-informed neural network training")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Train an approximator on a builtin ODE")
	fmt.Println("  version    Show version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", "", "YAML config file")
	problemName := fs.String("problem", "", "builtin problem (cosine, decay)")
	steps := fs.Int("steps", 0, "iteration budget")
	lr := fs.Float64("lr", 0, "learning rate")
	lambda := fs.Float64("lambda", -1, "residual weight")
	seed := fs.Int64("seed", 0, "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *problemName != "" {
		cfg.Problem = *problemName
	}
	if *steps > 0 {
		cfg.Steps = *steps
	}
	if *lr > 0 {
		cfg.LR = *lr
	}
	if *lambda >= 0 {
		cfg.Lambda = *lambda
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	def, err := builtinProblem(cfg.Problem)
	if err != nil {
		return err
	}

	b := autodiff.New(cpu.New())
	rng := rand.New(rand.NewSource(cfg.Seed))

	approx, err := pinn.NewMLP(pinn.MLPConfig{Hidden: cfg.Hidden}, rng, b)
	if err != nil {
		return err
	}
	approx = approx.WithInitialValue(def.u0)

	// Reference trajectory from the fixed-step solver: ground truth for
	// the final comparison and, optionally, the source of noisy
	// observations for the data term.
	refT, refU, err := ode.SolveScalar(def.scalar, def.u0, 0, 1, 1000)
	if err != nil {
		return err
	}

	problem := &pinn.Problem[backend]{
		Approx:      approx,
		RHS:         def.rhs,
		Collocation: pinn.UniformGrid(0, 1, cfg.Samples, b),
		Lambda:      cfg.Lambda,
	}

	if cfg.Observations > 0 {
		xs := make([]float64, cfg.Observations)
		ys := make([]float64, cfg.Observations)
		for i := range xs {
			j := rng.Intn(len(refT))
			xs[i] = refT[j]
			ys[i] = refU[j] + cfg.Noise*rng.NormFloat64()
		}
		problem.DataInputs = mustColumn(xs, b)
		problem.DataTargets = mustColumn(ys, b)
	}

	optimizer := optim.NewAdam(approx.Parameters(), optim.AdamConfig{LR: cfg.LR})
	trainer, err := pinn.NewTrainer(b, approx.Parameters(), optimizer, pinn.TrainerConfig{
		Steps:         cfg.Steps,
		Callback:      func(step int, loss float64) error { log.Printf("step %6d  loss %.6e", step, loss); return nil },
		CallbackEvery: cfg.LogEvery,
	})
	if err != nil {
		return err
	}

	report, err := trainer.Run(problem)
	if err != nil {
		return err
	}

	log.Printf("run %s finished: %s after %d steps, final loss %.6e",
		report.RunID, report.State, report.Steps, report.FinalLoss)

	printComparison(approx, refT, refU)
	return nil
}

// printComparison tabulates the learned solution against the reference
// trajectory at a few sample times.
func printComparison(approx *pinn.Approximator[backend], refT, refU []float64) {
	const rows = 11
	ts := make([]float64, rows)
	for i := range ts {
		ts[i] = float64(i) / float64(rows-1)
	}
	learned := approx.Eval(ts)

	fmt.Printf("\n%8s  %12s  %12s  %10s\n", "t", "g(t)", "reference", "error")
	worst := 0.0
	for i, t := range ts {
		// Nearest reference sample; the trajectory is dense enough that
		// interpolation would not change the printed digits.
		j := int(t*float64(len(refT)-1) + 0.5)
		err := math.Abs(learned[i] - refU[j])
		if err > worst {
			worst = err
		}
		fmt.Printf("%8.2f  %12.6f  %12.6f  %10.2e\n", t, learned[i], refU[j], err)
	}
	fmt.Printf("\nmax |g(t) - reference|: %.2e\n", worst)
}

func mustColumn(values []float64, b backend) *tensor.Tensor[float64, backend] {
	t, err := tensor.FromSlice(values, tensor.Shape{len(values), 1}, b)
	if err != nil {
		panic(err)
	}
	return t
}
