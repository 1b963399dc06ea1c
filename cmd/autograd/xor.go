package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/backend/cpu"
	"github.com/born-ml/autograd/internal/nn"
	"github.com/born-ml/autograd/internal/optim"
	"github.com/born-ml/autograd/internal/tensor"
)

var errUnknownOptimizer = errors.New("unknown optimizer")

type xorOptions struct {
	optimizer string
	lr        float64
	steps     int
	seed      uint64
	save      string
}

type xorResult struct {
	initialLoss float64
	finalLoss   float64
	predictions []float64
}

func newXORCmd() *cobra.Command {
	opts := xorOptions{}
	cmd := &cobra.Command{
		Use:   "xor",
		Short: "Train a small MLP on the XOR truth table",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := trainXOR(opts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "loss: %.6f -> %.6f\n", res.initialLoss, res.finalLoss)
			for i, in := range xorInputs() {
				fmt.Fprintf(out, "%v -> %.4f\n", in, res.predictions[i])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.optimizer, "optim", "adam", "optimizer: sgd, adam or rmsprop")
	cmd.Flags().Float64Var(&opts.lr, "lr", 0.05, "learning rate")
	cmd.Flags().IntVar(&opts.steps, "steps", 1000, "number of optimizer steps")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 3, "random seed for parameter initialization")
	cmd.Flags().StringVar(&opts.save, "save", "", "write the trained parameters to this file")
	return cmd
}

func xorInputs() [][2]float32 {
	return [][2]float32{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
}

func newOptimizer(name string, params []*autograd.Variable, lr float64) (optim.Optimizer, error) {
	switch name {
	case "sgd":
		return optim.NewSGD(params, optim.SGDConfig{LR: lr, Momentum: 0.9}), nil
	case "adam":
		return optim.NewAdam(params, optim.AdamConfig{LR: lr}), nil
	case "rmsprop":
		return optim.NewRMSProp(params, optim.RMSPropConfig{LR: lr}), nil
	default:
		return nil, errors.Wrapf(errUnknownOptimizer, "%q", name)
	}
}

// trainXOR fits a 2-8-1 network to XOR and reports progress to log every
// tenth of the run.
func trainXOR(opts xorOptions, log io.Writer) (*xorResult, error) {
	if opts.steps <= 0 {
		return nil, errors.Errorf("steps must be positive, got %d", opts.steps)
	}
	cfg := cpu.DefaultConfig()
	cfg.Seed = opts.seed
	backend := cpu.NewWithConfig(cfg)

	flat := make([]float32, 0, 8)
	for _, in := range xorInputs() {
		flat = append(flat, in[0], in[1])
	}
	xRaw, err := tensor.FromSlice(flat, tensor.Shape{4, 2})
	if err != nil {
		return nil, err
	}
	yRaw, err := tensor.FromSlice([]float32{0, 1, 1, 0}, tensor.Shape{4, 1})
	if err != nil {
		return nil, err
	}
	x, y := autograd.Input(xRaw, backend), autograd.Input(yRaw, backend)

	model := nn.NewSequential(
		nn.NewLinear(2, 8, true, backend),
		nn.NewTanh(),
		nn.NewLinear(8, 1, true, backend),
		nn.NewSigmoid(),
	)
	opt, err := newOptimizer(opts.optimizer, model.Parameters(), opts.lr)
	if err != nil {
		return nil, err
	}
	criterion := nn.NewMeanSquaredError()

	res := &xorResult{}
	every := max(opts.steps/10, 1)
	for step := range opts.steps {
		opt.ZeroGrad()
		loss := criterion.Forward(model.Forward(x), y)
		if err := autograd.BackwardOnes(loss); err != nil {
			return nil, errors.WithMessagef(err, "step %d", step)
		}
		opt.Step()

		res.finalLoss = loss.Value().Item()
		if step == 0 {
			res.initialLoss = res.finalLoss
		}
		if step%every == 0 {
			fmt.Fprintf(log, "step %5d  loss %.6f\n", step, res.finalLoss)
		}
	}

	nn.Eval(model)
	res.predictions = model.Forward(x).Value().Float64s()

	if opts.save != "" {
		meta := map[string]string{"optimizer": opts.optimizer, "steps": fmt.Sprint(opts.steps)}
		if err := nn.Save(model, opts.save, meta); err != nil {
			return nil, err
		}
		klog.V(1).Infof("saved model to %s", opts.save)
	}
	return res, nil
}
