package optim_test

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/backend/cpu"
	"github.com/born-ml/autograd/internal/nn"
	"github.com/born-ml/autograd/internal/optim"
	"github.com/born-ml/autograd/internal/parallel"
	"github.com/born-ml/autograd/internal/tensor"
)

var backend = cpu.NewWithConfig(cpu.Config{Seed: 5, Parallel: parallel.Sequential()})

func scalarParam(value float32) *autograd.Variable {
	return autograd.Parameter(must.M1(tensor.FromSlice([]float32{value}, tensor.Shape{1})), backend)
}

// setGrad replaces the gradient of p with a constant.
func setGrad(p *autograd.Variable, value float32) {
	p.ZeroGrad()
	p.AddGrad(autograd.Input(must.M1(tensor.FromSlice([]float32{value}, tensor.Shape{1})), backend))
}

func value(p *autograd.Variable) float64 {
	return p.Value().Item()
}

func TestSGD_SimpleUpdate(t *testing.T) {
	x := scalarParam(2)
	opt := optim.NewSGD([]*autograd.Variable{x}, optim.SGDConfig{LR: 0.1})

	setGrad(x, 1)
	opt.Step()
	assert.InDelta(t, 1.9, value(x), 1e-6)
	assert.Equal(t, 0, opt.StateDict().Len())
}

func TestSGD_WithMomentum(t *testing.T) {
	x := scalarParam(2)
	opt := optim.NewSGD([]*autograd.Variable{x}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	setGrad(x, 1)
	opt.Step() // v = -0.1
	assert.InDelta(t, 1.9, value(x), 1e-6)

	opt.Step() // v = 0.9·(-0.1) - 0.1
	assert.InDelta(t, 1.71, value(x), 1e-6)

	state := opt.StateDict()
	velocity, ok := state.Get("velocity.0")
	require.True(t, ok)
	assert.InDelta(t, -0.19, velocity.Item(), 1e-6)
}

func TestSGD_Nesterov(t *testing.T) {
	x := scalarParam(2)
	opt := optim.NewSGD([]*autograd.Variable{x}, optim.SGDConfig{LR: 0.1, Momentum: 0.9, Nesterov: true})

	setGrad(x, 1)
	opt.Step() // x + 0.9·v - lr·g with v = -0.1
	assert.InDelta(t, 1.81, value(x), 1e-6)
}

func TestSGD_WeightDecay(t *testing.T) {
	x := scalarParam(2)
	opt := optim.NewSGD([]*autograd.Variable{x}, optim.SGDConfig{LR: 0.1, WeightDecay: 0.1})

	setGrad(x, 1)
	opt.Step()
	assert.InDelta(t, 1.7, value(x), 1e-6)
}

func TestSGD_Defaults(t *testing.T) {
	opt := optim.NewSGD(nil, optim.SGDConfig{})
	assert.Equal(t, 0.01, opt.GetLR())
	opt.SetLR(0.5)
	assert.Equal(t, 0.5, opt.GetLR())
}

func TestAdam_FirstStep(t *testing.T) {
	x := scalarParam(2)
	y := scalarParam(-1)
	opt := optim.NewAdam([]*autograd.Variable{x, y}, optim.AdamConfig{LR: 0.1})

	// The first bias-corrected Adam step moves each parameter by ~lr against its gradient sign.
	setGrad(x, 3)
	setGrad(y, -0.5)
	opt.Step()
	assert.Equal(t, 1, opt.Timestep(), "one step advances the count once")
	assert.InDelta(t, 1.9, value(x), 1e-5)
	assert.InDelta(t, -0.9, value(y), 1e-5)

	opt.Step()
	assert.Equal(t, 2, opt.Timestep())
	assert.InDelta(t, 1.8, value(x), 1e-5)

	state := opt.StateDict()
	assert.Equal(t, 4, state.Len())
	m, ok := state.Get("m.0")
	require.True(t, ok)
	// m₂ = 0.9·0.3 + 0.1·3
	assert.InDelta(t, 0.57, m.Item(), 1e-5)
}

func TestAdam_Defaults(t *testing.T) {
	opt := optim.NewAdam(nil, optim.AdamConfig{})
	assert.Equal(t, 0.001, opt.GetLR())
	assert.Equal(t, 0, opt.Timestep())
}

func TestRMSProp(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		x := scalarParam(2)
		opt := optim.NewRMSProp([]*autograd.Variable{x}, optim.RMSPropConfig{LR: 0.01})
		setGrad(x, 1)
		opt.Step() // s = 0.01, update = lr / √s
		assert.InDelta(t, 1.9, value(x), 1e-5)
		assert.Equal(t, 1, opt.StateDict().Len())
	})

	t.Run("Centered", func(t *testing.T) {
		x := scalarParam(2)
		opt := optim.NewRMSProp([]*autograd.Variable{x}, optim.RMSPropConfig{LR: 0.01, UseFirst: true})
		setGrad(x, 1)
		opt.Step() // s - f² = 0.01 - 0.0001
		assert.InDelta(t, 2-0.01/0.099498744, value(x), 1e-5)
		assert.Equal(t, 2, opt.StateDict().Len())
	})
}

func TestOptimizers_SkipParametersWithoutGradient(t *testing.T) {
	for name, build := range map[string]func([]*autograd.Variable) optim.Optimizer{
		"sgd":     func(p []*autograd.Variable) optim.Optimizer { return optim.NewSGD(p, optim.SGDConfig{Momentum: 0.9}) },
		"adam":    func(p []*autograd.Variable) optim.Optimizer { return optim.NewAdam(p, optim.AdamConfig{}) },
		"rmsprop": func(p []*autograd.Variable) optim.Optimizer { return optim.NewRMSProp(p, optim.RMSPropConfig{}) },
	} {
		t.Run(name, func(t *testing.T) {
			noGrad := scalarParam(1)
			frozen := scalarParam(2)
			setGrad(frozen, 1)
			frozen.SetCalcGrad(false)

			opt := build([]*autograd.Variable{noGrad, frozen})
			opt.Step()
			assert.Equal(t, 1.0, value(noGrad))
			assert.Equal(t, 2.0, value(frozen))

			updated := scalarParam(3)
			setGrad(updated, 1)
			opt = build([]*autograd.Variable{updated})
			opt.Step()
			assert.Less(t, value(updated), 3.0)

			opt.ZeroGrad()
			assert.False(t, updated.HasGrad())
		})
	}
}

func TestXORConvergence(t *testing.T) {
	x := autograd.Input(must.M1(tensor.FromSlice([]float32{0, 0, 0, 1, 1, 0, 1, 1}, tensor.Shape{4, 2})), backend)
	y := autograd.Input(must.M1(tensor.FromSlice([]float32{0, 1, 1, 0}, tensor.Shape{4, 1})), backend)

	model := nn.NewSequential(
		nn.NewLinear(2, 8, true, backend),
		nn.NewTanh(),
		nn.NewLinear(8, 1, true, backend),
		nn.NewSigmoid(),
	)
	criterion := nn.NewMeanSquaredError()
	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.05})

	var loss float64
	for range 1000 {
		opt.ZeroGrad()
		l := criterion.Forward(model.Forward(x), y)
		require.NoError(t, autograd.BackwardOnes(l))
		opt.Step()
		loss = l.Value().Item()
	}
	assert.Less(t, loss, 0.02)

	nn.Eval(model)
	predictions := model.Forward(x).Value().Float64s()
	for i, want := range []float64{0, 1, 1, 0} {
		assert.InDelta(t, want, predictions[i], 0.3, "sample %d", i)
	}
}
