package nn_test

import (
	"math"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/autograd/ops"
	"github.com/born-ml/autograd/internal/backend/cpu"
	"github.com/born-ml/autograd/internal/nn"
	"github.com/born-ml/autograd/internal/parallel"
	"github.com/born-ml/autograd/internal/tensor"
)

func newBackend() *cpu.CPUBackend {
	return cpu.NewWithConfig(cpu.Config{Seed: 3, Parallel: parallel.Sequential()})
}

func param(backend tensor.Backend, shape tensor.Shape, data ...float64) *autograd.Variable {
	return autograd.Parameter(must.M1(tensor.FromSlice(data, shape)), backend)
}

func input(backend tensor.Backend, shape tensor.Shape, data ...float64) *autograd.Variable {
	return autograd.Input(must.M1(tensor.FromSlice(data, shape)), backend)
}

func gradOf(t *testing.T, v *autograd.Variable) []float64 {
	t.Helper()
	g, err := v.Grad()
	require.NoError(t, err)
	return g.Value().Float64s()
}

func keys(m *nn.ParamMap) []string {
	var out []string
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func TestLinear_Creation(t *testing.T) {
	backend := newBackend()
	layer := nn.NewLinear(10, 5, true, backend)

	assert.Equal(t, 10, layer.InFeatures())
	assert.Equal(t, 5, layer.OutFeatures())
	assert.Equal(t, tensor.Shape{5, 10}, layer.Weight().Shape())
	assert.Equal(t, tensor.Shape{1, 5}, layer.Bias().Shape())
	assert.Equal(t, tensor.Float32, layer.Weight().DType())
	assert.True(t, layer.Weight().IsCalcGrad())
	assert.Len(t, layer.Parameters(), 2)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, layer.Bias().Value().Float64s())

	// Glorot uniform bound for fan_in=10, fan_out=5.
	limit := math.Sqrt(3) * math.Sqrt(2.0/15)
	for _, w := range layer.Weight().Value().Float64s() {
		assert.LessOrEqual(t, math.Abs(w), limit)
	}

	noBias := nn.NewLinear(3, 2, false, backend)
	assert.Nil(t, noBias.Bias())
	assert.Len(t, noBias.Parameters(), 1)
	assert.Equal(t, []string{"weight"}, keys(noBias.NamedParameters()))
}

func TestLinear_ForwardBackward(t *testing.T) {
	backend := newBackend()
	w := param(backend, tensor.Shape{2, 3}, 1, 0, -1, 2, 1, 0)
	b := param(backend, tensor.Shape{1, 2}, 0.5, -0.5)
	layer := must.M1(nn.NewLinearFromParams(w, b))

	x := input(backend, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	y := layer.Forward(x)
	require.Equal(t, tensor.Shape{2, 2}, y.Shape())
	// x @ W.T + b
	assert.Equal(t, []float64{-1.5, 3.5, -1.5, 12.5}, y.Value().Float64s())

	require.NoError(t, autograd.BackwardOnes(ops.Sum(y)))
	// dW[o, i] = Σ_b x[b, i], db = batch size.
	assert.Equal(t, []float64{5, 7, 9, 5, 7, 9}, gradOf(t, w))
	assert.Equal(t, []float64{2, 2}, gradOf(t, b))
}

func TestLinear_FromParamsValidation(t *testing.T) {
	backend := newBackend()
	w := param(backend, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)

	_, err := nn.NewLinearFromParams(param(backend, tensor.Shape{6}, 1, 2, 3, 4, 5, 6), nil)
	assert.True(t, errors.Is(err, autograd.ErrShapeMismatch))

	_, err = nn.NewLinearFromParams(w, param(backend, tensor.Shape{3}, 1, 2, 3))
	assert.True(t, errors.Is(err, autograd.ErrShapeMismatch))

	layer, err := nn.NewLinearFromParams(w, nil)
	require.NoError(t, err)
	assert.Nil(t, layer.Bias())
}

func TestSequential(t *testing.T) {
	backend := newBackend()
	model := nn.NewSequential(
		nn.NewLinear(4, 8, true, backend),
		nn.NewReLU(),
	)
	model.Add(nn.NewLinear(8, 2, false, backend))

	assert.Equal(t, 3, model.Len())
	assert.IsType(t, &nn.ReLU{}, model.Module(1))
	assert.Panics(t, func() { model.Module(3) })
	assert.Len(t, model.Parameters(), 3)
	assert.Equal(t, []string{"0.weight", "0.bias", "2.weight"}, keys(nn.NamedParameters(model)))

	x := autograd.Input(backend.RandNormal(tensor.Shape{5, 4}, 0, 1, tensor.Float32), backend)
	assert.Equal(t, tensor.Shape{5, 2}, model.Forward(x).Shape())
}

func TestNamedParameters_Positional(t *testing.T) {
	backend := newBackend()
	m := moduleFunc{params: []*autograd.Variable{
		param(backend, tensor.Shape{1}, 1),
		param(backend, tensor.Shape{1}, 2),
	}}
	assert.Equal(t, []string{"0", "1"}, keys(nn.NamedParameters(m)))
}

type moduleFunc struct {
	params []*autograd.Variable
}

func (m moduleFunc) Forward(x *autograd.Variable) *autograd.Variable { return x }
func (m moduleFunc) Parameters() []*autograd.Variable { return m.params }

func TestTrainEvalZeroGrad(t *testing.T) {
	backend := newBackend()
	dropout := nn.NewDropout(0.5)
	model := nn.NewSequential(nn.NewLinear(3, 2, true, backend), dropout)

	x := autograd.Input(backend.RandNormal(tensor.Shape{4, 3}, 0, 1, tensor.Float32), backend)
	require.NoError(t, autograd.BackwardOnes(ops.Sum(model.Forward(x))))
	for _, p := range model.Parameters() {
		assert.True(t, p.HasGrad())
	}

	nn.ZeroGrad(model)
	for _, p := range model.Parameters() {
		assert.False(t, p.HasGrad())
	}

	nn.Eval(model)
	assert.False(t, dropout.Training())
	for _, p := range model.Parameters() {
		assert.False(t, p.IsCalcGrad())
	}
	out := model.Forward(x)
	assert.False(t, out.IsCalcGrad(), "eval mode builds no graph")

	nn.Train(model)
	assert.True(t, dropout.Training())
	for _, p := range model.Parameters() {
		assert.True(t, p.IsCalcGrad())
	}
}

func TestStateDict(t *testing.T) {
	backend := newBackend()
	src := nn.NewSequential(nn.NewLinear(3, 2, true, backend), nn.NewTanh(), nn.NewLinear(2, 1, true, backend))
	dst := nn.NewSequential(nn.NewLinear(3, 2, true, backend), nn.NewTanh(), nn.NewLinear(2, 1, true, backend))

	state := nn.StateDict(src)
	assert.Equal(t, 4, state.Len())
	require.NoError(t, nn.LoadStateDict(dst, state))

	for i, p := range dst.Parameters() {
		assert.Equal(t, src.Parameters()[i].Value().Float64s(), p.Value().Float64s())
	}

	// The snapshot is a copy.
	w, _ := state.Get("0.weight")
	w.AsFloat32()[0] = 42
	assert.NotEqual(t, float32(42), src.Parameters()[0].Value().AsFloat32()[0])

	t.Run("Missing", func(t *testing.T) {
		partial := nn.StateDict(src)
		partial.Delete("2.bias")
		partial.Set("2.extra", w)
		err := nn.LoadStateDict(dst, partial)
		assert.True(t, errors.Is(err, nn.ErrStateDict), "got %v", err)
	})

	t.Run("Count", func(t *testing.T) {
		partial := nn.StateDict(src)
		partial.Delete("2.bias")
		err := nn.LoadStateDict(dst, partial)
		assert.True(t, errors.Is(err, nn.ErrStateDict), "got %v", err)
	})

	t.Run("Shape", func(t *testing.T) {
		bad := nn.StateDict(src)
		bad.Set("0.bias", tensor.MustNewRaw(tensor.Shape{2, 1}, tensor.Float32))
		err := nn.LoadStateDict(dst, bad)
		assert.True(t, errors.Is(err, nn.ErrStateDict), "got %v", err)
	})
}

func TestInit(t *testing.T) {
	backend := newBackend()
	shape := tensor.Shape{20, 50}

	t.Run("Uniform", func(t *testing.T) {
		v := nn.Uniform(backend, shape, -2, 3, tensor.Float64, true)
		assert.True(t, v.IsCalcGrad())
		for _, x := range v.Value().Float64s() {
			assert.True(t, x >= -2 && x < 3)
		}
	})

	t.Run("Normal", func(t *testing.T) {
		v := nn.Normal(backend, tensor.Shape{100, 100}, 1, 0.5, tensor.Float64, false)
		assert.False(t, v.IsCalcGrad())
		assert.InDelta(t, 1, backend.Mean(v.Value()).Item(), 0.03)
	})

	t.Run("LecunUniform", func(t *testing.T) {
		limit := math.Sqrt(3) * math.Sqrt(1.0/50)
		for _, x := range nn.LecunUniform(backend, shape, tensor.Float32, true).Value().Float64s() {
			assert.LessOrEqual(t, math.Abs(x), limit+1e-7)
		}
	})

	t.Run("NormalStd", func(t *testing.T) {
		big := tensor.Shape{200, 100}
		for name, tc := range map[string]struct {
			v   *autograd.Variable
			std float64
		}{
			"lecun":  {nn.LecunNormal(backend, big, tensor.Float64, true), math.Sqrt(1.0 / 100)},
			"glorot": {nn.GlorotNormal(backend, big, tensor.Float64, true), math.Sqrt(2.0 / 300)},
		} {
			values := tc.v.Value().Float64s()
			var sq float64
			for _, x := range values {
				sq += x * x
			}
			assert.InDelta(t, tc.std, math.Sqrt(sq/float64(len(values))), tc.std*0.05, name)
		}
	})

	t.Run("GlorotUniform", func(t *testing.T) {
		limit := math.Sqrt(3) * math.Sqrt(2.0/70)
		for _, x := range nn.GlorotUniform(backend, shape, tensor.Float32, true).Value().Float64s() {
			assert.LessOrEqual(t, math.Abs(x), limit+1e-7)
		}
	})

	t.Run("ConstantAndIdentity", func(t *testing.T) {
		c := nn.Constant(backend, 0.25, tensor.Shape{2, 2}, tensor.Float64, false)
		assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, c.Value().Float64s())

		id := nn.Identity(backend, tensor.Shape{2, 3}, tensor.Float32, true)
		assert.Equal(t, []float64{1, 0, 0, 0, 1, 0}, id.Value().Float64s())
		assert.Panics(t, func() { nn.Identity(backend, tensor.Shape{4}, tensor.Float32, true) })
	})
}
