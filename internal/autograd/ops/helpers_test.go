package ops

import (
	"math"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/backend/cpu"
	"github.com/born-ml/autograd/internal/parallel"
	"github.com/born-ml/autograd/internal/tensor"
)

var backend = cpu.NewWithConfig(cpu.Config{Seed: 11, Parallel: parallel.Sequential()})

func raw(shape tensor.Shape, data ...float64) *tensor.RawTensor {
	return must.M1(tensor.FromSlice(data, shape))
}

func param(shape tensor.Shape, data ...float64) *autograd.Variable {
	return autograd.Parameter(raw(shape, data...), backend)
}

func input(shape tensor.Shape, data ...float64) *autograd.Variable {
	return autograd.Input(raw(shape, data...), backend)
}

func randn(shape ...int) *tensor.RawTensor {
	return backend.RandNormal(tensor.Shape(shape), 0, 1, tensor.Float64)
}

// randPositive samples from U(0.5, 2), a domain safe for log, sqrt and division.
func randPositive(shape ...int) *tensor.RawTensor {
	return backend.RandUniform(tensor.Shape(shape), 0.5, 2, tensor.Float64)
}

func gradOf(t *testing.T, v *autograd.Variable) []float64 {
	t.Helper()
	g, err := v.Grad()
	require.NoError(t, err)
	require.Equal(t, v.Shape(), g.Shape())
	return g.Value().Float64s()
}

// checkGradients compares the analytic gradients of Σ f(inputs)·R, for a fixed
// random R, with central finite differences.
func checkGradients(t *testing.T, f func(in ...*autograd.Variable) *autograd.Variable, inputs ...*tensor.RawTensor) {
	t.Helper()
	const eps = 1e-6

	params := make([]*autograd.Variable, len(inputs))
	for i, in := range inputs {
		params[i] = autograd.Parameter(in.Clone(), backend)
	}
	out := f(params...)
	weights := autograd.Input(backend.RandNormal(out.Shape(), 0, 1, tensor.Float64), backend)
	loss := Sum(Mul(out, weights))
	require.NoError(t, autograd.BackwardOnes(loss))

	evaluate := func(values []*tensor.RawTensor) float64 {
		consts := make([]*autograd.Variable, len(values))
		for i, v := range values {
			consts[i] = autograd.Input(v, backend)
		}
		return Sum(Mul(f(consts...), weights)).Value().Item()
	}

	for i, in := range inputs {
		analytic := gradOf(t, params[i])
		for j := range in.NumElements() {
			perturbed := make([]*tensor.RawTensor, len(inputs))
			for k := range inputs {
				perturbed[k] = inputs[k].Clone()
			}
			data := perturbed[i].AsFloat64()
			orig := data[j]

			data[j] = orig + eps
			plus := evaluate(perturbed)
			data[j] = orig - eps
			minus := evaluate(perturbed)

			numeric := (plus - minus) / (2 * eps)
			tol := 1e-5 * math.Max(1, math.Abs(numeric))
			assert.InDelta(t, numeric, analytic[j], tol, "input %d element %d", i, j)
		}
	}
}
