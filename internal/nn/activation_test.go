package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/nn"
	"github.com/born-ml/autograd/internal/tensor"
)

func TestActivations(t *testing.T) {
	backend := newBackend()
	values := []float64{-2, -0.5, 0.5, 2}

	sigmoid := func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
	tests := []struct {
		name   string
		module nn.Module
		f      func(float64) float64
		df     func(float64) float64
	}{
		{"sigmoid", nn.NewSigmoid(), sigmoid, func(x float64) float64 { return sigmoid(x) * (1 - sigmoid(x)) }},
		{"tanh", nn.NewTanh(), math.Tanh, func(x float64) float64 { return 1 - math.Tanh(x)*math.Tanh(x) }},
		{"relu", nn.NewReLU(), func(x float64) float64 { return math.Max(x, 0) }, func(x float64) float64 {
			if x > 0 {
				return 1
			}
			return 0
		}},
		{"leaky_relu", nn.NewLeakyReLU(0.1), func(x float64) float64 { return math.Max(x, 0.1*x) }, func(x float64) float64 {
			if x > 0 {
				return 1
			}
			return 0.1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, tt.module.Parameters())

			x := param(backend, tensor.Shape{4}, values...)
			y := tt.module.Forward(x)
			require.Equal(t, x.Shape(), y.Shape())
			require.NoError(t, autograd.BackwardOnes(y))

			got, grads := y.Value().Float64s(), gradOf(t, x)
			for i, v := range values {
				assert.InDelta(t, tt.f(v), got[i], 1e-9, "f(%v)", v)
				assert.InDelta(t, tt.df(v), grads[i], 1e-9, "f'(%v)", v)
			}
		})
	}
}

func TestDropout(t *testing.T) {
	backend := newBackend()

	t.Run("Training", func(t *testing.T) {
		d := nn.NewDropout(0.25)
		assert.True(t, d.Training())
		assert.Equal(t, 0.25, d.Ratio())

		x := autograd.Parameter(backend.Full(tensor.Shape{1000}, 1, tensor.Float64), backend)
		y := d.Forward(x)

		var kept int
		for _, v := range y.Value().Float64s() {
			if v != 0 {
				assert.InDelta(t, 1/0.75, v, 1e-12)
				kept++
			}
		}
		assert.InDelta(t, 750, kept, 60)

		// The gradient flows through the same mask.
		require.NoError(t, autograd.BackwardOnes(y))
		assert.Equal(t, y.Value().Float64s(), gradOf(t, x))
	})

	t.Run("Eval", func(t *testing.T) {
		d := nn.NewDropout(0.9)
		d.SetTraining(false)
		x := autograd.Input(backend.Full(tensor.Shape{10}, 2, tensor.Float32), backend)
		assert.Same(t, x, d.Forward(x))
	})

	t.Run("ZeroRatio", func(t *testing.T) {
		x := autograd.Input(backend.Full(tensor.Shape{3}, 2, tensor.Float32), backend)
		assert.Same(t, x, nn.NewDropout(0).Forward(x))
	})

	t.Run("InvalidRatio", func(t *testing.T) {
		assert.Panics(t, func() { nn.NewDropout(1) })
		assert.Panics(t, func() { nn.NewDropout(-0.1) })
	})
}
