package nn_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/nn"
	"github.com/born-ml/autograd/internal/tensor"
)

func TestRegressionLosses(t *testing.T) {
	backend := newBackend()
	targets := input(backend, tensor.Shape{2, 2}, 1, 2, 3, 4)

	t.Run("MSE", func(t *testing.T) {
		x := param(backend, tensor.Shape{2, 2}, 2, 2, 1, 5)
		loss := nn.NewMeanSquaredError().Forward(x, targets)
		assert.Equal(t, tensor.Shape{1}, loss.Shape())
		assert.InDelta(t, (1+0+4+1)/4.0, loss.Value().Item(), 1e-12)

		require.NoError(t, autograd.BackwardOnes(loss))
		// 2(x - t)/n
		assert.InDeltaSlice(t, []float64{0.5, 0, -1, 0.5}, gradOf(t, x), 1e-12)
	})

	t.Run("MSEWeighted", func(t *testing.T) {
		x := param(backend, tensor.Shape{2, 2}, 2, 2, 1, 5)
		weights := input(backend, tensor.Shape{2, 2}, 1, 1, 0, 2)
		loss := nn.NewMeanSquaredError().ForwardWeighted(x, targets, weights)
		assert.InDelta(t, (1+0+0+2)/4.0, loss.Value().Item(), 1e-12)
	})

	t.Run("MAE", func(t *testing.T) {
		x := param(backend, tensor.Shape{2, 2}, 2, 2, 1, 5)
		loss := nn.NewMeanAbsoluteError().Forward(x, targets)
		assert.InDelta(t, (1+0+2+1)/4.0, loss.Value().Item(), 1e-12)

		require.NoError(t, autograd.BackwardOnes(loss))
		assert.InDeltaSlice(t, []float64{0.25, 0.25, -0.25, 0.25}, gradOf(t, x), 1e-12)
	})

	t.Run("ShapeMismatch", func(t *testing.T) {
		x := param(backend, tensor.Shape{4}, 1, 2, 3, 4)
		err := autograd.Try(func() { nn.NewMeanSquaredError().Forward(x, targets) })
		assert.True(t, errors.Is(err, autograd.ErrShapeMismatch))
	})
}

func TestBinaryCrossEntropy(t *testing.T) {
	backend := newBackend()
	p := param(backend, tensor.Shape{3}, 0.9, 0.2, 0.6)
	targets := input(backend, tensor.Shape{3}, 1, 0, 1)

	loss := nn.NewBinaryCrossEntropy().Forward(p, targets)
	want := -(math.Log(0.9) + math.Log(0.8) + math.Log(0.6)) / 3
	assert.InDelta(t, want, loss.Value().Item(), 1e-12)

	require.NoError(t, autograd.BackwardOnes(loss))
	// d/dp = (p - t) / (p(1-p)) / n
	wantGrad := []float64{-1 / 0.9 / 3, 1 / 0.8 / 3, -1 / 0.6 / 3}
	assert.InDeltaSlice(t, wantGrad, gradOf(t, p), 1e-9)

	weights := input(backend, tensor.Shape{3}, 0, 1, 0)
	weighted := nn.NewBinaryCrossEntropy().ForwardWeighted(p, targets, weights)
	assert.InDelta(t, -math.Log(0.8)/3, weighted.Value().Item(), 1e-12)
}

func softmax(row []float64) []float64 {
	out := make([]float64, len(row))
	var sum float64
	for i, v := range row {
		out[i] = math.Exp(v)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func TestCrossEntropy(t *testing.T) {
	backend := newBackend()
	logits := []float64{1, 2, 0.5, -1, 0, 3}
	x := param(backend, tensor.Shape{2, 3}, logits...)
	targets := input(backend, tensor.Shape{2}, 1, 0)

	loss := nn.NewCrossEntropy().Forward(x, targets)
	p0, p1 := softmax(logits[:3]), softmax(logits[3:])
	want := -(math.Log(p0[1]) + math.Log(p1[0])) / 2
	assert.InDelta(t, want, loss.Value().Item(), 1e-9)

	require.NoError(t, autograd.BackwardOnes(loss))
	// (softmax - onehot) / batch
	wantGrad := []float64{
		p0[0] / 2, (p0[1] - 1) / 2, p0[2] / 2,
		(p1[0] - 1) / 2, p1[1] / 2, p1[2] / 2,
	}
	assert.InDeltaSlice(t, wantGrad, gradOf(t, x), 1e-9)

	t.Run("LargeLogits", func(t *testing.T) {
		big := input(backend, tensor.Shape{1, 2}, 1000, 0)
		loss := nn.NewCrossEntropy().Forward(big, input(backend, tensor.Shape{1}, 0))
		assert.InDelta(t, 0, loss.Value().Item(), 1e-9)
	})

	t.Run("Weighted", func(t *testing.T) {
		weights := input(backend, tensor.Shape{2}, 2, 0)
		loss := nn.NewCrossEntropy().ForwardWeighted(x, targets, weights)
		assert.InDelta(t, -2*math.Log(p0[1])/2, loss.Value().Item(), 1e-9)
	})

	t.Run("InvalidTarget", func(t *testing.T) {
		for _, bad := range [][]float64{{1, 3}, {-1, 0}, {0.5, 1}} {
			err := autograd.Try(func() {
				nn.NewCrossEntropy().Forward(x, input(backend, tensor.Shape{2}, bad...))
			})
			assert.True(t, errors.Is(err, nn.ErrInvalidTarget), "targets %v: %v", bad, err)
		}
		err := autograd.Try(func() {
			nn.NewCrossEntropy().Forward(x, input(backend, tensor.Shape{3}, 0, 1, 2))
		})
		assert.True(t, errors.Is(err, autograd.ErrShapeMismatch))
	})
}

func TestMultiMarginLoss(t *testing.T) {
	backend := newBackend()
	x := param(backend, tensor.Shape{2, 3}, 1, 2, 0.5, 3, 0, 0)
	targets := input(backend, tensor.Shape{2}, 0, 0)

	loss := nn.NewMultiMarginLoss().Forward(x, targets)
	// Sample 0: margins [-, 2, 0.5] -> 2.5/3. Sample 1: [-, max(-2, 0), max(-2, 0)] -> 0.
	assert.InDelta(t, (2.5/3)/2, loss.Value().Item(), 1e-12)

	require.NoError(t, autograd.BackwardOnes(loss))
	// Each active margin pushes its own score up and the correct score down.
	k := 1.0 / 6
	assert.InDeltaSlice(t, []float64{-2 * k, k, k, 0, 0, 0}, gradOf(t, x), 1e-12)

	weights := input(backend, tensor.Shape{2}, 0, 1)
	assert.InDelta(t, 0, nn.NewMultiMarginLoss().ForwardWeighted(x, targets, weights).Value().Item(), 1e-12)
}
