package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/autograd/internal/parallel"
	"github.com/born-ml/autograd/internal/tensor"
)

func TestCPUBackend_Unwrap(t *testing.T) {
	backend := newTestBackend()
	// 1x1x3x3 image, 2x2 window, stride 1, no padding.
	x := raw64([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 1, 1, 3, 3)
	win := tensor.Window{WX: 2, WY: 2, SX: 1, SY: 1}

	cols := backend.Unwrap(x, win)
	assert.Equal(t, tensor.Shape{1, 4, 4}, cols.Shape())
	assert.Equal(t, []float64{
		1, 2, 4, 5, // tap (0,0)
		2, 3, 5, 6, // tap (0,1)
		4, 5, 7, 8, // tap (1,0)
		5, 6, 8, 9, // tap (1,1)
	}, cols.AsFloat64())
}

func TestCPUBackend_UnwrapPadding(t *testing.T) {
	backend := newTestBackend()
	x := raw64([]float64{1, 2, 3, 4}, 1, 1, 2, 2)
	win := tensor.Window{WX: 2, WY: 2, SX: 2, SY: 2, PX: 1, PY: 1}

	cols := backend.Unwrap(x, win)
	assert.Equal(t, tensor.Shape{1, 4, 4}, cols.Shape())
	// Each image pixel lands in exactly one column for this geometry.
	assert.Equal(t, 10.0, floats.Sum(cols.AsFloat64()))
	assert.Equal(t, []float64{0, 0, 0, 4}, cols.AsFloat64()[:4])
}

func TestCPUBackend_WrapSumsOverlaps(t *testing.T) {
	backend := newTestBackend()
	win := tensor.Window{WX: 2, WY: 2, SX: 1, SY: 1}
	ones := backend.Full(tensor.Shape{1, 4, 4}, 1, tensor.Float64)

	img := backend.Wrap(ones, 3, 3, win)
	assert.Equal(t, tensor.Shape{1, 1, 3, 3}, img.Shape())
	// Number of windows covering each pixel.
	assert.Equal(t, []float64{1, 2, 1, 2, 4, 2, 1, 2, 1}, img.AsFloat64())

	assertPanicsWith(t, tensor.ErrShapeMismatch, func() { backend.Wrap(ones, 4, 4, win) })
}

// Wrap is the adjoint of Unwrap: <Unwrap(x), y> == <x, Wrap(y)>.
func TestCPUBackend_UnwrapWrapAdjoint(t *testing.T) {
	windows := []tensor.Window{
		{WX: 3, WY: 3, SX: 1, SY: 1, PX: 1, PY: 1},
		{WX: 2, WY: 3, SX: 2, SY: 1, PX: 0, PY: 1},
		{WX: 1, WY: 1, SX: 1, SY: 1},
	}
	for _, cfg := range []parallel.Config{parallel.Sequential(), {Enabled: true, NumWorkers: 4, MinChunkSize: 1}} {
		backend := NewWithConfig(Config{Seed: 3, Parallel: cfg})
		for _, win := range windows {
			x := backend.RandNormal(tensor.Shape{2, 3, 5, 6}, 0, 1, tensor.Float64)
			cols := backend.Unwrap(x, win)
			y := backend.RandNormal(cols.Shape(), 0, 1, tensor.Float64)

			lhs := floats.Dot(cols.AsFloat64(), y.AsFloat64())
			rhs := floats.Dot(x.AsFloat64(), backend.Wrap(y, 5, 6, win).AsFloat64())
			assert.InDelta(t, lhs, rhs, 1e-9, "window %+v", win)
		}
	}
}

func TestCPUBackend_WindowLargerThanPlane(t *testing.T) {
	backend := newTestBackend()
	x := raw64([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 1, 1, 3, 3)
	win := tensor.Window{WX: 4, WY: 4, SX: 2, SY: 2}

	assertPanicsWith(t, tensor.ErrShapeMismatch, func() { backend.Unwrap(x, win) })
	cols := raw64(make([]float64, 16), 1, 16, 1)
	assertPanicsWith(t, tensor.ErrShapeMismatch, func() { backend.Wrap(cols, 3, 3, win) })

	// Padding that makes the window fit is accepted.
	padded := tensor.Window{WX: 4, WY: 4, SX: 2, SY: 2, PX: 1, PY: 1}
	assert.Equal(t, tensor.Shape{1, 16, 1}, backend.Unwrap(x, padded).Shape())
}
