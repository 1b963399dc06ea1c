package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

type V = autograd.Variable

func TestGradientsElementwise(t *testing.T) {
	cases := []struct {
		name   string
		f      func(in ...*V) *V
		inputs []*tensor.RawTensor
	}{
		{"add", func(in ...*V) *V { return Add(in[0], in[1]) }, []*tensor.RawTensor{randn(2, 3), randn(2, 3)}},
		{"sub", func(in ...*V) *V { return Sub(in[0], in[1]) }, []*tensor.RawTensor{randn(2, 3), randn(2, 3)}},
		{"mul", func(in ...*V) *V { return Mul(in[0], in[1]) }, []*tensor.RawTensor{randn(2, 3), randn(2, 3)}},
		{"div", func(in ...*V) *V { return Div(in[0], in[1]) }, []*tensor.RawTensor{randn(2, 3), randPositive(2, 3)}},
		{"negate", func(in ...*V) *V { return Negate(in[0]) }, []*tensor.RawTensor{randn(4)}},
		{"reciprocal", func(in ...*V) *V { return Reciprocal(in[0]) }, []*tensor.RawTensor{randPositive(4)}},
		{"exp", func(in ...*V) *V { return Exp(in[0]) }, []*tensor.RawTensor{randn(4)}},
		{"log", func(in ...*V) *V { return Log(in[0]) }, []*tensor.RawTensor{randPositive(4)}},
		{"sqrt", func(in ...*V) *V { return Sqrt(in[0]) }, []*tensor.RawTensor{randPositive(4)}},
		{"sin", func(in ...*V) *V { return Sin(in[0]) }, []*tensor.RawTensor{randn(4)}},
		{"cos", func(in ...*V) *V { return Cos(in[0]) }, []*tensor.RawTensor{randn(4)}},
		{"tanh", func(in ...*V) *V { return Tanh(in[0]) }, []*tensor.RawTensor{randn(4)}},
		{"sigmoid", func(in ...*V) *V { return Sigmoid(in[0]) }, []*tensor.RawTensor{randn(4)}},
		{"abs", func(in ...*V) *V { return Abs(in[0]) }, []*tensor.RawTensor{raw(tensor.Shape{4}, -1.5, -0.3, 0.4, 2)}},
		{"scalar_sub", func(in ...*V) *V { return ScalarSub(3, in[0]) }, []*tensor.RawTensor{randn(3)}},
		{"scalar_div", func(in ...*V) *V { return ScalarDiv(2, in[0]) }, []*tensor.RawTensor{randPositive(3)}},
		{"div_scalar", func(in ...*V) *V { return DivScalar(in[0], 4) }, []*tensor.RawTensor{randn(3)}},
		{
			"max",
			func(in ...*V) *V { return Max(in[0], in[1]) },
			[]*tensor.RawTensor{raw(tensor.Shape{4}, 1, -2, 3, 0.5), raw(tensor.Shape{4}, 0, 2, 4, -1)},
		},
		{
			"min",
			func(in ...*V) *V { return Min(in[0], in[1]) },
			[]*tensor.RawTensor{raw(tensor.Shape{4}, 1, -2, 3, 0.5), raw(tensor.Shape{4}, 0, 2, 4, -1)},
		},
		{
			"select",
			func(in ...*V) *V { return Select(GreaterScalar(in[0], 0), Mul(in[0], in[1]), Exp(in[1])) },
			[]*tensor.RawTensor{raw(tensor.Shape{4}, 1, -2, 3, -0.5), randn(4)},
		},
		{
			"composition",
			func(in ...*V) *V { return Tanh(Add(Mul(Sin(in[0]), in[1]), Sigmoid(in[1]))) },
			[]*tensor.RawTensor{randn(2, 2), randn(2, 2)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checkGradients(t, tc.f, tc.inputs...)
		})
	}
}

func TestGradientsMatMul(t *testing.T) {
	t.Run("matmul", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return MatMul(in[0], in[1]) }, randn(2, 3), randn(3, 4))
	})
	t.Run("matmul_tn", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return MatMulTN(in[0], in[1]) }, randn(3, 2), randn(3, 4))
	})
	t.Run("matmul_nt", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return MatMulNT(in[0], in[1]) }, randn(2, 3), randn(4, 3))
	})
	t.Run("transpose", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return Transpose(in[0]) }, randn(2, 3))
	})
	t.Run("variants_agree", func(t *testing.T) {
		a := autograd.Input(randn(2, 3), backend)
		b := autograd.Input(randn(3, 4), backend)
		want := MatMul(a, b).Value().Float64s()
		assert.InDeltaSlice(t, want, MatMulTN(Transpose(a), b).Value().Float64s(), 1e-12)
		assert.InDeltaSlice(t, want, MatMulNT(a, Transpose(b)).Value().Float64s(), 1e-12)
	})
}

func TestGradientsShape(t *testing.T) {
	t.Run("reshape", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return Reshape(in[0], tensor.Shape{3, 2}) }, randn(2, 3))
	})
	t.Run("reorder", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return Reorder(in[0], 2, 0, 1) }, randn(2, 3, 4))
	})
	t.Run("tile", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return Tile(in[0], 2, 1, 3) }, randn(2, 3, 2))
	})
	t.Run("tile_as", func(t *testing.T) {
		ref := autograd.Input(randn(3, 4), backend)
		checkGradients(t, func(in ...*V) *V { return TileAs(in[0], ref) }, randn(3))
	})
	t.Run("expand_as", func(t *testing.T) {
		ref := autograd.Input(randn(3, 4), backend)
		checkGradients(t, func(in ...*V) *V { return ExpandAs(in[0], ref) }, randn(4))
	})
	t.Run("sum_as", func(t *testing.T) {
		ref := autograd.Input(randn(3, 1), backend)
		checkGradients(t, func(in ...*V) *V { return SumAs(in[0], ref) }, randn(3, 4))
	})
}

func TestGradientsReduce(t *testing.T) {
	t.Run("sum_all", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return Sum(in[0]) }, randn(2, 3))
	})
	t.Run("sum_axes", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return Sum(in[0], 0, 2) }, randn(2, 3, 2))
	})
	t.Run("mean_all", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return Mean(in[0]) }, randn(2, 3))
	})
	t.Run("mean_axis", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return Mean(in[0], -1) }, randn(2, 3))
	})
}

func TestMeanGradientIsScaled(t *testing.T) {
	x := autograd.Parameter(randn(2, 4), backend)
	m := Mean(x)
	assert.Equal(t, tensor.Shape{1, 1}, m.Shape())
	if assert.NoError(t, autograd.BackwardOnes(m)) {
		for _, g := range gradOf(t, x) {
			assert.InDelta(t, 0.125, g, 1e-12)
		}
	}
}

func TestGradientsWindow(t *testing.T) {
	win := tensor.Window{WX: 2, WY: 2, SX: 1, SY: 1, PX: 1, PY: 0}

	t.Run("unwrap", func(t *testing.T) {
		checkGradients(t, func(in ...*V) *V { return Unwrap(in[0], win) }, randn(1, 2, 3, 3))
	})
	t.Run("wrap", func(t *testing.T) {
		// 3x3 input with this window yields 2x4 outputs: L = 8, K = 2·2·2.
		checkGradients(t, func(in ...*V) *V { return Wrap(in[0], 3, 3, win) }, randn(1, 8, 8))
	})
	t.Run("conv2d", func(t *testing.T) {
		strided := tensor.Window{WX: 2, WY: 2, SX: 2, SY: 1, PX: 1, PY: 1}
		checkGradients(t, func(in ...*V) *V { return Conv2D(in[0], in[1], strided) }, randn(2, 2, 3, 4), randn(3, 2, 2, 2))
	})
}

// naiveConv2D is a direct cross-correlation with zero padding.
func naiveConv2D(in, w []float64, inShape, wShape tensor.Shape, win tensor.Window) []float64 {
	n, c, h, wd := inShape[0], inShape[1], inShape[2], inShape[3]
	f := wShape[0]
	oh, ow := win.OutputSize(h, wd)
	out := make([]float64, n*f*oh*ow)
	for b := range n {
		for fi := range f {
			for oy := range oh {
				for ox := range ow {
					var acc float64
					for ci := range c {
						for ky := range win.WY {
							for kx := range win.WX {
								y := oy*win.SY - win.PY + ky
								x := ox*win.SX - win.PX + kx
								if y < 0 || y >= h || x < 0 || x >= wd {
									continue
								}
								acc += in[((b*c+ci)*h+y)*wd+x] * w[((fi*c+ci)*win.WY+ky)*win.WX+kx]
							}
						}
					}
					out[((b*f+fi)*oh+oy)*ow+ox] = acc
				}
			}
		}
	}
	return out
}

func TestConv2DForward(t *testing.T) {
	win := tensor.Window{WX: 3, WY: 2, SX: 1, SY: 2, PX: 1, PY: 1}
	in := autograd.Input(randn(2, 3, 5, 4), backend)
	w := autograd.Input(randn(4, 3, 2, 3), backend)

	out := Conv2D(in, w, win)
	oh, ow := win.OutputSize(5, 4)
	assert.Equal(t, tensor.Shape{2, 4, oh, ow}, out.Shape())

	want := naiveConv2D(in.Value().Float64s(), w.Value().Float64s(), in.Shape(), w.Shape(), win)
	assert.InDeltaSlice(t, want, out.Value().Float64s(), 1e-9)
}

func TestConv2DInvalidWeights(t *testing.T) {
	win := tensor.Window{WX: 2, WY: 2, SX: 1, SY: 1}
	in := autograd.Input(randn(1, 3, 4, 4), backend)

	for name, w := range map[string]*V{
		"channels": autograd.Input(randn(2, 2, 2, 2), backend),
		"window":   autograd.Input(randn(2, 3, 3, 3), backend),
		"rank":     autograd.Input(randn(2, 12), backend),
	} {
		err := autograd.Try(func() { Conv2D(in, w, win) })
		assert.ErrorIs(t, err, autograd.ErrShapeMismatch, name)
	}

	// A 4x4 window with stride 2 over a 3x3 plane has no valid position.
	large := tensor.Window{WX: 4, WY: 4, SX: 2, SY: 2}
	small := autograd.Input(randn(1, 1, 3, 3), backend)
	err := autograd.Try(func() { Conv2D(small, autograd.Input(randn(1, 1, 4, 4), backend), large) })
	assert.ErrorIs(t, err, autograd.ErrShapeMismatch)
	err = autograd.Try(func() { Unwrap(small, large) })
	assert.ErrorIs(t, err, autograd.ErrShapeMismatch)
}
