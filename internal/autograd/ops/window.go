package ops

import (
	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// UnwrapOp extracts sliding windows of an [N, C, H, W] Variable into
// [N, C·WY·WX, OH·OW] columns.
//
// Backward: grad is wrapped back with the same window (Wrap is the adjoint of Unwrap).
type UnwrapOp struct {
	Win tensor.Window
}

// Name returns "unwrap".
func (UnwrapOp) Name() string { return "unwrap" }

// Backward wraps grad into the input's spatial shape.
func (op UnwrapOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	s := inputs[0].Shape()
	inputs[0].AddGrad(Wrap(grad, s[2], s[3], op.Win))
}

// Unwrap extracts the sliding windows of a.
func Unwrap(a *autograd.Variable, win tensor.Window) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Unwrap(a.Value(), win), vars(a), UnwrapOp{Win: win})
}

// WrapOp scatters [N, C·WY·WX, OH·OW] columns into an [N, C, H, W] Variable,
// summing overlapping windows.
//
// Backward: grad is unwrapped with the same window.
type WrapOp struct {
	H, W int
	Win  tensor.Window
}

// Name returns "wrap".
func (WrapOp) Name() string { return "wrap" }

// Backward unwraps grad back into columns.
func (op WrapOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Unwrap(grad, op.Win))
}

// Wrap scatters the columns of a into an h x w image.
func Wrap(a *autograd.Variable, h, w int, win tensor.Window) *autograd.Variable {
	out := a.Backend().Wrap(a.Value(), h, w, win)
	return autograd.NewComposite(out, vars(a), WrapOp{H: h, W: w, Win: win})
}

// Conv2DOp is a 2-D convolution (cross-correlation) computed as
// unwrap → matmul → reshape.
//
// Shapes:
//   - input:   [N, C, H, W]
//   - weights: [F, C, WY, WX]
//   - output:  [N, F, OH, OW]
//
// Backward, with cols = unwrap(input) laid out as [C·WY·WX, N·OH·OW] and
// grad laid out as [F, N·OH·OW]:
//   - grad_weights = grad · colsᵗ
//   - grad_input   = wrap(weightsᵗ · grad)
type Conv2DOp struct {
	Win tensor.Window
}

// Name returns "conv2d".
func (Conv2DOp) Name() string { return "conv2d" }

// Backward computes the input and weight gradients through the adjoints of
// the forward decomposition.
func (op Conv2DOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	input, weights := inputs[0], inputs[1]
	g := newConvGeometry(input.Shape(), weights.Shape(), op.Win)

	// [N, F, OH, OW] -> [F, N·L]
	gradMat := Reshape(Reorder(grad, 1, 0, 2, 3), tensor.Shape{g.f, g.n * g.l})
	w2 := Reshape(weights, tensor.Shape{g.f, g.k})

	if weights.IsCalcGrad() {
		cols := Reshape(Reorder(Unwrap(input, op.Win), 1, 0, 2), tensor.Shape{g.k, g.n * g.l})
		weights.AddGrad(Reshape(MatMulNT(gradMat, cols), weights.Shape()))
	}
	if input.IsCalcGrad() {
		// [K, N·L] -> [N, K, L]
		dCols := Reorder(Reshape(MatMulTN(w2, gradMat), tensor.Shape{g.k, g.n, g.l}), 1, 0, 2)
		input.AddGrad(Wrap(dCols, g.h, g.w, op.Win))
	}
}

// convGeometry holds the dimensions of a convolution.
type convGeometry struct {
	n, c, h, w int // input
	f          int // filters
	k          int // C·WY·WX
	oh, ow, l  int // output positions, l = OH·OW
}

func newConvGeometry(in, weights tensor.Shape, win tensor.Window) convGeometry {
	if len(in) != 4 || len(weights) != 4 {
		panic(shapeMismatchf("conv2d: input %v and weights %v must be 4D", in, weights))
	}
	if in[1] != weights[1] || weights[2] != win.WY || weights[3] != win.WX {
		panic(shapeMismatchf("conv2d: weights %v incompatible with input %v and window %+v", weights, in, win))
	}
	oh, ow := win.OutputSize(in[2], in[3])
	if oh <= 0 || ow <= 0 {
		panic(shapeMismatchf("conv2d: window %+v does not fit a %dx%d plane", win, in[2], in[3]))
	}
	return convGeometry{
		n: in[0], c: in[1], h: in[2], w: in[3],
		f:  weights[0],
		k:  weights[1] * win.Area(),
		oh: oh, ow: ow, l: oh * ow,
	}
}

// Conv2D convolves input [N, C, H, W] with weights [F, C, WY, WX] using the
// window's strides and padding; the window size must match the weights.
func Conv2D(input, weights *autograd.Variable, win tensor.Window) *autograd.Variable {
	g := newConvGeometry(input.Shape(), weights.Shape(), win)
	b := input.Backend()

	cols := b.Unwrap(input.Value(), win)                                        // [N, K, L]
	colsMat := b.Reshape(b.Reorder(cols, 1, 0, 2), tensor.Shape{g.k, g.n * g.l}) // [K, N·L]
	w2 := b.Reshape(weights.Value(), tensor.Shape{g.f, g.k})                     // [F, K]
	out := b.MatMul(w2, colsMat)                                                 // [F, N·L]
	out = b.Reorder(b.Reshape(out, tensor.Shape{g.f, g.n, g.oh, g.ow}), 1, 0, 2, 3)

	return autograd.NewComposite(out, vars(input, weights), Conv2DOp{Win: win})
}
