// Package ops is the differentiable operator library.
//
// Each function computes its forward value with the operands' backend and
// returns a Variable whose Operation implements the local derivative:
//   - AddOp, SubOp: grad flows to both operands (negated for the subtrahend)
//   - MulOp: d(a*b)/da = b, d(a*b)/db = a
//   - DivOp: d(a/b)/da = 1/b, d(a/b)/db = -a/b²
//   - MatMulOp: d(A@B)/dA = grad@Bᵗ, d(A@B)/dB = Aᵗ@grad
//   - TileOp ↔ SumOp, ReshapeOp ↔ ReshapeOp, ReorderOp ↔ inverse ReorderOp,
//     UnwrapOp ↔ WrapOp: shape transforms paired with their adjoints
//
// Binary element-wise operators require operands of equal shape; broadcast
// explicitly with Tile, TileAs or ExpandAs. Shape errors panic at call time
// with an error wrapping autograd.ErrShapeMismatch; autograd.Try converts them
// to returned errors.
package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// vars builds an inputs slice.
func vars(in ...*autograd.Variable) []*autograd.Variable {
	return in
}

func shapeMismatchf(format string, args ...any) error {
	return errors.Wrapf(autograd.ErrShapeMismatch, format, args...)
}

// checkSameShape panics unless every operand has the shape of the first.
func checkSameShape(name string, operands ...*autograd.Variable) {
	for _, v := range operands[1:] {
		if !v.Shape().Equal(operands[0].Shape()) {
			panic(shapeMismatchf("%s: operand shapes %v and %v differ", name, operands[0].Shape(), v.Shape()))
		}
	}
}

// constant returns a non-tracking Variable of shape and dtype filled with value.
func constant(like *autograd.Variable, shape tensor.Shape, value float64) *autograd.Variable {
	b := like.Backend()
	return autograd.Input(b.Full(shape, value, like.DType()), b)
}

// Constant returns a non-tracking Variable with v's shape and dtype filled with value.
func Constant(v *autograd.Variable, value float64) *autograd.Variable {
	return constant(v, v.Shape(), value)
}

// ZerosLike returns a non-tracking Variable of zeros with v's shape and dtype.
func ZerosLike(v *autograd.Variable) *autograd.Variable {
	return Constant(v, 0)
}
