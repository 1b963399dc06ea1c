package ops

import (
	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// ReshapeOp reinterprets the shape of a Variable.
type ReshapeOp struct{}

// Name returns "reshape".
func (ReshapeOp) Name() string { return "reshape" }

// Backward reshapes grad back to the input shape.
func (ReshapeOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Reshape(grad, inputs[0].Shape()))
}

// Reshape returns a with a new shape holding the same number of elements.
func Reshape(a *autograd.Variable, shape tensor.Shape) *autograd.Variable {
	if a.Shape().Equal(shape) {
		return a
	}
	return autograd.NewComposite(a.Backend().Reshape(a.Value(), shape), vars(a), ReshapeOp{})
}

// Flat returns a reshaped to one dimension.
func Flat(a *autograd.Variable) *autograd.Variable {
	return Reshape(a, tensor.Shape{a.Shape().NumElements()})
}

// ReorderOp permutes the axes of a Variable: output axis i is input axis Perm[i].
type ReorderOp struct {
	Perm []int
}

// Name returns "reorder".
func (ReorderOp) Name() string { return "reorder" }

// Backward reorders grad by the inverse permutation.
func (op ReorderOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Reorder(grad, tensor.InversePermutation(op.Perm)...))
}

// Reorder permutes the axes of a.
func Reorder(a *autograd.Variable, perm ...int) *autograd.Variable {
	out := a.Backend().Reorder(a.Value(), perm...)
	return autograd.NewComposite(out, vars(a), ReorderOp{Perm: append([]int(nil), perm...)})
}
