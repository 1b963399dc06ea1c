package ops

import (
	"github.com/born-ml/autograd/internal/autograd"
)

// SumOp sums a Variable over a set of axes, keeping them with size 1.
//
// Backward: grad is tiled back up to the input shape.
type SumOp struct{}

// Name returns "sum".
func (SumOp) Name() string { return "sum" }

// Backward broadcasts grad over the reduced axes.
func (SumOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(tileBack(grad, inputs[0]))
}

// Sum sums a over axes, keeping each reduced axis with size 1. No axes sums everything.
func Sum(a *autograd.Variable, axes ...int) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Sum(a.Value(), axes...), vars(a), SumOp{})
}

// MeanOp averages a Variable over a set of axes, keeping them with size 1.
//
// Backward: grad is tiled back up to the input shape and divided by the
// number of elements averaged into each output.
type MeanOp struct{}

// Name returns "mean".
func (MeanOp) Name() string { return "mean" }

// Backward broadcasts grad / count over the reduced axes.
func (MeanOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	a := inputs[0]
	count := a.Shape().NumElements() / grad.Shape().NumElements()
	inputs[0].AddGrad(MulScalar(tileBack(grad, a), 1/float64(count)))
}

// Mean averages a over axes, keeping each reduced axis with size 1. No axes averages everything.
func Mean(a *autograd.Variable, axes ...int) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Mean(a.Value(), axes...), vars(a), MeanOp{})
}

// tileBack tiles a reduced gradient up to the shape of the reduction input.
func tileBack(grad, input *autograd.Variable) *autograd.Variable {
	shape, reduced := input.Shape(), grad.Shape()
	reps := make([]int, len(shape))
	for i := range shape {
		reps[i] = shape[i] / reduced[i]
	}
	return Tile(grad, reps...)
}
