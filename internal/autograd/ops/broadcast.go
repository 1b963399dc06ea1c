package ops

import (
	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// TileOp replicates a Variable Reps[i] times along each axis i.
//
// Backward: every replicated block of grad is summed back onto the input.
type TileOp struct {
	Reps []int
}

// Name returns "tile".
func (TileOp) Name() string { return "tile" }

// Backward sums grad over the replicated blocks.
func (op TileOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	a := inputs[0]
	shape := a.Shape()

	// View grad as [r0, s0, r1, s1, ...] and sum the block axes.
	split := make(tensor.Shape, 0, 2*len(shape))
	axes := make([]int, 0, len(shape))
	for i, r := range op.Reps {
		if r > 1 {
			axes = append(axes, len(split))
			split = append(split, r)
		}
		split = append(split, shape[i])
	}
	if len(axes) == 0 {
		a.AddGrad(grad)
		return
	}
	a.AddGrad(Reshape(Sum(Reshape(grad, split), axes...), shape))
}

// Tile replicates a reps[i] times along each axis i. len(reps) must equal the rank of a.
func Tile(a *autograd.Variable, reps ...int) *autograd.Variable {
	out := a.Backend().Tile(a.Value(), reps)
	return autograd.NewComposite(out, vars(a), TileOp{Reps: append([]int(nil), reps...)})
}

// TileAs broadcasts a to the shape of ref. Missing axes of a are appended as
// trailing axes of size 1; every axis must then be 1 or match ref.
func TileAs(a, ref *autograd.Variable) *autograd.Variable {
	target := ref.Shape()
	if len(a.Shape()) > len(target) {
		panic(shapeMismatchf("tile_as: %v has more axes than %v", a.Shape(), target))
	}
	return tileTo("tile_as", a, a.Shape().PadTrailing(len(target)), target)
}

// ExpandAs broadcasts a to the shape of ref with NumPy alignment: missing axes
// of a are prepended with size 1.
func ExpandAs(a, ref *autograd.Variable) *autograd.Variable {
	target := ref.Shape()
	if len(a.Shape()) > len(target) {
		panic(shapeMismatchf("expand_as: %v has more axes than %v", a.Shape(), target))
	}
	return tileTo("expand_as", a, a.Shape().PadLeading(len(target)), target)
}

func tileTo(name string, a *autograd.Variable, padded, target tensor.Shape) *autograd.Variable {
	reps := make([]int, len(target))
	for i := range target {
		switch padded[i] {
		case target[i]:
			reps[i] = 1
		case 1:
			reps[i] = target[i]
		default:
			panic(shapeMismatchf("%s: cannot broadcast %v to %v", name, a.Shape(), target))
		}
	}
	return Tile(Reshape(a, padded), reps...)
}

// SumAs reduces a to the shape of ref: the adjoint of TileAs. Axes where ref
// (padded with trailing 1s) has size 1 are summed.
func SumAs(a, ref *autograd.Variable) *autograd.Variable {
	shape, target := a.Shape(), ref.Shape()
	if len(target) > len(shape) {
		panic(shapeMismatchf("sum_as: %v has more axes than %v", target, shape))
	}
	padded := target.PadTrailing(len(shape))
	var axes []int
	for i := range shape {
		switch {
		case padded[i] == shape[i]:
		case padded[i] == 1:
			axes = append(axes, i)
		default:
			panic(shapeMismatchf("sum_as: cannot reduce %v to %v", shape, target))
		}
	}
	out := a
	if len(axes) > 0 {
		out = Sum(a, axes...)
	}
	return Reshape(out, target)
}
