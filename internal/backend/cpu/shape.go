package cpu

import (
	"github.com/born-ml/autograd/internal/tensor"
)

// gather fills out[i] = in[index(i)] for every output element.
func gather[T any](out, in []T, index func(int) int) {
	for i := range out {
		out[i] = in[index(i)]
	}
}

// gatherInto dispatches gather on the dtype shared by out and x.
func gatherInto(out, x *tensor.RawTensor, index func(int) int) {
	switch x.DType() {
	case tensor.Float32:
		gather(out.AsFloat32(), x.AsFloat32(), index)
	case tensor.Float64:
		gather(out.AsFloat64(), x.AsFloat64(), index)
	case tensor.Int32:
		gather(out.AsInt32(), x.AsInt32(), index)
	case tensor.Bool:
		gather(out.AsBool(), x.AsBool(), index)
	default:
		panic(tensor.UnsupportedDTypef("gather: %s", x.DType()))
	}
}

// Reshape returns a copy of x with a new shape holding the same number of elements.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if err := shape.Validate(); err != nil {
		panic(tensor.ShapeMismatchf("reshape: %v", err))
	}
	if shape.NumElements() != x.NumElements() {
		panic(tensor.ShapeMismatchf("reshape: cannot reshape %v into %v", x.Shape(), shape))
	}
	out := tensor.MustNewRaw(shape, x.DType())
	copy(out.Data(), x.Data())
	return out
}

// Transpose swaps the two axes of a 2-D tensor.
func (cpu *CPUBackend) Transpose(x *tensor.RawTensor) *tensor.RawTensor {
	if len(x.Shape()) != 2 {
		panic(tensor.ShapeMismatchf("transpose: requires 2D tensor, got %v", x.Shape()))
	}
	return cpu.Reorder(x, 1, 0)
}

// Reorder permutes the axes of x: output axis i is input axis perm[i].
func (cpu *CPUBackend) Reorder(x *tensor.RawTensor, perm ...int) *tensor.RawTensor {
	shape := x.Shape()
	if err := shape.ValidatePermutation(perm); err != nil {
		panic(tensor.ShapeMismatchf("reorder: %v", err))
	}
	outShape := shape.Permute(perm)
	out := tensor.MustNewRaw(outShape, x.DType())

	inStrides := shape.ComputeStrides()
	permStrides := make([]int, len(perm))
	for i, axis := range perm {
		permStrides[i] = inStrides[axis]
	}
	outStrides := outShape.ComputeStrides()
	gatherInto(out, x, func(i int) int { return flatIndex(i, outStrides, permStrides) })
	return out
}

// Tile replicates x reps[i] times along each axis i. len(reps) must equal the rank of x.
func (cpu *CPUBackend) Tile(x *tensor.RawTensor, reps []int) *tensor.RawTensor {
	shape := x.Shape()
	if len(reps) != len(shape) {
		panic(tensor.ShapeMismatchf("tile: %d repetitions for shape %v", len(reps), shape))
	}
	outShape := make(tensor.Shape, len(shape))
	for i, r := range reps {
		if r <= 0 {
			panic(tensor.ShapeMismatchf("tile: invalid repetitions %v", reps))
		}
		outShape[i] = shape[i] * r
	}
	out := tensor.MustNewRaw(outShape, x.DType())

	inStrides := shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	gatherInto(out, x, func(i int) int {
		idx := 0
		for axis, stride := range outStrides {
			coord := i / stride
			i %= stride
			idx += (coord % shape[axis]) * inStrides[axis]
		}
		return idx
	})
	return out
}
