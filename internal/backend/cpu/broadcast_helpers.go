package cpu

import (
	"github.com/born-ml/autograd/internal/tensor"
)

// broadcastStrides computes strides for reading a tensor of inShape while
// iterating over outShape. Axes missing from inShape (leading) or of size 1
// get stride 0.
func broadcastStrides(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)
	offset := outDim - len(inShape)
	origStrides := inShape.ComputeStrides()

	for i := range outDim {
		inIdx := i - offset
		if inIdx < 0 || inShape[inIdx] == 1 {
			continue
		}
		strides[i] = origStrides[inIdx]
	}
	return strides
}

// flatIndex maps a flat index over the output shape to a flat index in the
// source, given the output strides and source strides aligned to the output axes.
func flatIndex(outIdx int, outStrides, inStrides []int) int {
	idx := 0
	for i, stride := range outStrides {
		coord := outIdx / stride
		outIdx %= stride
		idx += coord * inStrides[i]
	}
	return idx
}

// broadcastShape returns the broadcast result shape or panics with ErrShapeMismatch.
func broadcastShape(name string, shapes ...tensor.Shape) tensor.Shape {
	out := shapes[0]
	for _, s := range shapes[1:] {
		var err error
		out, _, err = tensor.BroadcastShapes(out, s)
		if err != nil {
			panic(tensor.ShapeMismatchf("%s: %v", name, err))
		}
	}
	return out
}

// broadcastIndexer returns a function mapping output flat indices to the flat
// index of an operand of shape in. Same shapes map to the identity.
func broadcastIndexer(in, out tensor.Shape) func(int) int {
	if in.Equal(out) {
		return func(i int) int { return i }
	}
	outStrides := out.ComputeStrides()
	inStrides := broadcastStrides(in, out)
	return func(i int) int { return flatIndex(i, outStrides, inStrides) }
}
