package cpu

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/autograd/internal/tensor"
)

// Sum sums x over the given axes, keeping each reduced axis with size 1.
// No axes sums every element.
//
// Example:
//
//	y := backend.Sum(x, 1)   // [2, 3, 4] -> [2, 1, 4]
//	z := backend.Sum(x)      // [2, 3, 4] -> [1, 1, 1]
func (cpu *CPUBackend) Sum(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	acc, outShape, _ := reduceSum("sum", x, axes)
	return fromAccumulator(acc, outShape, x.DType())
}

// Mean averages x over the given axes, keeping each reduced axis with size 1.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	acc, outShape, count := reduceSum("mean", x, axes)
	floats.Scale(1/float64(count), acc)
	return fromAccumulator(acc, outShape, x.DType())
}

// reduceSum accumulates x into a float64 buffer shaped like the reduced output.
// It returns the buffer, the output shape and the number of elements folded into each output.
func reduceSum(name string, x *tensor.RawTensor, axes []int) ([]float64, tensor.Shape, int) {
	if !x.DType().IsFloat() {
		panic(tensor.UnsupportedDTypef("%s: %s", name, x.DType()))
	}
	shape := x.Shape()
	mask, err := shape.NormalizeAxes(axes)
	if err != nil {
		panic(tensor.ShapeMismatchf("%s: %v", name, err))
	}

	outShape := shape.Clone()
	count := 1
	for i, reduced := range mask {
		if reduced {
			count *= shape[i]
			outShape[i] = 1
		}
	}

	values := x.Float64s()
	acc := make([]float64, outShape.NumElements())
	if len(acc) == 1 {
		acc[0] = floats.Sum(values)
		return acc, outShape, count
	}

	outIdx := broadcastIndexer(outShape, shape)
	for i, v := range values {
		acc[outIdx(i)] += v
	}
	return acc, outShape, count
}

func fromAccumulator(acc []float64, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	out, err := tensor.FromFloat64s(acc, shape, dtype)
	if err != nil {
		panic(err)
	}
	return out
}
