package cpu

import (
	"golang.org/x/exp/constraints"

	"github.com/born-ml/autograd/internal/tensor"
)

// number covers the element types that support arithmetic comparisons.
type number interface {
	constraints.Float | ~int32
}

func checkSameDType(name string, ts ...*tensor.RawTensor) {
	for _, t := range ts[1:] {
		if t.DType() != ts[0].DType() {
			panic(tensor.UnsupportedDTypef("%s: dtype mismatch %s vs %s", name, ts[0].DType(), t.DType()))
		}
	}
}

// broadcastBinary applies f element-wise over the broadcast of a and b into out.
func broadcastBinary[T, R any](out []R, a, b []T, outShape, aShape, bShape tensor.Shape, f func(x, y T) R) {
	if aShape.Equal(bShape) {
		for i := range out {
			out[i] = f(a[i], b[i])
		}
		return
	}
	aIdx := broadcastIndexer(aShape, outShape)
	bIdx := broadcastIndexer(bShape, outShape)
	for i := range out {
		out[i] = f(a[aIdx(i)], b[bIdx(i)])
	}
}

func mapSlice[T, R any](out []R, in []T, f func(T) R) {
	for i, v := range in {
		out[i] = f(v)
	}
}

// binaryFloat dispatches a broadcasting float kernel on the operands' dtype.
func binaryFloat(name string, a, b *tensor.RawTensor, f32 func(x, y float32) float32, f64 func(x, y float64) float64) *tensor.RawTensor {
	checkSameDType(name, a, b)
	outShape := broadcastShape(name, a.Shape(), b.Shape())
	out := tensor.MustNewRaw(outShape, a.DType())
	switch a.DType() {
	case tensor.Float32:
		broadcastBinary(out.AsFloat32(), a.AsFloat32(), b.AsFloat32(), outShape, a.Shape(), b.Shape(), f32)
	case tensor.Float64:
		broadcastBinary(out.AsFloat64(), a.AsFloat64(), b.AsFloat64(), outShape, a.Shape(), b.Shape(), f64)
	default:
		panic(tensor.UnsupportedDTypef("%s: %s", name, a.DType()))
	}
	return out
}

// unaryFloat dispatches an element-wise float kernel on x's dtype.
func unaryFloat(name string, x *tensor.RawTensor, f32 func(float32) float32, f64 func(float64) float64) *tensor.RawTensor {
	out := tensor.MustNewRaw(x.Shape(), x.DType())
	switch x.DType() {
	case tensor.Float32:
		mapSlice(out.AsFloat32(), x.AsFloat32(), f32)
	case tensor.Float64:
		mapSlice(out.AsFloat64(), x.AsFloat64(), f64)
	default:
		panic(tensor.UnsupportedDTypef("%s: %s", name, x.DType()))
	}
	return out
}

// compare dispatches an element-wise comparison producing a Bool tensor.
func compare(name string, a, b *tensor.RawTensor, f32 func(x, y float32) bool, f64 func(x, y float64) bool, i32 func(x, y int32) bool) *tensor.RawTensor {
	checkSameDType(name, a, b)
	outShape := broadcastShape(name, a.Shape(), b.Shape())
	out := tensor.MustNewRaw(outShape, tensor.Bool)
	switch a.DType() {
	case tensor.Float32:
		broadcastBinary(out.AsBool(), a.AsFloat32(), b.AsFloat32(), outShape, a.Shape(), b.Shape(), f32)
	case tensor.Float64:
		broadcastBinary(out.AsBool(), a.AsFloat64(), b.AsFloat64(), outShape, a.Shape(), b.Shape(), f64)
	case tensor.Int32:
		broadcastBinary(out.AsBool(), a.AsInt32(), b.AsInt32(), outShape, a.Shape(), b.Shape(), i32)
	default:
		panic(tensor.UnsupportedDTypef("%s: %s", name, a.DType()))
	}
	return out
}

func add[T constraints.Float](x, y T) T { return x + y }
func sub[T constraints.Float](x, y T) T { return x - y }
func mul[T constraints.Float](x, y T) T { return x * y }
func div[T constraints.Float](x, y T) T { return x / y }

func maximum[T constraints.Float](x, y T) T { return max(x, y) }
func minimum[T constraints.Float](x, y T) T { return min(x, y) }

func greater[T number](x, y T) bool      { return x > y }
func less[T number](x, y T) bool         { return x < y }
func greaterEqual[T number](x, y T) bool { return x >= y }
func lessEqual[T number](x, y T) bool    { return x <= y }

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryFloat("add", a, b, add[float32], add[float64])
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryFloat("sub", a, b, sub[float32], sub[float64])
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryFloat("mul", a, b, mul[float32], mul[float64])
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryFloat("div", a, b, div[float32], div[float64])
}

// Maximum returns the element-wise maximum.
func (cpu *CPUBackend) Maximum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryFloat("maximum", a, b, maximum[float32], maximum[float64])
}

// Minimum returns the element-wise minimum.
func (cpu *CPUBackend) Minimum(a, b *tensor.RawTensor) *tensor.RawTensor {
	return binaryFloat("minimum", a, b, minimum[float32], minimum[float64])
}

// Greater returns a > b.
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	return compare("greater", a, b, greater[float32], greater[float64], greater[int32])
}

// Less returns a < b.
func (cpu *CPUBackend) Less(a, b *tensor.RawTensor) *tensor.RawTensor {
	return compare("less", a, b, less[float32], less[float64], less[int32])
}

// GreaterEqual returns a >= b.
func (cpu *CPUBackend) GreaterEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return compare("greater_equal", a, b, greaterEqual[float32], greaterEqual[float64], greaterEqual[int32])
}

// LessEqual returns a <= b.
func (cpu *CPUBackend) LessEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return compare("less_equal", a, b, lessEqual[float32], lessEqual[float64], lessEqual[int32])
}

// Not returns the logical negation of a Bool tensor.
func (cpu *CPUBackend) Not(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Bool {
		panic(tensor.UnsupportedDTypef("not: %s", x.DType()))
	}
	out := tensor.MustNewRaw(x.Shape(), tensor.Bool)
	mapSlice(out.AsBool(), x.AsBool(), func(v bool) bool { return !v })
	return out
}

// Where selects a where cond is true and b elsewhere, broadcasting all three operands.
func (cpu *CPUBackend) Where(cond, a, b *tensor.RawTensor) *tensor.RawTensor {
	if cond.DType() != tensor.Bool {
		panic(tensor.UnsupportedDTypef("where: condition dtype %s", cond.DType()))
	}
	checkSameDType("where", a, b)
	outShape := broadcastShape("where", cond.Shape(), a.Shape(), b.Shape())
	out := tensor.MustNewRaw(outShape, a.DType())
	cIdx := broadcastIndexer(cond.Shape(), outShape)
	aIdx := broadcastIndexer(a.Shape(), outShape)
	bIdx := broadcastIndexer(b.Shape(), outShape)
	c := cond.AsBool()
	switch a.DType() {
	case tensor.Float32:
		where(out.AsFloat32(), c, a.AsFloat32(), b.AsFloat32(), cIdx, aIdx, bIdx)
	case tensor.Float64:
		where(out.AsFloat64(), c, a.AsFloat64(), b.AsFloat64(), cIdx, aIdx, bIdx)
	case tensor.Int32:
		where(out.AsInt32(), c, a.AsInt32(), b.AsInt32(), cIdx, aIdx, bIdx)
	case tensor.Bool:
		where(out.AsBool(), c, a.AsBool(), b.AsBool(), cIdx, aIdx, bIdx)
	}
	return out
}

func where[T any](out []T, cond []bool, a, b []T, cIdx, aIdx, bIdx func(int) int) {
	for i := range out {
		if cond[cIdx(i)] {
			out[i] = a[aIdx(i)]
		} else {
			out[i] = b[bIdx(i)]
		}
	}
}

// Cast converts x to dtype. Casting to the same dtype returns a copy.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}
	out, err := tensor.FromFloat64s(x.Float64s(), x.Shape(), dtype)
	if err != nil {
		panic(err)
	}
	return out
}
