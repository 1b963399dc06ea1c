package tensor

// Backend defines the numeric API the autograd engine consumes.
// Backends own all kernels; the engine only orchestrates calls.
//
// Contract violations (incompatible shapes, unsupported dtypes) are reported
// by panicking with an error wrapping ErrShapeMismatch or ErrUnsupportedDType.
//
// Implementations:
//   - CPU: eager pure Go kernels (internal/backend/cpu)
type Backend interface {
	// Element-wise binary operations with NumPy broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor
	Maximum(a, b *RawTensor) *RawTensor
	Minimum(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar).
	AddScalar(x *RawTensor, s float64) *RawTensor
	MulScalar(x *RawTensor, s float64) *RawTensor

	// Math operations (element-wise).
	Neg(x *RawTensor) *RawTensor
	Exp(x *RawTensor) *RawTensor
	Log(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor
	Abs(x *RawTensor) *RawTensor

	// Comparison operations (element-wise, return bool tensor).
	Greater(a, b *RawTensor) *RawTensor
	Less(a, b *RawTensor) *RawTensor
	GreaterEqual(a, b *RawTensor) *RawTensor
	LessEqual(a, b *RawTensor) *RawTensor
	Not(x *RawTensor) *RawTensor

	// Where selects a where cond is true and b elsewhere.
	Where(cond, a, b *RawTensor) *RawTensor
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Matrix operations on 2-D operands.
	MatMul(a, b *RawTensor) *RawTensor   // a·b
	MatMulTN(a, b *RawTensor) *RawTensor // aᵗ·b
	MatMulNT(a, b *RawTensor) *RawTensor // a·bᵗ

	// Reductions keep reduced axes with size 1. No axes reduces everything.
	Sum(x *RawTensor, axes ...int) *RawTensor
	Mean(x *RawTensor, axes ...int) *RawTensor

	// Shape operations.
	Tile(x *RawTensor, reps []int) *RawTensor
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Transpose(x *RawTensor) *RawTensor
	Reorder(x *RawTensor, perm ...int) *RawTensor

	// Unwrap extracts sliding windows of an [N, C, H, W] tensor into
	// [N, C·WY·WX, OH·OW] columns. Wrap is its adjoint: it scatters columns
	// back into an [N, C, h, w] tensor, summing overlapping windows.
	Unwrap(x *RawTensor, win Window) *RawTensor
	Wrap(cols *RawTensor, h, w int, win Window) *RawTensor

	// Creation.
	Full(shape Shape, value float64, dtype DataType) *RawTensor
	RandUniform(shape Shape, lo, hi float64, dtype DataType) *RawTensor
	RandNormal(shape Shape, mean, std float64, dtype DataType) *RawTensor

	// Eval forces materialization of a lazily computed value.
	Eval(x *RawTensor) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
