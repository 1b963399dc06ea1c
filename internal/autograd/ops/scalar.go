package ops

import "github.com/born-ml/autograd/internal/autograd"

// Scalar operands are broadcast into a constant of the Variable's shape and
// dtype; the Variable ⊕ Variable form supplies the gradient rule.

// AddScalar returns a + s.
func AddScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return Add(a, Constant(a, s))
}

// SubScalar returns a - s.
func SubScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return Sub(a, Constant(a, s))
}

// ScalarSub returns s - a.
func ScalarSub(s float64, a *autograd.Variable) *autograd.Variable {
	return Sub(Constant(a, s), a)
}

// MulScalar returns a * s.
func MulScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return Mul(a, Constant(a, s))
}

// DivScalar returns a / s.
func DivScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return Div(a, Constant(a, s))
}

// ScalarDiv returns s / a.
func ScalarDiv(s float64, a *autograd.Variable) *autograd.Variable {
	return Div(Constant(a, s), a)
}

// MaxScalar returns max(a, s) element-wise.
func MaxScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return Max(a, Constant(a, s))
}

// MinScalar returns min(a, s) element-wise.
func MinScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return Min(a, Constant(a, s))
}

// GreaterScalar returns a > s.
func GreaterScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return Greater(a, Constant(a, s))
}

// LessScalar returns a < s.
func LessScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return Less(a, Constant(a, s))
}

// GreaterEqualScalar returns a >= s.
func GreaterEqualScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return GreaterEqual(a, Constant(a, s))
}

// LessEqualScalar returns a <= s.
func LessEqualScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return LessEqual(a, Constant(a, s))
}
