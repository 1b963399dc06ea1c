package ops

import (
	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// Comparisons are not differentiable: they return Bool leaves that never
// track gradients and exist to build masks for Select, Max and Min.

func comparison(name string, a, b *autograd.Variable, f func(x, y *tensor.RawTensor) *tensor.RawTensor) *autograd.Variable {
	checkSameShape(name, a, b)
	return autograd.Input(f(a.Value(), b.Value()), a.Backend())
}

// Greater returns a > b.
func Greater(a, b *autograd.Variable) *autograd.Variable {
	return comparison("greater", a, b, a.Backend().Greater)
}

// Less returns a < b.
func Less(a, b *autograd.Variable) *autograd.Variable {
	return comparison("less", a, b, a.Backend().Less)
}

// GreaterEqual returns a >= b.
func GreaterEqual(a, b *autograd.Variable) *autograd.Variable {
	return comparison("greater_equal", a, b, a.Backend().GreaterEqual)
}

// LessEqual returns a <= b.
func LessEqual(a, b *autograd.Variable) *autograd.Variable {
	return comparison("less_equal", a, b, a.Backend().LessEqual)
}

// Not returns the logical negation of a Bool Variable.
func Not(a *autograd.Variable) *autograd.Variable {
	return autograd.Input(a.Backend().Not(a.Value()), a.Backend())
}

// SelectOp picks a where the condition holds and b elsewhere.
//
// Backward: grad_a = grad masked by cond, grad_b = grad masked by !cond.
// The condition receives no gradient.
type SelectOp struct{}

// Name returns "select".
func (SelectOp) Name() string { return "select" }

// Backward routes grad to the operand each element was taken from.
func (SelectOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	cond, a, b := inputs[0], inputs[1], inputs[2]
	zeros := ZerosLike(grad)
	a.AddGrad(Select(cond, grad, zeros))
	b.AddGrad(Select(cond, zeros, grad))
}

// Select returns cond ? a : b element-wise. cond must be a Bool Variable.
func Select(cond, a, b *autograd.Variable) *autograd.Variable {
	checkSameShape("select", cond, a, b)
	return autograd.NewComposite(a.Backend().Where(cond.Value(), a.Value(), b.Value()), vars(cond, a, b), SelectOp{})
}

// MaxOp is the element-wise maximum.
//
// Backward: mask = a > b; grad_a = grad where mask, grad_b = grad where !mask.
type MaxOp struct{}

// Name returns "max".
func (MaxOp) Name() string { return "max" }

// Backward routes grad to the larger operand; ties go to b.
func (MaxOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	routeByMask(inputs[0], inputs[1], Greater(inputs[0], inputs[1]), grad)
}

// Max returns max(a, b) element-wise.
func Max(a, b *autograd.Variable) *autograd.Variable {
	checkSameShape("max", a, b)
	return autograd.NewComposite(a.Backend().Maximum(a.Value(), b.Value()), vars(a, b), MaxOp{})
}

// MinOp is the element-wise minimum.
//
// Backward: mask = a < b; grad_a = grad where mask, grad_b = grad where !mask.
type MinOp struct{}

// Name returns "min".
func (MinOp) Name() string { return "min" }

// Backward routes grad to the smaller operand; ties go to b.
func (MinOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	routeByMask(inputs[0], inputs[1], Less(inputs[0], inputs[1]), grad)
}

// Min returns min(a, b) element-wise.
func Min(a, b *autograd.Variable) *autograd.Variable {
	checkSameShape("min", a, b)
	return autograd.NewComposite(a.Backend().Minimum(a.Value(), b.Value()), vars(a, b), MinOp{})
}

func routeByMask(a, b, mask, grad *autograd.Variable) {
	zeros := ZerosLike(grad)
	a.AddGrad(Select(mask, grad, zeros))
	b.AddGrad(Select(mask, zeros, grad))
}
