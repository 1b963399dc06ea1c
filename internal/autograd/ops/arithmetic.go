package ops

import "github.com/born-ml/autograd/internal/autograd"

// AddOp is the element-wise addition a + b.
//
// Backward: grad_a = grad, grad_b = grad.
type AddOp struct{}

// Name returns "add".
func (AddOp) Name() string { return "add" }

// Backward passes the gradient unchanged to both operands.
func (AddOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(grad)
	inputs[1].AddGrad(grad)
}

// Add returns a + b.
func Add(a, b *autograd.Variable) *autograd.Variable {
	checkSameShape("add", a, b)
	return autograd.NewComposite(a.Backend().Add(a.Value(), b.Value()), vars(a, b), AddOp{})
}

// SubOp is the element-wise subtraction a - b.
//
// Backward: grad_a = grad, grad_b = -grad.
type SubOp struct{}

// Name returns "sub".
func (SubOp) Name() string { return "sub" }

// Backward passes grad to a and its negation to b.
func (SubOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(grad)
	inputs[1].AddGrad(Negate(grad))
}

// Sub returns a - b.
func Sub(a, b *autograd.Variable) *autograd.Variable {
	checkSameShape("sub", a, b)
	return autograd.NewComposite(a.Backend().Sub(a.Value(), b.Value()), vars(a, b), SubOp{})
}

// MulOp is the element-wise product a * b.
//
// Backward: grad_a = grad * b, grad_b = grad * a.
type MulOp struct{}

// Name returns "mul".
func (MulOp) Name() string { return "mul" }

// Backward applies the product rule.
func (MulOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	a, b := inputs[0], inputs[1]
	a.AddGrad(Mul(grad, b))
	b.AddGrad(Mul(grad, a))
}

// Mul returns a * b.
func Mul(a, b *autograd.Variable) *autograd.Variable {
	checkSameShape("mul", a, b)
	return autograd.NewComposite(a.Backend().Mul(a.Value(), b.Value()), vars(a, b), MulOp{})
}

// DivOp is the element-wise quotient a / b.
//
// Backward: grad_a = grad / b, grad_b = -grad * a / b².
type DivOp struct{}

// Name returns "div".
func (DivOp) Name() string { return "div" }

// Backward applies the quotient rule.
func (DivOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	a, b := inputs[0], inputs[1]
	a.AddGrad(Div(grad, b))
	b.AddGrad(Negate(Div(Mul(grad, a), Mul(b, b))))
}

// Div returns a / b.
func Div(a, b *autograd.Variable) *autograd.Variable {
	checkSameShape("div", a, b)
	return autograd.NewComposite(a.Backend().Div(a.Value(), b.Value()), vars(a, b), DivOp{})
}

// NegateOp is the element-wise negation -a.
type NegateOp struct{}

// Name returns "negate".
func (NegateOp) Name() string { return "negate" }

// Backward passes -grad.
func (NegateOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Negate(grad))
}

// Negate returns -a.
func Negate(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Neg(a.Value()), vars(a), NegateOp{})
}

// ReciprocalOp is the element-wise reciprocal 1 / a.
//
// Backward: grad_a = -grad / a².
type ReciprocalOp struct{}

// Name returns "reciprocal".
func (ReciprocalOp) Name() string { return "reciprocal" }

// Backward passes -grad / a².
func (ReciprocalOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	a := inputs[0]
	a.AddGrad(Negate(Div(grad, Mul(a, a))))
}

// Reciprocal returns 1 / a.
func Reciprocal(a *autograd.Variable) *autograd.Variable {
	b := a.Backend()
	ones := b.Full(a.Shape(), 1, a.DType())
	return autograd.NewComposite(b.Div(ones, a.Value()), vars(a), ReciprocalOp{})
}
