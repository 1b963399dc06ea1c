package ops

import "github.com/born-ml/autograd/internal/autograd"

// ExpOp is the element-wise exponential eᵃ.
//
// Backward: grad_a = grad * eᵃ.
type ExpOp struct{}

// Name returns "exp".
func (ExpOp) Name() string { return "exp" }

// Backward passes grad * eᵃ.
func (ExpOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Mul(grad, Exp(inputs[0])))
}

// Exp returns eᵃ.
func Exp(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Exp(a.Value()), vars(a), ExpOp{})
}

// LogOp is the element-wise natural logarithm.
//
// Backward: grad_a = grad / a.
type LogOp struct{}

// Name returns "log".
func (LogOp) Name() string { return "log" }

// Backward passes grad / a.
func (LogOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Div(grad, inputs[0]))
}

// Log returns ln(a).
func Log(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Log(a.Value()), vars(a), LogOp{})
}

// SqrtOp is the element-wise square root.
//
// Backward: grad_a = grad / (2·√a).
type SqrtOp struct{}

// Name returns "sqrt".
func (SqrtOp) Name() string { return "sqrt" }

// Backward passes grad / (2·√a).
func (SqrtOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Div(grad, MulScalar(Sqrt(inputs[0]), 2)))
}

// Sqrt returns √a.
func Sqrt(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Sqrt(a.Value()), vars(a), SqrtOp{})
}

// SinOp is the element-wise sine.
type SinOp struct{}

// Name returns "sin".
func (SinOp) Name() string { return "sin" }

// Backward passes grad * cos(a).
func (SinOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Mul(grad, Cos(inputs[0])))
}

// Sin returns sin(a).
func Sin(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Sin(a.Value()), vars(a), SinOp{})
}

// CosOp is the element-wise cosine.
type CosOp struct{}

// Name returns "cos".
func (CosOp) Name() string { return "cos" }

// Backward passes -grad * sin(a).
func (CosOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Negate(Mul(grad, Sin(inputs[0]))))
}

// Cos returns cos(a).
func Cos(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Cos(a.Value()), vars(a), CosOp{})
}

// TanhOp is the element-wise hyperbolic tangent.
//
// Backward: grad_a = grad * (1 - tanh(a)²).
type TanhOp struct{}

// Name returns "tanh".
func (TanhOp) Name() string { return "tanh" }

// Backward passes grad * (1 - tanh(a)²).
func (TanhOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	t := Tanh(inputs[0])
	inputs[0].AddGrad(Mul(grad, ScalarSub(1, Mul(t, t))))
}

// Tanh returns tanh(a).
func Tanh(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Tanh(a.Value()), vars(a), TanhOp{})
}

// SigmoidOp is the logistic function σ(a) = 1 / (1 + e⁻ᵃ).
//
// Backward: grad_a = grad * σ(a) * (1 - σ(a)).
type SigmoidOp struct{}

// Name returns "sigmoid".
func (SigmoidOp) Name() string { return "sigmoid" }

// Backward passes grad * σ(a) * (1 - σ(a)).
func (SigmoidOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	s := Sigmoid(inputs[0])
	inputs[0].AddGrad(Mul(grad, Mul(s, ScalarSub(1, s))))
}

// Sigmoid returns σ(a).
func Sigmoid(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Sigmoid(a.Value()), vars(a), SigmoidOp{})
}

// AbsOp is the element-wise absolute value.
//
// Backward: grad_a = grad where a >= 0, -grad elsewhere.
type AbsOp struct{}

// Name returns "abs".
func (AbsOp) Name() string { return "abs" }

// Backward passes grad times the sign of a, taking sign(0) = 1.
func (AbsOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	a := inputs[0]
	a.AddGrad(Select(GreaterEqualScalar(a, 0), grad, Negate(grad)))
}

// Abs returns |a|.
func Abs(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Abs(a.Value()), vars(a), AbsOp{})
}
