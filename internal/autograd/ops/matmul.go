package ops

import "github.com/born-ml/autograd/internal/autograd"

// TransposeOp swaps the axes of a 2-D Variable.
type TransposeOp struct{}

// Name returns "transpose".
func (TransposeOp) Name() string { return "transpose" }

// Backward passes transpose(grad).
func (TransposeOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	inputs[0].AddGrad(Transpose(grad))
}

// Transpose returns aᵗ for a 2-D Variable.
func Transpose(a *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().Transpose(a.Value()), vars(a), TransposeOp{})
}

// MatMulOp is the matrix product a·b: [M, K] × [K, N] -> [M, N].
//
// Backward:
//   - grad_a = grad · bᵗ  [M, K]
//   - grad_b = aᵗ · grad  [K, N]
type MatMulOp struct{}

// Name returns "matmul".
func (MatMulOp) Name() string { return "matmul" }

// Backward computes both matrix adjoints.
func (MatMulOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	a, b := inputs[0], inputs[1]
	a.AddGrad(MatMulNT(grad, b))
	b.AddGrad(MatMulTN(a, grad))
}

// MatMul returns a·b.
func MatMul(a, b *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().MatMul(a.Value(), b.Value()), vars(a, b), MatMulOp{})
}

// MatMulTNOp is aᵗ·b: a [K, M], b [K, N] -> [M, N].
//
// Backward:
//   - grad_a = b · gradᵗ  [K, M]
//   - grad_b = a · grad   [K, N]
type MatMulTNOp struct{}

// Name returns "matmul_tn".
func (MatMulTNOp) Name() string { return "matmul_tn" }

// Backward computes both matrix adjoints.
func (MatMulTNOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	a, b := inputs[0], inputs[1]
	a.AddGrad(MatMulNT(b, grad))
	b.AddGrad(MatMul(a, grad))
}

// MatMulTN returns aᵗ·b without materializing aᵗ.
func MatMulTN(a, b *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().MatMulTN(a.Value(), b.Value()), vars(a, b), MatMulTNOp{})
}

// MatMulNTOp is a·bᵗ: a [M, K], b [N, K] -> [M, N].
//
// Backward:
//   - grad_a = grad · b    [M, K]
//   - grad_b = gradᵗ · a   [N, K]
type MatMulNTOp struct{}

// Name returns "matmul_nt".
func (MatMulNTOp) Name() string { return "matmul_nt" }

// Backward computes both matrix adjoints.
func (MatMulNTOp) Backward(inputs []*autograd.Variable, grad *autograd.Variable) {
	a, b := inputs[0], inputs[1]
	a.AddGrad(MatMul(grad, b))
	b.AddGrad(MatMulTN(grad, a))
}

// MatMulNT returns a·bᵗ without materializing bᵗ.
func MatMulNT(a, b *autograd.Variable) *autograd.Variable {
	return autograd.NewComposite(a.Backend().MatMulNT(a.Value(), b.Value()), vars(a, b), MatMulNTOp{})
}
