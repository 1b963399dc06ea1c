package cpu

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/autograd/internal/tensor"
)

// MatMul performs matrix multiplication: [M, K] @ [K, N] -> [M, N].
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return gemm("matmul", a, b, blas.NoTrans, blas.NoTrans)
}

// MatMulTN computes aᵗ·b: [K, M]ᵗ @ [K, N] -> [M, N].
func (cpu *CPUBackend) MatMulTN(a, b *tensor.RawTensor) *tensor.RawTensor {
	return gemm("matmul_tn", a, b, blas.Trans, blas.NoTrans)
}

// MatMulNT computes a·bᵗ: [M, K] @ [N, K]ᵗ -> [M, N].
func (cpu *CPUBackend) MatMulNT(a, b *tensor.RawTensor) *tensor.RawTensor {
	return gemm("matmul_nt", a, b, blas.NoTrans, blas.Trans)
}

// gemm validates operand shapes and dispatches to the BLAS GEMM of the operands' dtype.
func gemm(name string, a, b *tensor.RawTensor, tA, tB blas.Transpose) *tensor.RawTensor {
	checkSameDType(name, a, b)
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(tensor.ShapeMismatchf("%s: requires 2D tensors, got %v and %v", name, aShape, bShape))
	}

	m, k := aShape[0], aShape[1]
	if tA == blas.Trans {
		m, k = k, m
	}
	kb, n := bShape[0], bShape[1]
	if tB == blas.Trans {
		kb, n = n, kb
	}
	if k != kb {
		panic(tensor.ShapeMismatchf("%s: inner dimensions mismatch %v and %v", name, aShape, bShape))
	}

	out := tensor.MustNewRaw(tensor.Shape{m, n}, a.DType())
	switch a.DType() {
	case tensor.Float32:
		blas32.Gemm(tA, tB, 1,
			blas32.General{Rows: aShape[0], Cols: aShape[1], Stride: aShape[1], Data: a.AsFloat32()},
			blas32.General{Rows: bShape[0], Cols: bShape[1], Stride: bShape[1], Data: b.AsFloat32()},
			0,
			blas32.General{Rows: m, Cols: n, Stride: n, Data: out.AsFloat32()})
	case tensor.Float64:
		blas64.Gemm(tA, tB, 1,
			blas64.General{Rows: aShape[0], Cols: aShape[1], Stride: aShape[1], Data: a.AsFloat64()},
			blas64.General{Rows: bShape[0], Cols: bShape[1], Stride: bShape[1], Data: b.AsFloat64()},
			0,
			blas64.General{Rows: m, Cols: n, Stride: n, Data: out.AsFloat64()})
	default:
		panic(tensor.UnsupportedDTypef("%s: %s", name, a.DType()))
	}
	return out
}
