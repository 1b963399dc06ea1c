// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops provides the differentiable operators of the autograd engine.
//
// Binary element-wise operators require operands of equal shape; broadcast
// explicitly with Tile, TileAs or ExpandAs. Contract violations panic with an
// error wrapping autograd.ErrShapeMismatch or tensor.ErrUnsupportedDType; wrap
// graph construction in autograd.Try to receive them as errors.
//
// Example:
//
//	// y = sigmoid(x @ w + b)
//	y := ops.Sigmoid(ops.Add(ops.MatMul(x, w), ops.TileAs(b, x)))
package ops

import (
	"github.com/born-ml/autograd/autograd"
	"github.com/born-ml/autograd/internal/autograd/ops"
	"github.com/born-ml/autograd/tensor"
)

// Add returns a + b.
func Add(a, b *autograd.Variable) *autograd.Variable {
	return ops.Add(a, b)
}

// Sub returns a - b.
func Sub(a, b *autograd.Variable) *autograd.Variable {
	return ops.Sub(a, b)
}

// Mul returns a * b.
func Mul(a, b *autograd.Variable) *autograd.Variable {
	return ops.Mul(a, b)
}

// Div returns a / b.
func Div(a, b *autograd.Variable) *autograd.Variable {
	return ops.Div(a, b)
}

// Negate returns -a.
func Negate(a *autograd.Variable) *autograd.Variable {
	return ops.Negate(a)
}

// Reciprocal returns 1 / a.
func Reciprocal(a *autograd.Variable) *autograd.Variable {
	return ops.Reciprocal(a)
}

// AddScalar returns a + s.
func AddScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.AddScalar(a, s)
}

// SubScalar returns a - s.
func SubScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.SubScalar(a, s)
}

// ScalarSub returns s - a.
func ScalarSub(s float64, a *autograd.Variable) *autograd.Variable {
	return ops.ScalarSub(s, a)
}

// MulScalar returns a * s.
func MulScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.MulScalar(a, s)
}

// DivScalar returns a / s.
func DivScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.DivScalar(a, s)
}

// ScalarDiv returns s / a.
func ScalarDiv(s float64, a *autograd.Variable) *autograd.Variable {
	return ops.ScalarDiv(s, a)
}

// MaxScalar returns max(a, s) element-wise.
func MaxScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.MaxScalar(a, s)
}

// MinScalar returns min(a, s) element-wise.
func MinScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.MinScalar(a, s)
}

// GreaterScalar returns a > s.
func GreaterScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.GreaterScalar(a, s)
}

// LessScalar returns a < s.
func LessScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.LessScalar(a, s)
}

// GreaterEqualScalar returns a >= s.
func GreaterEqualScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.GreaterEqualScalar(a, s)
}

// LessEqualScalar returns a <= s.
func LessEqualScalar(a *autograd.Variable, s float64) *autograd.Variable {
	return ops.LessEqualScalar(a, s)
}

// Exp returns eᵃ.
func Exp(a *autograd.Variable) *autograd.Variable {
	return ops.Exp(a)
}

// Log returns ln(a).
func Log(a *autograd.Variable) *autograd.Variable {
	return ops.Log(a)
}

// Sqrt returns √a.
func Sqrt(a *autograd.Variable) *autograd.Variable {
	return ops.Sqrt(a)
}

// Sin returns sin(a).
func Sin(a *autograd.Variable) *autograd.Variable {
	return ops.Sin(a)
}

// Cos returns cos(a).
func Cos(a *autograd.Variable) *autograd.Variable {
	return ops.Cos(a)
}

// Tanh returns tanh(a).
func Tanh(a *autograd.Variable) *autograd.Variable {
	return ops.Tanh(a)
}

// Sigmoid returns σ(a).
func Sigmoid(a *autograd.Variable) *autograd.Variable {
	return ops.Sigmoid(a)
}

// Abs returns |a|.
func Abs(a *autograd.Variable) *autograd.Variable {
	return ops.Abs(a)
}

// Greater returns a > b.
func Greater(a, b *autograd.Variable) *autograd.Variable {
	return ops.Greater(a, b)
}

// Less returns a < b.
func Less(a, b *autograd.Variable) *autograd.Variable {
	return ops.Less(a, b)
}

// GreaterEqual returns a >= b.
func GreaterEqual(a, b *autograd.Variable) *autograd.Variable {
	return ops.GreaterEqual(a, b)
}

// LessEqual returns a <= b.
func LessEqual(a, b *autograd.Variable) *autograd.Variable {
	return ops.LessEqual(a, b)
}

// Not returns the logical negation of a Bool Variable.
func Not(a *autograd.Variable) *autograd.Variable {
	return ops.Not(a)
}

// Select returns cond ? a : b element-wise. cond must be a Bool Variable.
func Select(cond, a, b *autograd.Variable) *autograd.Variable {
	return ops.Select(cond, a, b)
}

// Max returns max(a, b) element-wise.
func Max(a, b *autograd.Variable) *autograd.Variable {
	return ops.Max(a, b)
}

// Min returns min(a, b) element-wise.
func Min(a, b *autograd.Variable) *autograd.Variable {
	return ops.Min(a, b)
}

// Transpose returns aᵗ for a 2-D Variable.
func Transpose(a *autograd.Variable) *autograd.Variable {
	return ops.Transpose(a)
}

// MatMul returns a·b.
func MatMul(a, b *autograd.Variable) *autograd.Variable {
	return ops.MatMul(a, b)
}

// MatMulTN returns aᵗ·b without materializing aᵗ.
func MatMulTN(a, b *autograd.Variable) *autograd.Variable {
	return ops.MatMulTN(a, b)
}

// MatMulNT returns a·bᵗ without materializing bᵗ.
func MatMulNT(a, b *autograd.Variable) *autograd.Variable {
	return ops.MatMulNT(a, b)
}

// Tile replicates a reps[i] times along each axis i. len(reps) must equal the rank of a.
func Tile(a *autograd.Variable, reps ...int) *autograd.Variable {
	return ops.Tile(a, reps...)
}

// TileAs broadcasts a to the shape of ref. Missing axes of a are appended as
// trailing axes of size 1; every axis must then be 1 or match ref.
func TileAs(a, ref *autograd.Variable) *autograd.Variable {
	return ops.TileAs(a, ref)
}

// ExpandAs broadcasts a to the shape of ref with NumPy alignment: missing axes
// of a are prepended with size 1.
func ExpandAs(a, ref *autograd.Variable) *autograd.Variable {
	return ops.ExpandAs(a, ref)
}

// SumAs reduces a to the shape of ref: the adjoint of TileAs. Axes where ref
// (padded with trailing 1s) has size 1 are summed.
func SumAs(a, ref *autograd.Variable) *autograd.Variable {
	return ops.SumAs(a, ref)
}

// Reshape returns a with a new shape holding the same number of elements.
func Reshape(a *autograd.Variable, shape tensor.Shape) *autograd.Variable {
	return ops.Reshape(a, shape)
}

// Flat returns a reshaped to one dimension.
func Flat(a *autograd.Variable) *autograd.Variable {
	return ops.Flat(a)
}

// Reorder permutes the axes of a.
func Reorder(a *autograd.Variable, perm ...int) *autograd.Variable {
	return ops.Reorder(a, perm...)
}

// Sum sums a over axes, keeping each reduced axis with size 1. No axes sums everything.
func Sum(a *autograd.Variable, axes ...int) *autograd.Variable {
	return ops.Sum(a, axes...)
}

// Mean averages a over axes, keeping each reduced axis with size 1. No axes averages everything.
func Mean(a *autograd.Variable, axes ...int) *autograd.Variable {
	return ops.Mean(a, axes...)
}

// Unwrap extracts the sliding windows of a.
func Unwrap(a *autograd.Variable, win tensor.Window) *autograd.Variable {
	return ops.Unwrap(a, win)
}

// Wrap scatters the columns of a into an h x w image.
func Wrap(a *autograd.Variable, h, w int, win tensor.Window) *autograd.Variable {
	return ops.Wrap(a, h, w, win)
}

// Conv2D convolves input [N, C, H, W] with weights [F, C, WY, WX] using the
// window's strides and padding; the window size must match the weights.
func Conv2D(input, weights *autograd.Variable, win tensor.Window) *autograd.Variable {
	return ops.Conv2D(input, weights, win)
}

// Constant returns a non-tracking Variable with v's shape and dtype filled with value.
func Constant(v *autograd.Variable, value float64) *autograd.Variable {
	return ops.Constant(v, value)
}

// ZerosLike returns a non-tracking Variable of zeros with v's shape and dtype.
func ZerosLike(v *autograd.Variable) *autograd.Variable {
	return ops.ZerosLike(v)
}
