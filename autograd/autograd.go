// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autograd provides reverse-mode automatic differentiation.
//
// Computations are recorded as a graph of Variables while they run. Each
// operator in the ops package evaluates eagerly through the Variable's
// backend and returns a new Variable that remembers its operands and how to
// propagate a gradient to them. Backward then walks the graph once, from the
// root towards the leaves, accumulating gradients on every Variable that
// tracks them.
//
// Example:
//
//	import (
//	    "github.com/born-ml/autograd/autograd"
//	    "github.com/born-ml/autograd/autograd/ops"
//	    "github.com/born-ml/autograd/backend/cpu"
//	    "github.com/born-ml/autograd/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    raw, _ := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{3})
//	    x := autograd.Parameter(raw, backend)
//
//	    y := ops.Sum(ops.Mul(x, x)) // sum(x^2)
//	    if err := autograd.BackwardOnes(y); err != nil {
//	        log.Fatal(err)
//	    }
//	    grad, _ := x.Grad()
//	    fmt.Println(grad.Value().AsFloat64()) // [2 4 6]
//	}
//
// Gradients are themselves Variables built from differentiable operators, so
// calling Backward with retainGraph set keeps them differentiable for higher
// order derivatives.
package autograd

import (
	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/tensor"
)

// Variable is a node of the differentiation graph.
type Variable = autograd.Variable

// Operation propagates an upstream gradient to the inputs of a composite Variable.
type Operation = autograd.Operation

// Error kinds reported by the engine.
var (
	ErrGradientUnavailable = autograd.ErrGradientUnavailable
	ErrGradientNotComputed = autograd.ErrGradientNotComputed
	ErrUnsupportedGradient = autograd.ErrUnsupportedGradient
	ErrEmptyInputs         = autograd.ErrEmptyInputs
	ErrShapeMismatch       = autograd.ErrShapeMismatch
)

// NewVariable creates a leaf Variable holding data.
func NewVariable(data *tensor.RawTensor, backend tensor.Backend, calcGrad bool) *Variable {
	return autograd.NewVariable(data, backend, calcGrad)
}

// Input creates a leaf that does not track gradients.
func Input(data *tensor.RawTensor, backend tensor.Backend) *Variable {
	return autograd.Input(data, backend)
}

// Parameter creates a leaf that tracks gradients.
func Parameter(data *tensor.RawTensor, backend tensor.Backend) *Variable {
	return autograd.Parameter(data, backend)
}

// NewComposite creates a Variable derived from inputs through op. It tracks
// gradients when any input does.
func NewComposite(data *tensor.RawTensor, inputs []*Variable, op Operation) *Variable {
	return autograd.NewComposite(data, inputs, op)
}

// Backward computes the gradients of root, seeded with seed, for every
// Variable in its graph that tracks gradients.
func Backward(root, seed *Variable, retainGraph bool) error {
	return autograd.Backward(root, seed, retainGraph)
}

// BackwardOnes runs Backward seeded with ones.
func BackwardOnes(root *Variable) error {
	return autograd.BackwardOnes(root)
}

// OnesLike returns a constant of ones with the shape and dtype of v.
func OnesLike(v *Variable) *Variable {
	return autograd.OnesLike(v)
}

// Try runs fn and returns the error of the first failing operator, if any.
//
// Example:
//
//	var y *autograd.Variable
//	err := autograd.Try(func() { y = ops.Add(a, b) })
func Try(fn func()) error {
	return autograd.Try(fn)
}
