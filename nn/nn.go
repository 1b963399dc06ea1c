// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/autograd/autograd"
	"github.com/born-ml/autograd/internal/nn"
	"github.com/born-ml/autograd/tensor"
)

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// NewLinear creates a new linear layer with Glorot-uniform weights.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(784, 128, true, backend)
func NewLinear(inFeatures, outFeatures int, bias bool, backend tensor.Backend) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, bias, backend)
}

// NewLinearFromParams creates a linear layer from existing weight [out, in]
// and optional bias [1, out] Variables.
func NewLinearFromParams(weight, bias *autograd.Variable) (*Linear, error) {
	return nn.NewLinearFromParams(weight, bias)
}

// Conv2D represents a 2D convolutional layer.
type Conv2D = nn.Conv2D

// NewConv2D creates a new 2D convolutional layer.
//
// Example:
//
//	backend := cpu.New()
//	win := tensor.Window{WX: 3, WY: 3, SX: 1, SY: 1, PX: 1, PY: 1}
//	conv := nn.NewConv2D(1, 32, win, true, backend)
func NewConv2D(inChannels, outChannels int, win tensor.Window, bias bool, backend tensor.Backend) *Conv2D {
	return nn.NewConv2D(inChannels, outChannels, win, bias, backend)
}

// NewConv2DFromParams creates a convolution from existing weights
// [F, C, WY, WX] and optional bias [1, F, 1, 1].
func NewConv2DFromParams(weight, bias *autograd.Variable, win tensor.Window) (*Conv2D, error) {
	return nn.NewConv2DFromParams(weight, bias, win)
}

// Dropout zeroes inputs with probability ratio during training.
type Dropout = nn.Dropout

// NewDropout creates a dropout layer. ratio must be in [0, 1).
func NewDropout(ratio float64) *Dropout {
	return nn.NewDropout(ratio)
}

// Sequential chains modules, feeding each output to the next.
type Sequential = nn.Sequential

// NewSequential creates a container running modules in order.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Activations

// ReLU applies max(x, 0).
type ReLU = nn.ReLU

// NewReLU creates a ReLU activation.
func NewReLU() *ReLU { return nn.NewReLU() }

// LeakyReLU applies max(x, slope*x).
type LeakyReLU = nn.LeakyReLU

// NewLeakyReLU creates a LeakyReLU activation.
func NewLeakyReLU(slope float64) *LeakyReLU { return nn.NewLeakyReLU(slope) }

// Sigmoid applies 1/(1+exp(-x)).
type Sigmoid = nn.Sigmoid

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid() *Sigmoid { return nn.NewSigmoid() }

// Tanh applies tanh(x).
type Tanh = nn.Tanh

// NewTanh creates a Tanh activation.
func NewTanh() *Tanh { return nn.NewTanh() }

// Loss functions

// Loss reduces predictions and targets to a scalar loss of shape [1].
type Loss = nn.Loss

// ErrInvalidTarget is reported for malformed class-index targets.
var ErrInvalidTarget = nn.ErrInvalidTarget

// MeanSquaredError is mean((x - y)^2).
type MeanSquaredError = nn.MeanSquaredError

// NewMeanSquaredError creates a MeanSquaredError loss.
func NewMeanSquaredError() *MeanSquaredError { return nn.NewMeanSquaredError() }

// MeanAbsoluteError is mean(|x - y|).
type MeanAbsoluteError = nn.MeanAbsoluteError

// NewMeanAbsoluteError creates a MeanAbsoluteError loss.
func NewMeanAbsoluteError() *MeanAbsoluteError { return nn.NewMeanAbsoluteError() }

// BinaryCrossEntropy is the log loss of probabilities against 0/1 targets.
type BinaryCrossEntropy = nn.BinaryCrossEntropy

// NewBinaryCrossEntropy creates a BinaryCrossEntropy loss.
func NewBinaryCrossEntropy() *BinaryCrossEntropy { return nn.NewBinaryCrossEntropy() }

// CrossEntropy is softmax cross-entropy of logits [batch, classes] against
// class indices [batch].
type CrossEntropy = nn.CrossEntropy

// NewCrossEntropy creates a CrossEntropy loss.
//
// Example:
//
//	criterion := nn.NewCrossEntropy()
//	loss := criterion.Forward(logits, labels)
func NewCrossEntropy() *CrossEntropy { return nn.NewCrossEntropy() }

// MultiMarginLoss is the multi-class hinge loss with margin 1.
type MultiMarginLoss = nn.MultiMarginLoss

// NewMultiMarginLoss creates a MultiMarginLoss.
func NewMultiMarginLoss() *MultiMarginLoss { return nn.NewMultiMarginLoss() }

// Initialization

// Uniform creates a Variable with values drawn from U(lo, hi).
func Uniform(backend tensor.Backend, shape tensor.Shape, lo, hi float64, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return nn.Uniform(backend, shape, lo, hi, dtype, calcGrad)
}

// Normal creates a Variable with values drawn from N(mean, std²).
func Normal(backend tensor.Backend, shape tensor.Shape, mean, std float64, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return nn.Normal(backend, shape, mean, std, dtype, calcGrad)
}

// LecunUniform uses std √(1/fanIn).
func LecunUniform(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return nn.LecunUniform(backend, shape, dtype, calcGrad)
}

// LecunNormal uses std √(1/fanIn).
func LecunNormal(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return nn.LecunNormal(backend, shape, dtype, calcGrad)
}

// GlorotUniform uses std √(2/(fanIn+fanOut)).
func GlorotUniform(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return nn.GlorotUniform(backend, shape, dtype, calcGrad)
}

// GlorotNormal uses std √(2/(fanIn+fanOut)).
func GlorotNormal(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return nn.GlorotNormal(backend, shape, dtype, calcGrad)
}

// Constant creates a Variable filled with value.
func Constant(backend tensor.Backend, value float64, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return nn.Constant(backend, value, shape, dtype, calcGrad)
}

// Identity creates a 2D Variable with ones on the diagonal.
func Identity(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return nn.Identity(backend, shape, dtype, calcGrad)
}
