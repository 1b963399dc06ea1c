// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks on top of
// the autograd engine.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Conv2D, Dropout
//   - Activations: ReLU, LeakyReLU, Sigmoid, Tanh
//   - Loss functions: MeanSquaredError, MeanAbsoluteError, BinaryCrossEntropy,
//     CrossEntropy, MultiMarginLoss
//   - Utilities: Sequential, Module interface, named parameters, state dicts
//   - Initialization: Uniform, Normal, Lecun*, Glorot*, Constant, Identity
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/autograd/backend/cpu"
//	    "github.com/born-ml/autograd/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Build a simple MLP
//	    model := nn.NewSequential(
//	        nn.NewLinear(784, 128, true, backend),
//	        nn.NewReLU(),
//	        nn.NewLinear(128, 10, true, backend),
//	    )
//
//	    // Forward pass
//	    output := model.Forward(input)
//	}
//
// # Layers
//
// Linear: Fully connected layer with Glorot-uniform weights [out, in] and a
// zero bias [1, out]. Input shape [batch, in].
//
// Conv2D: 2D convolution with weights [F, C, WY, WX] and bias [1, F, 1, 1].
// Input shape [N, C, H, W].
//
// Dropout: Inverted dropout in training mode, identity after Eval.
//
// # Training and evaluation
//
// Train and Eval switch gradient tracking on every parameter and the
// training flag of mode-dependent layers. ZeroGrad clears accumulated
// gradients before the next backward pass.
//
// # Persistence
//
// StateDict and LoadStateDict snapshot and restore parameter values by name.
// Save and Load write them to a checksummed file.
package nn
