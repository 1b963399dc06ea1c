// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum, Nesterov and weight decay
//   - Adam: Adaptive Moment Estimation with bias correction
//   - RMSProp: Root mean square propagation, optionally centered
//   - Optimizer interface for custom optimizers
//
// Optimizers write updated values into the buffers of the parameters they
// were given. Parameters that do not track gradients, or that have not
// received one yet, are skipped.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/autograd/autograd"
//	    "github.com/born-ml/autograd/backend/cpu"
//	    "github.com/born-ml/autograd/nn"
//	    "github.com/born-ml/autograd/optim"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    model := nn.NewLinear(784, 10, true, backend)
//
//	    // Create optimizer
//	    optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//
//	    // Training loop
//	    for epoch := range 10 {
//	        loss := criterion.Forward(model.Forward(x), y)
//
//	        optimizer.ZeroGrad()
//	        if err := autograd.BackwardOnes(loss); err != nil {
//	            log.Fatal(err)
//	        }
//	        optimizer.Step()
//	    }
//	}
package optim
