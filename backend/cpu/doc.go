// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - gonum BLAS for MatMul and its transposed variants
//   - Float32 and Float64 kernels, Int32 and Bool where meaningful
//   - NumPy-compatible broadcasting
//   - Seeded random number generation
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
//	    model := nn.NewLinear(784, 10, true, backend)
//	}
//
// # Performance
//
// Windowed kernels (Unwrap, Wrap) split their batch and channel loops over a
// worker pool sized by Config.Parallel. Use a Sequential parallel config for
// reproducible profiling.
package cpu
