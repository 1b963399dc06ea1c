// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/autograd/internal/tensor"

// Backend evaluates operations on RawTensors.
//
// Implementations:
//   - backend/cpu: Pure Go kernels with gonum BLAS for matrix products
//
// Example:
//
//	import (
//	    "github.com/born-ml/autograd/backend/cpu"
//	    "github.com/born-ml/autograd/tensor"
//	)
//
//	backend := cpu.New()
//	x, _ := tensor.Ones(tensor.Shape{2, 3}, tensor.Float32)
//	y := backend.Add(x, x)
type Backend = tensor.Backend
