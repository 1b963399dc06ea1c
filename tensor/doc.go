// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the backend-owned arrays the autograd engine
// differentiates over.
//
// # Overview
//
// A RawTensor is a contiguous row-major buffer with a Shape and a DataType.
// Values are produced by a Backend and treated as immutable by every
// operation; optimizers are the only code that writes into a buffer, through
// CopyFrom.
//
// Supported data types: Float32, Float64, Int32 and Bool. Only the float types
// carry gradients.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/autograd/backend/cpu"
//	    "github.com/born-ml/autograd/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    y := backend.MatMul(x, x)
//	    fmt.Println(y.AsFloat32()) // [7 10 15 22]
//	}
package tensor
