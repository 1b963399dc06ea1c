// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/autograd/internal/tensor"
)

// RawTensor is the array value held by autograd Variables.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Typed views via AsFloat32(), AsFloat64(), AsInt32(), AsBool()
//   - Dtype-independent access via Float64s() and Item()
//   - Deep copies via Clone() and in-place overwrite via CopyFrom()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32() // shares the buffer
//	clone := raw.Clone()    // independent copy
type RawTensor = tensor.RawTensor

// Shape is the size of every axis, outermost first.
type Shape = tensor.Shape

// DataType identifies the element type of a RawTensor.
type DataType = tensor.DataType

// DType constrains the Go element types accepted by FromSlice.
type DType = tensor.DType

// Device identifies where a tensor's buffer lives.
type Device = tensor.Device

// Window describes the kernel, stride and padding of a 2D sliding window.
type Window = tensor.Window

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Bool    = tensor.Bool
)

// CPU is the host device.
const CPU = tensor.CPU

// Error kinds reported by tensor operations and backends.
var (
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrUnsupportedDType = tensor.ErrUnsupportedDType
)

// NewRaw creates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice copies data into a new tensor of the given shape.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromFloat64s converts values into a new tensor of the given dtype.
func FromFloat64s(values []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.FromFloat64s(values, shape, dtype)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.Ones(shape, dtype)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64, dtype DataType) (*RawTensor, error) {
	return tensor.Full(shape, value, dtype)
}
