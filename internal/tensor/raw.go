package tensor

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
)

// Device represents the compute device holding a tensor's memory.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	if d == CPU {
		return "CPU"
	}
	return "Unknown"
}

// RawTensor is the backend-owned array value: a contiguous row-major buffer
// with shape and dtype metadata. Operations never modify their operands; the
// only in-place mutation is CopyFrom, used by optimizers on parameter values.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
	device Device
}

// NewRaw creates a new zero-filled RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid shape")
	}
	if dtype < Float32 || dtype > Bool {
		return nil, UnsupportedDTypef("dtype %d", int(dtype))
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// MustNewRaw is NewRaw for callers that already validated the shape; it panics on error.
func MustNewRaw(shape Shape, dtype DataType) *RawTensor {
	r, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides (row-major).
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	r.mustBe(Float32)
	//nolint:gosec // unsafe.Slice for zero-copy access, length bounded by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	r.mustBe(Float64)
	//nolint:gosec // unsafe.Slice for zero-copy access, length bounded by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	r.mustBe(Int32)
	//nolint:gosec // unsafe.Slice for zero-copy access, length bounded by NumElements()
	return unsafe.Slice((*int32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	r.mustBe(Bool)
	//nolint:gosec // unsafe.Slice for zero-copy access, length bounded by NumElements()
	return unsafe.Slice((*bool)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

func (r *RawTensor) mustBe(dtype DataType) {
	if r.dtype != dtype {
		panic(UnsupportedDTypef("tensor dtype is %s, not %s", r.dtype, dtype))
	}
}

// Float64s returns a copy of the elements converted to float64.
// Booleans map to 0 and 1.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, r.AsFloat64())
	case Int32:
		for i, v := range r.AsInt32() {
			out[i] = float64(v)
		}
	case Bool:
		for i, v := range r.AsBool() {
			if v {
				out[i] = 1
			}
		}
	}
	return out
}

// SetFloat64s overwrites the elements from float64 values, converting to the tensor's dtype.
func (r *RawTensor) SetFloat64s(values []float64) error {
	if len(values) != r.NumElements() {
		return ShapeMismatchf("set: %d values for shape %v", len(values), r.shape)
	}
	switch r.dtype {
	case Float32:
		dst := r.AsFloat32()
		for i, v := range values {
			dst[i] = float32(v)
		}
	case Float64:
		copy(r.AsFloat64(), values)
	case Int32:
		dst := r.AsInt32()
		for i, v := range values {
			dst[i] = int32(v)
		}
	case Bool:
		dst := r.AsBool()
		for i, v := range values {
			dst[i] = v != 0
		}
	}
	return nil
}

// Item returns the single element of a one-element tensor as float64.
func (r *RawTensor) Item() float64 {
	if r.NumElements() != 1 {
		panic(ShapeMismatchf("item: tensor of shape %v has %d elements", r.shape, r.NumElements()))
	}
	return r.Float64s()[0]
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
		device: r.device,
	}
}

// CopyFrom overwrites the tensor's elements with src's. Shapes and dtypes must match.
func (r *RawTensor) CopyFrom(src *RawTensor) error {
	if !r.shape.Equal(src.shape) {
		return ShapeMismatchf("copy: %v from %v", r.shape, src.shape)
	}
	if r.dtype != src.dtype {
		return UnsupportedDTypef("copy: %s from %s", r.dtype, src.dtype)
	}
	copy(r.data, src.data)
	return nil
}

// String returns a short description of the tensor.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(%s%v)", r.dtype, []int(r.shape))
}
