// Package tensor provides the backend-owned array values the autograd engine differentiates over.
package tensor

import "github.com/pkg/errors"

// DType is a constraint for element types that can back a RawTensor.
type DType interface {
	~float32 | ~float64 | ~int32 | ~bool
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	case Bool:
		return 1
	default:
		panic(errors.Wrapf(ErrUnsupportedDType, "size of %d", int(dt)))
	}
}

// IsFloat reports whether values of this type can carry gradients.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType]() DataType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case bool:
		return Bool
	default:
		panic(errors.Wrapf(ErrUnsupportedDType, "%T", zero))
	}
}
