package tensor

import "github.com/pkg/errors"

var (
	// ErrShapeMismatch is raised when operand shapes are incompatible with the requested operation.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUnsupportedDType is raised when an operation does not support the operands' data type.
	ErrUnsupportedDType = errors.New("unsupported dtype")
)

// ShapeMismatchf returns ErrShapeMismatch annotated with a formatted message.
func ShapeMismatchf(format string, args ...any) error {
	return errors.Wrapf(ErrShapeMismatch, format, args...)
}

// UnsupportedDTypef returns ErrUnsupportedDType annotated with a formatted message.
func UnsupportedDTypef(format string, args ...any) error {
	return errors.Wrapf(ErrUnsupportedDType, format, args...)
}
