package autograd

import (
	"github.com/pkg/errors"

	"github.com/born-ml/autograd/internal/tensor"
)

var (
	// ErrGradientUnavailable is returned by Grad on a Variable whose gradient calculation is disabled.
	ErrGradientUnavailable = errors.New("gradient calculation disabled")

	// ErrGradientNotComputed is returned by Grad before any backward pass reached the Variable.
	ErrGradientNotComputed = errors.New("gradient has not been calculated yet")

	// ErrUnsupportedGradient is raised when a non-differentiable value is asked to track gradients.
	ErrUnsupportedGradient = errors.New("gradient not supported")

	// ErrEmptyInputs is raised when a composite Variable is built without inputs.
	ErrEmptyInputs = errors.New("composite variable without inputs")

	// ErrShapeMismatch is raised when operand shapes are incompatible with an operation.
	ErrShapeMismatch = tensor.ErrShapeMismatch
)
