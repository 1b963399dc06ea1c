package nn

import (
	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/autograd/ops"
)

// Activation modules have no parameters; their gradients come from the
// operators they are built on.

// Sigmoid applies σ(x) = 1 / (1 + e^(-x)) element-wise.
type Sigmoid struct{}

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid() *Sigmoid { return &Sigmoid{} }

// Forward applies the sigmoid.
func (*Sigmoid) Forward(input *autograd.Variable) *autograd.Variable { return ops.Sigmoid(input) }

// Parameters returns nil.
func (*Sigmoid) Parameters() []*autograd.Variable { return nil }

// Tanh applies the hyperbolic tangent element-wise.
type Tanh struct{}

// NewTanh creates a Tanh activation.
func NewTanh() *Tanh { return &Tanh{} }

// Forward applies tanh.
func (*Tanh) Forward(input *autograd.Variable) *autograd.Variable { return ops.Tanh(input) }

// Parameters returns nil.
func (*Tanh) Parameters() []*autograd.Variable { return nil }

// ReLU is a Rectified Linear Unit activation: f(x) = max(x, 0).
//
// The gradient is 1 where x > 0 and 0 elsewhere.
type ReLU struct{}

// NewReLU creates a ReLU activation.
func NewReLU() *ReLU { return &ReLU{} }

// Forward applies max(x, 0).
func (*ReLU) Forward(input *autograd.Variable) *autograd.Variable { return ops.MaxScalar(input, 0) }

// Parameters returns nil.
func (*ReLU) Parameters() []*autograd.Variable { return nil }

// LeakyReLU applies f(x) = max(x, slope·x), for 0 <= slope < 1.
type LeakyReLU struct {
	slope float64
}

// NewLeakyReLU creates a LeakyReLU with the given negative slope.
func NewLeakyReLU(slope float64) *LeakyReLU { return &LeakyReLU{slope: slope} }

// Forward applies max(x, slope·x).
func (l *LeakyReLU) Forward(input *autograd.Variable) *autograd.Variable {
	return ops.Max(input, ops.MulScalar(input, l.slope))
}

// Parameters returns nil.
func (*LeakyReLU) Parameters() []*autograd.Variable { return nil }

// Slope returns the negative slope.
func (l *LeakyReLU) Slope() float64 { return l.slope }
