package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/autograd/ops"
)

// Dropout zeroes each element with probability ratio during training and
// scales the survivors by 1/(1-ratio), so no rescaling is needed at inference.
// In eval mode it is the identity.
//
// A fresh mask is drawn from the input's backend on every forward pass.
type Dropout struct {
	ratio    float64
	training bool
}

// NewDropout creates a Dropout module in training mode.
//
// Panics if ratio is outside [0, 1).
func NewDropout(ratio float64) *Dropout {
	if ratio < 0 || ratio >= 1 {
		panic(errors.Errorf("dropout: ratio %v outside [0, 1)", ratio))
	}
	return &Dropout{ratio: ratio, training: true}
}

// Forward applies the dropout mask in training mode.
func (d *Dropout) Forward(input *autograd.Variable) *autograd.Variable {
	if !d.training || d.ratio == 0 {
		return input
	}
	b := input.Backend()
	shape, dtype := input.Shape(), input.DType()

	keep := b.Greater(b.RandUniform(shape, 0, 1, dtype), b.Full(shape, d.ratio, dtype))
	mask := b.MulScalar(b.Cast(keep, dtype), 1/(1-d.ratio))
	return ops.Mul(input, autograd.Input(mask, b))
}

// Parameters returns nil.
func (*Dropout) Parameters() []*autograd.Variable { return nil }

// SetTraining switches between training and inference behavior.
func (d *Dropout) SetTraining(training bool) { d.training = training }

// Training reports whether the module is in training mode.
func (d *Dropout) Training() bool { return d.training }

// Ratio returns the drop probability.
func (d *Dropout) Ratio() float64 { return d.ratio }

var _ modeSetter = (*Dropout)(nil)
