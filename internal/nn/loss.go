package nn

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/autograd/ops"
	"github.com/born-ml/autograd/internal/tensor"
)

// ErrInvalidTarget is raised when class-index targets are out of range or not integral.
var ErrInvalidTarget = errors.New("invalid target")

// Loss is a criterion comparing predictions with targets.
//
// Every loss reduces to a one-element Variable of shape [1]: the mean of the
// per-sample losses, optionally multiplied by per-sample weights first.
// Shape problems panic with an error wrapping autograd.ErrShapeMismatch.
type Loss interface {
	// Forward computes the mean loss.
	Forward(inputs, targets *autograd.Variable) *autograd.Variable

	// ForwardWeighted computes the mean of weights · loss.
	ForwardWeighted(inputs, targets, weights *autograd.Variable) *autograd.Variable
}

// reduce flattens per-element losses, applies optional weights and averages.
func reduce(losses, weights *autograd.Variable) *autograd.Variable {
	flat := ops.Flat(losses)
	if weights != nil {
		flat = ops.Mul(flat, ops.Flat(weights))
	}
	return ops.Mean(flat)
}

// MeanSquaredError computes mean((inputs - targets)²).
type MeanSquaredError struct{}

// NewMeanSquaredError creates an MSE loss.
func NewMeanSquaredError() *MeanSquaredError { return &MeanSquaredError{} }

// Forward computes the MSE.
func (l *MeanSquaredError) Forward(inputs, targets *autograd.Variable) *autograd.Variable {
	return l.ForwardWeighted(inputs, targets, nil)
}

// ForwardWeighted computes mean(weights · (inputs - targets)²). weights must
// have the shape of inputs.
func (*MeanSquaredError) ForwardWeighted(inputs, targets, weights *autograd.Variable) *autograd.Variable {
	df := ops.Sub(inputs, targets)
	return reduce(ops.Mul(df, df), weights)
}

// MeanAbsoluteError computes mean(|inputs - targets|).
type MeanAbsoluteError struct{}

// NewMeanAbsoluteError creates an MAE loss.
func NewMeanAbsoluteError() *MeanAbsoluteError { return &MeanAbsoluteError{} }

// Forward computes the MAE.
func (l *MeanAbsoluteError) Forward(inputs, targets *autograd.Variable) *autograd.Variable {
	return l.ForwardWeighted(inputs, targets, nil)
}

// ForwardWeighted computes mean(weights · |inputs - targets|).
func (*MeanAbsoluteError) ForwardWeighted(inputs, targets, weights *autograd.Variable) *autograd.Variable {
	return reduce(ops.Abs(ops.Sub(inputs, targets)), weights)
}

// BinaryCrossEntropy computes mean(-(t·log(p) + (1-t)·log(1-p))) for
// probabilities p in (0, 1), typically the output of a Sigmoid.
type BinaryCrossEntropy struct{}

// NewBinaryCrossEntropy creates a BCE loss.
func NewBinaryCrossEntropy() *BinaryCrossEntropy { return &BinaryCrossEntropy{} }

// Forward computes the BCE.
func (l *BinaryCrossEntropy) Forward(inputs, targets *autograd.Variable) *autograd.Variable {
	return l.ForwardWeighted(inputs, targets, nil)
}

// ForwardWeighted computes the weighted BCE.
func (*BinaryCrossEntropy) ForwardWeighted(inputs, targets, weights *autograd.Variable) *autograd.Variable {
	pos := ops.Mul(targets, ops.Log(inputs))
	neg := ops.Mul(ops.ScalarSub(1, targets), ops.Log(ops.ScalarSub(1, inputs)))
	return reduce(ops.Negate(ops.Add(pos, neg)), weights)
}

// CrossEntropy is the softmax cross-entropy for classification.
//
// Inputs are logits [batch, classes]; targets hold one class index per
// sample, shape [batch]. Weights, when given, are per sample.
//
// The softmax is taken over axis 1 after subtracting each row's maximum,
// which does not change the result but keeps exp from overflowing.
type CrossEntropy struct{}

// NewCrossEntropy creates a cross-entropy loss.
func NewCrossEntropy() *CrossEntropy { return &CrossEntropy{} }

// Forward computes mean(-log softmax(inputs)[target]).
func (l *CrossEntropy) Forward(inputs, targets *autograd.Variable) *autograd.Variable {
	return l.ForwardWeighted(inputs, targets, nil)
}

// ForwardWeighted computes the per-sample weighted cross-entropy.
func (*CrossEntropy) ForwardWeighted(inputs, targets, weights *autograd.Variable) *autograd.Variable {
	mask := oneHot("cross_entropy", inputs, targets)

	shifted := ops.Sub(inputs, ops.TileAs(rowMax(inputs), inputs))
	logSumExp := ops.Log(ops.Sum(ops.Exp(shifted), 1))
	logProbs := ops.Sub(shifted, ops.TileAs(logSumExp, shifted))

	// [batch, 1]
	losses := ops.Negate(ops.Sum(ops.Mul(logProbs, mask), 1))
	return reduce(losses, weights)
}

// MultiMarginLoss is the multi-class hinge loss with margin 1:
//
//	loss_i = Σ_{j≠y_i} max(x_ij - x_iy_i + 1, 0) / classes
//
// Inputs are scores [batch, classes]; targets hold class indices [batch].
type MultiMarginLoss struct{}

// NewMultiMarginLoss creates a multi-margin loss.
func NewMultiMarginLoss() *MultiMarginLoss { return &MultiMarginLoss{} }

// Forward computes the mean hinge loss.
func (l *MultiMarginLoss) Forward(inputs, targets *autograd.Variable) *autograd.Variable {
	return l.ForwardWeighted(inputs, targets, nil)
}

// ForwardWeighted computes the per-sample weighted hinge loss.
func (*MultiMarginLoss) ForwardWeighted(inputs, targets, weights *autograd.Variable) *autograd.Variable {
	const margin = 1.0
	mask := oneHot("multi_margin", inputs, targets)
	classes := float64(inputs.Shape()[1])

	correct := ops.Sum(ops.Mul(inputs, mask), 1) // [batch, 1]
	scores := ops.Sub(inputs, ops.TileAs(correct, inputs))
	hinge := ops.MaxScalar(ops.AddScalar(scores, margin), 0)

	// The correct class contributes nothing.
	hinge = ops.Mul(hinge, ops.ScalarSub(1, mask))
	return reduce(ops.DivScalar(ops.Sum(hinge, 1), classes), weights)
}

// oneHot builds a constant [batch, classes] mask with a 1 at each sample's target class.
func oneHot(name string, inputs, targets *autograd.Variable) *autograd.Variable {
	shape := inputs.Shape()
	if len(shape) != 2 {
		panic(errors.Wrapf(autograd.ErrShapeMismatch, "%s: inputs must be [batch, classes], got %v", name, shape))
	}
	batch, classes := shape[0], shape[1]
	if targets.Shape().NumElements() != batch {
		panic(errors.Wrapf(autograd.ErrShapeMismatch, "%s: %d targets for batch of %d", name, targets.Shape().NumElements(), batch))
	}

	values := make([]float64, batch*classes)
	for i, t := range targets.Value().Float64s() {
		class := int(t)
		if float64(class) != t || class < 0 || class >= classes {
			panic(errors.Wrapf(ErrInvalidTarget, "%s: target %v at sample %d, want integer in [0, %d)", name, t, i, classes))
		}
		values[i*classes+class] = 1
	}
	return hostConstant(inputs, shape, values)
}

// rowMax returns a constant [batch, 1] holding the maximum of each row.
func rowMax(inputs *autograd.Variable) *autograd.Variable {
	shape := inputs.Shape()
	batch, classes := shape[0], shape[1]
	values := inputs.Value().Float64s()

	maxes := make([]float64, batch)
	for i := range batch {
		m := math.Inf(-1)
		for _, v := range values[i*classes : (i+1)*classes] {
			m = math.Max(m, v)
		}
		maxes[i] = m
	}
	return hostConstant(inputs, tensor.Shape{batch, 1}, maxes)
}

// hostConstant builds a non-tracking Variable with like's dtype and backend.
func hostConstant(like *autograd.Variable, shape tensor.Shape, values []float64) *autograd.Variable {
	raw := tensor.MustNewRaw(shape, like.DType())
	if err := raw.SetFloat64s(values); err != nil {
		panic(err)
	}
	return autograd.Input(raw, like.Backend())
}
