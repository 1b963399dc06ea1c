package nn

import (
	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/autograd/ops"
	"github.com/born-ml/autograd/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias row with shape [1, out_features]
//   - y is the output with shape [batch_size, out_features]
//
// Weights are initialized using Glorot uniform initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(784, 128, true, backend)
//	output := layer.Forward(input) // [32, 784] -> [32, 128]
type Linear struct {
	weight *autograd.Variable // [out_features, in_features]
	bias   *autograd.Variable // [1, out_features], nil without bias
}

// NewLinear creates a float32 Linear layer.
//
// Parameters:
//   - inFeatures: Number of input features
//   - outFeatures: Number of output features
//   - bias: Whether to add a learned bias
//   - backend: Backend used for initialization and computation
func NewLinear(inFeatures, outFeatures int, bias bool, backend tensor.Backend) *Linear {
	l := &Linear{
		weight: GlorotUniform(backend, tensor.Shape{outFeatures, inFeatures}, tensor.Float32, true),
	}
	if bias {
		l.bias = Constant(backend, 0, tensor.Shape{1, outFeatures}, tensor.Float32, true)
	}
	return l
}

// NewLinearFromParams wraps existing parameters. weight must be
// [out_features, in_features]; bias may be nil or [1, out_features].
func NewLinearFromParams(weight, bias *autograd.Variable) (*Linear, error) {
	ws := weight.Shape()
	if len(ws) != 2 {
		return nil, errors.Wrapf(autograd.ErrShapeMismatch, "linear: weight must be 2D, got %v", ws)
	}
	if bias != nil && !bias.Shape().Equal(tensor.Shape{1, ws[0]}) {
		return nil, errors.Wrapf(autograd.ErrShapeMismatch, "linear: bias %v does not match weight %v", bias.Shape(), ws)
	}
	return &Linear{weight: weight, bias: bias}, nil
}

// Forward computes y = x @ W.T + b for input [batch_size, in_features].
func (l *Linear) Forward(input *autograd.Variable) *autograd.Variable {
	out := ops.MatMulNT(input, l.weight)
	if l.bias != nil {
		out = ops.Add(out, ops.TileAs(l.bias, out))
	}
	return out
}

// Parameters returns [weight, bias], or [weight] without bias.
func (l *Linear) Parameters() []*autograd.Variable {
	if l.bias != nil {
		return []*autograd.Variable{l.weight, l.bias}
	}
	return []*autograd.Variable{l.weight}
}

// NamedParameters returns "weight" and, when present, "bias".
func (l *Linear) NamedParameters() *ParamMap {
	params := orderedmap.New[string, *autograd.Variable]()
	params.Set("weight", l.weight)
	if l.bias != nil {
		params.Set("bias", l.bias)
	}
	return params
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *autograd.Variable { return l.weight }

// Bias returns the bias parameter, or nil.
func (l *Linear) Bias() *autograd.Variable { return l.bias }

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int { return l.weight.Shape()[1] }

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int { return l.weight.Shape()[0] }
