// Package autograd implements reverse-mode automatic differentiation over a
// dynamically built graph of Variables.
//
// Every differentiable operation creates one Variable that references its
// operands (the graph edges) and an Operation describing how to propagate an
// upstream gradient to them. Backward walks the graph once, consumers before
// producers, and leaves the accumulated gradients on the Variables.
package autograd

import (
	"fmt"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/born-ml/autograd/internal/tensor"
)

// nextID hands out node identities. Zero is never used.
var nextID atomic.Uint64

// Variable is a node of the differentiation graph. All *Variable handles to
// the same node share its state; the node lives as long as the longest holder.
//
// The value is never replaced after construction. The graph edges and the
// accumulated gradients are mutated only by SetCalcGrad, the backward pass,
// AddGrad and ZeroGrad.
type Variable struct {
	id       uint64
	data     *tensor.RawTensor
	backend  tensor.Backend
	calcGrad bool

	inputs []*Variable // empty for leaves
	op     Operation   // nil for leaves
	grads  []*Variable // contributions received since the last merge
}

// NewVariable creates a leaf Variable. calcGrad marks it as a gradient target.
// Panics with ErrUnsupportedGradient when calcGrad is requested for non-float data.
func NewVariable(data *tensor.RawTensor, backend tensor.Backend, calcGrad bool) *Variable {
	if calcGrad && !data.DType().IsFloat() {
		panic(errors.Wrapf(ErrUnsupportedGradient, "leaf of dtype %s", data.DType()))
	}
	return &Variable{
		id:       nextID.Add(1),
		data:     data,
		backend:  backend,
		calcGrad: calcGrad,
	}
}

// Input creates a constant leaf that never receives gradients.
func Input(data *tensor.RawTensor, backend tensor.Backend) *Variable {
	return NewVariable(data, backend, false)
}

// Parameter creates a leaf that accumulates gradients.
func Parameter(data *tensor.RawTensor, backend tensor.Backend) *Variable {
	return NewVariable(data, backend, true)
}

// NewComposite creates the result of op applied to inputs.
//
// The result tracks gradients iff at least one input does. Otherwise it is
// normalized to a leaf: inputs and op are not retained, which is what lets
// AddGrad drop contributions to constants. Non-float results are always leaves.
func NewComposite(data *tensor.RawTensor, inputs []*Variable, op Operation) *Variable {
	if len(inputs) == 0 {
		panic(errors.Wrapf(ErrEmptyInputs, "operation %s", op.Name()))
	}
	v := &Variable{
		id:      nextID.Add(1),
		data:    data,
		backend: inputs[0].backend,
	}
	if !data.DType().IsFloat() {
		return v
	}
	for _, in := range inputs {
		if in.calcGrad {
			v.calcGrad = true
			break
		}
	}
	if v.calcGrad {
		v.inputs = append([]*Variable(nil), inputs...)
		v.op = op
	}
	return v
}

// ID returns the node identity, unique for the lifetime of the process.
func (v *Variable) ID() uint64 {
	return v.id
}

// Value returns the forward value.
func (v *Variable) Value() *tensor.RawTensor {
	return v.data
}

// Backend returns the backend that computes operations on this Variable.
func (v *Variable) Backend() tensor.Backend {
	return v.backend
}

// Shape returns the shape of the forward value.
func (v *Variable) Shape() tensor.Shape {
	return v.data.Shape()
}

// DType returns the data type of the forward value.
func (v *Variable) DType() tensor.DataType {
	return v.data.DType()
}

// IsCalcGrad reports whether the Variable tracks gradients.
func (v *Variable) IsCalcGrad() bool {
	return v.calcGrad
}

// IsLeaf reports whether the Variable has no recorded inputs.
func (v *Variable) IsLeaf() bool {
	return v.op == nil
}

// Inputs returns the Variables this one was computed from.
func (v *Variable) Inputs() []*Variable {
	return v.inputs
}

// Op returns the gradient rule, or nil for leaves.
func (v *Variable) Op() Operation {
	return v.op
}

// SetCalcGrad toggles gradient tracking. Disabling it clears inputs, the
// gradient rule and any accumulated gradient, which freezes a parameter.
func (v *Variable) SetCalcGrad(calcGrad bool) {
	if calcGrad && !v.DType().IsFloat() {
		panic(errors.Wrapf(ErrUnsupportedGradient, "variable of dtype %s", v.DType()))
	}
	v.calcGrad = calcGrad
	if !calcGrad {
		v.inputs = nil
		v.op = nil
		v.grads = nil
	}
}

// Grad returns the accumulated gradient, merging pending contributions first.
func (v *Variable) Grad() (*Variable, error) {
	if !v.calcGrad {
		return nil, errors.Wrapf(ErrGradientUnavailable, "variable %d", v.id)
	}
	if len(v.grads) == 0 {
		return nil, errors.Wrapf(ErrGradientNotComputed, "variable %d", v.id)
	}
	if len(v.grads) > 1 {
		v.evalGrad(false)
	}
	return v.grads[0], nil
}

// HasGrad reports whether at least one gradient contribution is pending.
func (v *Variable) HasGrad() bool {
	return v.calcGrad && len(v.grads) > 0
}

// AddGrad appends a gradient contribution. It is a no-op when gradient
// calculation is disabled. The contribution must have the Variable's shape.
func (v *Variable) AddGrad(grad *Variable) {
	if !v.calcGrad {
		return
	}
	if !grad.Shape().Equal(v.Shape()) {
		panic(errors.Wrapf(ErrShapeMismatch, "gradient of shape %v for variable of shape %v", grad.Shape(), v.Shape()))
	}
	v.grads = append(v.grads, grad)
}

// ZeroGrad discards accumulated gradients.
func (v *Variable) ZeroGrad() {
	v.grads = nil
}

// Detach returns a new leaf sharing the value, without gradient tracking.
func (v *Variable) Detach() *Variable {
	return NewVariable(v.data, v.backend, false)
}

// String returns a short description of the node.
func (v *Variable) String() string {
	name := "leaf"
	if v.op != nil {
		name = v.op.Name()
	}
	return fmt.Sprintf("Variable#%d(%s, %s, calcGrad=%t)", v.id, name, v.data, v.calcGrad)
}

// evalGrad merges the pending contributions into one gradient.
//
// A single contribution is used as is. Several are summed with a
// differentiable node and evaluated by the backend. Unless retainGraph is set,
// the merged gradient is detached so history does not grow across passes.
func (v *Variable) evalGrad(retainGraph bool) {
	if !v.calcGrad || len(v.grads) == 0 {
		return
	}

	grad := v.grads[0]
	if len(v.grads) > 1 {
		sum := grad.data
		for _, g := range v.grads[1:] {
			sum = v.backend.Add(sum, g.data)
		}
		grad = NewComposite(v.backend.Eval(sum), v.grads, accumulateOp{})
	}
	if !retainGraph && grad.calcGrad {
		grad = grad.Detach()
	}
	v.grads = []*Variable{grad}
}

// calcGradInputs merges the pending contributions and hands the result to the
// gradient rule. Nodes that received no gradient propagate nothing.
func (v *Variable) calcGradInputs(retainGraph bool) {
	v.evalGrad(retainGraph)
	if v.op == nil || len(v.grads) == 0 {
		return
	}
	v.op.Backward(v.inputs, v.grads[0])
}
