package autograd

// Operation is the gradient rule attached to a composite Variable.
//
// Backward receives the Variable's inputs, in the order they were passed to
// NewComposite, and the merged upstream gradient. Its only side effect is
// calling AddGrad on members of inputs. Rules are expressed with differentiable
// operations, so gradients computed with retained graphs can be differentiated again.
type Operation interface {
	// Name identifies the operation in logs and errors.
	Name() string

	// Backward propagates grad to inputs.
	Backward(inputs []*Variable, grad *Variable)
}

// accumulateOp is the gradient rule of a merged gradient: the sum of its inputs.
type accumulateOp struct{}

func (accumulateOp) Name() string { return "accumulate" }

func (accumulateOp) Backward(inputs []*Variable, grad *Variable) {
	for _, in := range inputs {
		in.AddGrad(grad)
	}
}
