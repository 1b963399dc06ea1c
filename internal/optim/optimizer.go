// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum, Nesterov and weight decay
//   - Adam: Adaptive Moment Estimation
//   - RMSProp: Root Mean Square Propagation
//
// Optimizers read the gradients accumulated on each parameter by
// autograd.Backward and update the parameter values in place.
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
//
//	for epoch := range epochs {
//	    optimizer.ZeroGrad()
//	    loss := lossFunc.Forward(model.Forward(input), targets)
//	    if err := autograd.BackwardOnes(loss); err != nil {
//	        return err
//	    }
//	    optimizer.Step()
//	}
package optim

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"k8s.io/klog/v2"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - GetLR, SetLR: Learning rate access for monitoring and scheduling
type Optimizer interface {
	// Step applies one update to every parameter that tracks gradients and
	// has received one. Other parameters are left untouched.
	Step()

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate.
	SetLR(lr float64)
}

// State is an insertion-ordered snapshot of optimizer buffers.
type State = orderedmap.OrderedMap[string, *tensor.RawTensor]

// base holds what every optimizer shares.
type base struct {
	params []*autograd.Variable
	lr     float64
}

// ZeroGrad clears gradients for all parameters.
func (b *base) ZeroGrad() {
	for _, p := range b.params {
		p.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (b *base) GetLR() float64 { return b.lr }

// SetLR updates the learning rate.
func (b *base) SetLR(lr float64) { b.lr = lr }

// gradient returns the merged gradient of p, or false when p does not track
// gradients or none has been computed yet.
func gradient(p *autograd.Variable) (*tensor.RawTensor, bool) {
	if !p.HasGrad() {
		return nil, false
	}
	g, err := p.Grad()
	if err != nil {
		return nil, false
	}
	return g.Value(), true
}

// assign writes value into the parameter buffer.
func assign(p *autograd.Variable, value *tensor.RawTensor) {
	if err := p.Value().CopyFrom(value); err != nil {
		panic(err)
	}
}

// zerosLike returns a zero buffer with p's shape and dtype.
func zerosLike(p *autograd.Variable) *tensor.RawTensor {
	return p.Backend().Full(p.Shape(), 0, p.DType())
}

// decay applies weight decay: data - wd·data.
func decay(b tensor.Backend, data *tensor.RawTensor, wd float64) *tensor.RawTensor {
	if wd == 0 {
		return data
	}
	return b.MulScalar(data, 1-wd)
}

// lerp returns rate·buf + (1-rate)·x.
func lerp(b tensor.Backend, buf, x *tensor.RawTensor, rate float64) *tensor.RawTensor {
	return b.Add(b.MulScalar(buf, rate), b.MulScalar(x, 1-rate))
}

// addBuffers exports non-nil buffers into state under "name.index".
func addBuffers(state *State, name string, buffers []*tensor.RawTensor) {
	for i, buf := range buffers {
		if buf != nil {
			state.Set(fmt.Sprintf("%s.%d", name, i), buf.Clone())
		}
	}
}

func logStep(name string, updated, total int) {
	klog.V(4).Infof("optim: %s step updated %d/%d parameters", name, updated, total)
}
