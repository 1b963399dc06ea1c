package optim

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// RMSProp divides the learning rate by a running root mean square of the
// gradients:
//
//	s = ρ * s + (1 - ρ) * g²
//	param = param - lr * g / (√s + ε)
//
// With UseFirst the running mean f of the gradients is tracked as well and
// the variance s - f² replaces s (the centered variant).
type RMSProp struct {
	base
	rho         float64
	eps         float64
	weightDecay float64
	useFirst    bool
	first       []*tensor.RawTensor
	second      []*tensor.RawTensor
}

// RMSPropConfig holds configuration for RMSProp optimizer.
type RMSPropConfig struct {
	LR          float64 // Learning rate (default: 0.001)
	Rho         float64 // Decay of the running averages (default: 0.99)
	Eps         float64 // Term for numerical stability (default: 1e-8)
	WeightDecay float64 // Weight decay factor (default: 0)
	UseFirst    bool    // Track the first moment (centered RMSProp)
}

// NewRMSProp creates a new RMSProp optimizer, filling zero config fields with defaults.
func NewRMSProp(params []*autograd.Variable, config RMSPropConfig) *RMSProp {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Rho == 0 {
		config.Rho = 0.99
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &RMSProp{
		base:        base{params: params, lr: config.LR},
		rho:         config.Rho,
		eps:         config.Eps,
		weightDecay: config.WeightDecay,
		useFirst:    config.UseFirst,
		first:       make([]*tensor.RawTensor, len(params)),
		second:      make([]*tensor.RawTensor, len(params)),
	}
}

// Step performs a single optimization step.
func (r *RMSProp) Step() {
	var updated int
	for i, p := range r.params {
		grad, ok := gradient(p)
		if !ok {
			continue
		}
		b := p.Backend()
		if r.second[i] == nil {
			r.second[i] = zerosLike(p)
			if r.useFirst {
				r.first[i] = zerosLike(p)
			}
		}
		data := decay(b, p.Value(), r.weightDecay)

		r.second[i] = lerp(b, r.second[i], b.Mul(grad, grad), r.rho)
		moments := r.second[i]
		if r.useFirst {
			r.first[i] = lerp(b, r.first[i], grad, r.rho)
			moments = b.Sub(moments, b.Mul(r.first[i], r.first[i]))
		}

		denom := b.AddScalar(b.Sqrt(moments), r.eps)
		data = b.Sub(data, b.Div(b.MulScalar(grad, r.lr), denom))
		assign(p, data)
		updated++
	}
	logStep("rmsprop", updated, len(r.params))
}

// StateDict returns the running averages keyed "second.{i}" and, when
// tracked, "first.{i}".
func (r *RMSProp) StateDict() *State {
	state := orderedmap.New[string, *tensor.RawTensor]()
	addBuffers(state, "first", r.first)
	addBuffers(state, "second", r.second)
	return state
}
