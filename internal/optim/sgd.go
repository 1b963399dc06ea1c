package optim

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with optional momentum,
// Nesterov momentum and weight decay.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum μ:
//
//	velocity = μ * velocity - lr * gradient
//	param    = param + velocity                     (classic)
//	param    = param + μ * velocity - lr * gradient (Nesterov)
//
// Weight decay shrinks the parameter by param * weight_decay before the update.
//
// Example:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD struct {
	base
	momentum    float64
	weightDecay float64
	nesterov    bool
	velocities  []*tensor.RawTensor
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR          float64 // Learning rate (default: 0.01)
	Momentum    float64 // Momentum factor (default: 0, range: [0, 1))
	WeightDecay float64 // Weight decay factor (default: 0)
	Nesterov    bool    // Use Nesterov momentum (requires Momentum > 0)
}

// NewSGD creates a new SGD optimizer.
//
// Parameters:
//   - params: Model parameters to optimize
//   - config: SGD configuration
func NewSGD(params []*autograd.Variable, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{
		base:        base{params: params, lr: config.LR},
		momentum:    config.Momentum,
		weightDecay: config.WeightDecay,
		nesterov:    config.Nesterov,
		velocities:  make([]*tensor.RawTensor, len(params)),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step() {
	var updated int
	for i, p := range s.params {
		grad, ok := gradient(p)
		if !ok {
			continue
		}
		b := p.Backend()
		data := decay(b, p.Value(), s.weightDecay)
		step := b.MulScalar(grad, s.lr)

		switch {
		case s.momentum == 0:
			data = b.Sub(data, step)
		default:
			if s.velocities[i] == nil {
				s.velocities[i] = zerosLike(p)
			}
			velocity := b.Sub(b.MulScalar(s.velocities[i], s.momentum), step)
			s.velocities[i] = velocity
			if s.nesterov {
				data = b.Sub(b.Add(data, b.MulScalar(velocity, s.momentum)), step)
			} else {
				data = b.Add(data, velocity)
			}
		}
		assign(p, data)
		updated++
	}
	logStep("sgd", updated, len(s.params))
}

// StateDict returns the velocity buffers keyed "velocity.{param_index}".
// Without momentum, or before the first step, the state is empty.
func (s *SGD) StateDict() *State {
	state := orderedmap.New[string, *tensor.RawTensor]()
	addBuffers(state, "velocity", s.velocities)
	return state
}
