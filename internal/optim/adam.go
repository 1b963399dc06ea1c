package optim

import (
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// Adam implements the Adam optimizer.
//
// Adam computes adaptive learning rates for each parameter using estimates
// of the first and second moments of the gradients:
//
//	m = β₁ * m + (1 - β₁) * g
//	v = β₂ * v + (1 - β₂) * g²
//	lr_t = lr * √(1 - β₂ᵗ) / (1 - β₁ᵗ)
//	param = param - lr_t * m / (√v + ε)
//
// The step count t advances once per Step, for all parameters together.
//
// Example:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001})
type Adam struct {
	base
	beta1, beta2 float64
	eps          float64
	weightDecay  float64
	t            int
	m, v         []*tensor.RawTensor
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR          float64    // Learning rate (default: 0.001)
	Betas       [2]float64 // Coefficients for the running averages (default: [0.9, 0.999])
	Eps         float64    // Term for numerical stability (default: 1e-8)
	WeightDecay float64    // Weight decay factor (default: 0)
}

// NewAdam creates a new Adam optimizer, filling zero config fields with defaults.
func NewAdam(params []*autograd.Variable, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam{
		base:        base{params: params, lr: config.LR},
		beta1:       config.Betas[0],
		beta2:       config.Betas[1],
		eps:         config.Eps,
		weightDecay: config.WeightDecay,
		m:           make([]*tensor.RawTensor, len(params)),
		v:           make([]*tensor.RawTensor, len(params)),
	}
}

// Step performs a single optimization step.
func (a *Adam) Step() {
	a.t++
	correctedLR := a.lr * math.Sqrt(1-math.Pow(a.beta2, float64(a.t))) / (1 - math.Pow(a.beta1, float64(a.t)))

	var updated int
	for i, p := range a.params {
		grad, ok := gradient(p)
		if !ok {
			continue
		}
		if a.m[i] == nil {
			a.m[i], a.v[i] = zerosLike(p), zerosLike(p)
		}
		b := p.Backend()
		data := decay(b, p.Value(), a.weightDecay)

		a.m[i] = lerp(b, a.m[i], grad, a.beta1)
		a.v[i] = lerp(b, a.v[i], b.Mul(grad, grad), a.beta2)

		denom := b.AddScalar(b.Sqrt(a.v[i]), a.eps)
		data = b.Sub(data, b.Div(b.MulScalar(a.m[i], correctedLR), denom))
		assign(p, data)
		updated++
	}
	logStep("adam", updated, len(a.params))
}

// Timestep returns the number of steps taken.
func (a *Adam) Timestep() int { return a.t }

// StateDict returns the moment buffers keyed "m.{i}" and "v.{i}".
func (a *Adam) StateDict() *State {
	state := orderedmap.New[string, *tensor.RawTensor]()
	addBuffers(state, "m", a.m)
	addBuffers(state, "v", a.v)
	return state
}
