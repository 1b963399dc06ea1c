// Package nn implements neural network modules on top of the autograd engine.
//
// This package provides building blocks for constructing neural networks:
//   - Module interface: Base interface for all NN components
//   - Init: Uniform, Normal, Lecun, Glorot, Constant and Identity initializers
//   - Linear, Conv2D: Layers with trainable weights and optional bias
//   - Activations: Sigmoid, Tanh, ReLU, LeakyReLU
//   - Dropout: Inverted dropout, active in training mode only
//   - Loss functions: MSE, MAE, BCE, CrossEntropy, MultiMargin
//   - Sequential: Container for stacking layers
//
// Parameters are plain autograd Variables with gradient calculation enabled.
// Train and Eval toggle gradient tracking on every parameter of a module.
package nn

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"k8s.io/klog/v2"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// ErrStateDict is returned when a state dictionary does not match a module.
var ErrStateDict = errors.New("state dict mismatch")

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128, true, backend),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10, true, backend),
//	)
type Module interface {
	// Forward computes the output of the module given an input Variable.
	Forward(input *autograd.Variable) *autograd.Variable

	// Parameters returns all trainable parameters of this module, in a
	// stable order. Modules without parameters return nil.
	Parameters() []*autograd.Variable
}

// ParamMap is an insertion-ordered map of parameter names to Variables.
type ParamMap = orderedmap.OrderedMap[string, *autograd.Variable]

// Named is implemented by modules that name their parameters.
type Named interface {
	NamedParameters() *ParamMap
}

// modeSetter is implemented by modules whose forward pass depends on the
// training mode.
type modeSetter interface {
	SetTraining(training bool)
}

// NamedParameters returns the parameters of m keyed by name. Modules that do
// not implement Named get their parameters keyed by position.
func NamedParameters(m Module) *ParamMap {
	if n, ok := m.(Named); ok {
		return n.NamedParameters()
	}
	params := orderedmap.New[string, *autograd.Variable]()
	for i, p := range m.Parameters() {
		params.Set(strconv.Itoa(i), p)
	}
	return params
}

// Train enables gradient calculation on every parameter of m and switches
// mode-dependent modules such as Dropout to training behavior.
func Train(m Module) {
	setMode(m, true)
}

// Eval disables gradient calculation on every parameter of m, dropping any
// accumulated gradients, and switches mode-dependent modules to inference.
func Eval(m Module) {
	setMode(m, false)
}

func setMode(m Module, training bool) {
	params := m.Parameters()
	for _, p := range params {
		p.SetCalcGrad(training)
	}
	if s, ok := m.(modeSetter); ok {
		s.SetTraining(training)
	}
	klog.V(2).Infof("nn: %T training=%t (%d parameters)", m, training, len(params))
}

// ZeroGrad clears the accumulated gradients of every parameter of m.
func ZeroGrad(m Module) {
	for _, p := range m.Parameters() {
		p.ZeroGrad()
	}
}

// StateDict returns a snapshot of the parameter values of m keyed by name.
func StateDict(m Module) *orderedmap.OrderedMap[string, *tensor.RawTensor] {
	state := orderedmap.New[string, *tensor.RawTensor]()
	for pair := NamedParameters(m).Oldest(); pair != nil; pair = pair.Next() {
		state.Set(pair.Key, pair.Value.Value().Clone())
	}
	return state
}

// LoadStateDict copies the values of state into the parameters of m.
//
// Every parameter must be present with a matching shape and dtype; extra
// entries are rejected as well.
func LoadStateDict(m Module, state *orderedmap.OrderedMap[string, *tensor.RawTensor]) error {
	params := NamedParameters(m)
	if state.Len() != params.Len() {
		return errors.Wrapf(ErrStateDict, "got %d entries, module has %d parameters", state.Len(), params.Len())
	}
	for pair := params.Oldest(); pair != nil; pair = pair.Next() {
		raw, ok := state.Get(pair.Key)
		if !ok {
			return errors.Wrapf(ErrStateDict, "missing %q", pair.Key)
		}
		if err := pair.Value.Value().CopyFrom(raw); err != nil {
			return errors.Wrapf(ErrStateDict, "%q: %v", pair.Key, err)
		}
	}
	return nil
}

// prefixed copies the entries of src into dst with keys prefixed by prefix.
func prefixed(dst, src *ParamMap, prefix string) {
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(fmt.Sprintf("%s.%s", prefix, pair.Key), pair.Value)
	}
}
