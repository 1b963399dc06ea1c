// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/autograd/internal/nn"
	"github.com/born-ml/autograd/internal/serialization"
)

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
type Module = nn.Module

// Named is implemented by modules that name their parameters.
type Named = nn.Named

// ParamMap maps parameter names to Variables in registration order.
type ParamMap = nn.ParamMap

// StateDictMap maps parameter names to value snapshots in registration order.
type StateDictMap = serialization.StateDict

// ErrStateDict is returned when a state dict does not match a module.
var ErrStateDict = nn.ErrStateDict

// NamedParameters returns the parameters of m keyed by name. Modules that do
// not implement Named get positional keys "0", "1", ...
func NamedParameters(m Module) *ParamMap {
	return nn.NamedParameters(m)
}

// Train enables gradient tracking on every parameter of m and puts
// mode-dependent layers in training mode.
func Train(m Module) {
	nn.Train(m)
}

// Eval disables gradient tracking on every parameter of m and puts
// mode-dependent layers in evaluation mode.
func Eval(m Module) {
	nn.Eval(m)
}

// ZeroGrad clears the gradients of every parameter of m.
func ZeroGrad(m Module) {
	nn.ZeroGrad(m)
}

// StateDict returns a snapshot of the parameter values of m.
func StateDict(m Module) *StateDictMap {
	return nn.StateDict(m)
}

// LoadStateDict copies state into the parameters of m.
func LoadStateDict(m Module, state *StateDictMap) error {
	return nn.LoadStateDict(m, state)
}

// Save writes the parameters of m to path.
//
// Example:
//
//	err := nn.Save(model, "mlp.agrd", map[string]string{"epochs": "10"})
func Save(m Module, path string, metadata map[string]string) error {
	return nn.Save(m, path, metadata)
}

// Load reads parameters written by Save into m and returns the metadata.
func Load(m Module, path string) (map[string]string, error) {
	return nn.Load(m, path)
}
