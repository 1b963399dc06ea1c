// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/autograd/internal/backend/cpu"
	"github.com/born-ml/autograd/tensor"
)

// Backend represents the CPU backend implementation.
//
// Every operation is evaluated eagerly in pure Go; matrix products go
// through gonum BLAS.
type Backend = internalcpu.CPUBackend

// Config configures the random seed and the worker pool of a Backend.
type Config = internalcpu.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend with DefaultConfig.
//
// Example:
//
//	import (
//	    "github.com/born-ml/autograd/backend/cpu"
//	    "github.com/born-ml/autograd/autograd"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := autograd.Parameter(raw, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with an explicit configuration.
//
// Example:
//
//	backend := cpu.NewWithConfig(cpu.Config{Seed: 1, Parallel: cpu.DefaultConfig().Parallel})
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}
