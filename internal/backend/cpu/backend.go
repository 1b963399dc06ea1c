// Package cpu implements the eager CPU backend used by the autograd engine.
package cpu

import (
	"math/rand/v2"
	"sync"

	"k8s.io/klog/v2"

	"github.com/born-ml/autograd/internal/parallel"
	"github.com/born-ml/autograd/internal/tensor"
)

// Config configures a CPUBackend.
type Config struct {
	// Seed initializes the random source used by RandUniform and RandNormal.
	Seed uint64
	// Parallel controls how windowed kernels split work across goroutines.
	Parallel parallel.Config
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		Seed:     42,
		Parallel: parallel.DefaultConfig(),
	}
}

// CPUBackend implements tensor.Backend with pure Go kernels.
// Every operation is evaluated eagerly, so Eval is a no-op.
type CPUBackend struct {
	device tensor.Device
	cfg    Config

	mu  sync.Mutex // guards src
	src *rand.PCG
}

var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend with DefaultConfig.
func New() *CPUBackend {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new CPU backend.
func NewWithConfig(cfg Config) *CPUBackend {
	klog.V(2).Infof("cpu backend: seed=%d parallel=%v workers=%d", cfg.Seed, cfg.Parallel.Enabled, cfg.Parallel.NumWorkers)
	return &CPUBackend{
		device: tensor.CPU,
		cfg:    cfg,
		src:    rand.NewPCG(cfg.Seed, cfg.Seed+1),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Eval returns x unchanged: CPU values are always materialized.
func (cpu *CPUBackend) Eval(x *tensor.RawTensor) *tensor.RawTensor {
	return x
}

// Full creates a tensor filled with value.
func (cpu *CPUBackend) Full(shape tensor.Shape, value float64, dtype tensor.DataType) *tensor.RawTensor {
	out, err := tensor.Full(shape, value, dtype)
	if err != nil {
		panic(err)
	}
	return out
}
