package cpu

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/autograd/internal/tensor"
)

// RandUniform samples a tensor from U(lo, hi).
func (cpu *CPUBackend) RandUniform(shape tensor.Shape, lo, hi float64, dtype tensor.DataType) *tensor.RawTensor {
	cpu.mu.Lock()
	defer cpu.mu.Unlock()
	return sample("rand_uniform", shape, dtype, distuv.Uniform{Min: lo, Max: hi, Src: cpu.src})
}

// RandNormal samples a tensor from N(mean, std²).
func (cpu *CPUBackend) RandNormal(shape tensor.Shape, mean, std float64, dtype tensor.DataType) *tensor.RawTensor {
	cpu.mu.Lock()
	defer cpu.mu.Unlock()
	return sample("rand_normal", shape, dtype, distuv.Normal{Mu: mean, Sigma: std, Src: cpu.src})
}

type sampler interface {
	Rand() float64
}

func sample(name string, shape tensor.Shape, dtype tensor.DataType, dist sampler) *tensor.RawTensor {
	if !dtype.IsFloat() {
		panic(tensor.UnsupportedDTypef("%s: %s", name, dtype))
	}
	values := make([]float64, shape.NumElements())
	for i := range values {
		values[i] = dist.Rand()
	}
	out, err := tensor.FromFloat64s(values, shape, dtype)
	if err != nil {
		panic(tensor.ShapeMismatchf("%s: %v", name, err))
	}
	return out
}
