package nn

import (
	"math"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/tensor"
)

// Weight initializers.
//
// Shapes follow the [out, in, ...] layout of Linear and Conv2D weights:
//   - fan_in  = numel / shape[0]
//   - fan_out = numel / shape[1]
//
// Each initializer draws from the backend's random source and returns a leaf
// Variable with the requested gradient setting.

// fans returns fan_in and fan_out of a weight shape. Rank-1 shapes use the
// element count for both.
func fans(shape tensor.Shape) (fanIn, fanOut int) {
	n := shape.NumElements()
	if len(shape) < 2 {
		return n, n
	}
	return n / shape[0], n / shape[1]
}

// Uniform returns a Variable with values drawn from U(lo, hi).
func Uniform(backend tensor.Backend, shape tensor.Shape, lo, hi float64, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return autograd.NewVariable(backend.RandUniform(shape, lo, hi, dtype), backend, calcGrad)
}

// Normal returns a Variable with values drawn from N(mean, std²).
func Normal(backend tensor.Backend, shape tensor.Shape, mean, std float64, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return autograd.NewVariable(backend.RandNormal(shape, mean, std, dtype), backend, calcGrad)
}

// LecunUniform draws from U(-√3·σ, √3·σ) with σ = √(1/fan_in).
func LecunUniform(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	fanIn, _ := fans(shape)
	limit := math.Sqrt(3) * math.Sqrt(1/float64(fanIn))
	return Uniform(backend, shape, -limit, limit, dtype, calcGrad)
}

// LecunNormal draws from N(0, σ²) with σ = √(1/fan_in).
func LecunNormal(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	fanIn, _ := fans(shape)
	return Normal(backend, shape, 0, math.Sqrt(1/float64(fanIn)), dtype, calcGrad)
}

// GlorotUniform (Xavier) draws from U(-√3·σ, √3·σ) with σ = √(2/(fan_in+fan_out)).
//
// This keeps the variance of activations roughly constant across layers.
func GlorotUniform(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	fanIn, fanOut := fans(shape)
	limit := math.Sqrt(3) * math.Sqrt(2/float64(fanIn+fanOut))
	return Uniform(backend, shape, -limit, limit, dtype, calcGrad)
}

// GlorotNormal draws from N(0, σ²) with σ = √(2/(fan_in+fan_out)).
func GlorotNormal(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	fanIn, fanOut := fans(shape)
	return Normal(backend, shape, 0, math.Sqrt(2/float64(fanIn+fanOut)), dtype, calcGrad)
}

// Constant returns a Variable filled with value.
func Constant(backend tensor.Backend, value float64, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	return autograd.NewVariable(backend.Full(shape, value, dtype), backend, calcGrad)
}

// Identity returns a 2-D Variable with ones on the main diagonal.
func Identity(backend tensor.Backend, shape tensor.Shape, dtype tensor.DataType, calcGrad bool) *autograd.Variable {
	if len(shape) != 2 {
		panic(tensor.ShapeMismatchf("identity: expected 2D shape, got %v", shape))
	}
	values := make([]float64, shape.NumElements())
	for i := range min(shape[0], shape[1]) {
		values[i*shape[1]+i] = 1
	}
	raw := tensor.MustNewRaw(shape, dtype)
	if err := raw.SetFloat64s(values); err != nil {
		panic(err)
	}
	return autograd.NewVariable(raw, backend, calcGrad)
}
