package cpu

import (
	"math"

	"github.com/born-ml/autograd/internal/tensor"
)

// f32 lifts a float64 function to float32.
func f32(f func(float64) float64) func(float32) float32 {
	return func(v float32) float32 { return float32(f(float64(v))) }
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

// AddScalar adds s to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	return unaryFloat("add_scalar", x,
		func(v float32) float32 { return v + float32(s) },
		func(v float64) float64 { return v + s })
}

// MulScalar multiplies every element by s.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	return unaryFloat("mul_scalar", x,
		func(v float32) float32 { return v * float32(s) },
		func(v float64) float64 { return v * s })
}

// Neg negates every element.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat("neg", x,
		func(v float32) float32 { return -v },
		func(v float64) float64 { return -v })
}

// Exp computes e^x element-wise.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat("exp", x, f32(math.Exp), math.Exp)
}

// Log computes the natural logarithm element-wise.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat("log", x, f32(math.Log), math.Log)
}

// Sqrt computes the square root element-wise.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat("sqrt", x, f32(math.Sqrt), math.Sqrt)
}

// Sin computes the sine element-wise.
func (cpu *CPUBackend) Sin(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat("sin", x, f32(math.Sin), math.Sin)
}

// Cos computes the cosine element-wise.
func (cpu *CPUBackend) Cos(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat("cos", x, f32(math.Cos), math.Cos)
}

// Tanh computes the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat("tanh", x, f32(math.Tanh), math.Tanh)
}

// Sigmoid computes 1/(1+e^-x) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat("sigmoid", x, f32(sigmoid), sigmoid)
}

// Abs computes the absolute value element-wise.
func (cpu *CPUBackend) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	return unaryFloat("abs", x, f32(math.Abs), math.Abs)
}
