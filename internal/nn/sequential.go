package nn

import (
	"fmt"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/autograd/internal/autograd"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(2, 8, true, backend),
//	    nn.NewTanh(),
//	    nn.NewLinear(8, 1, true, backend),
//	    nn.NewSigmoid(),
//	)
//	output := model.Forward(input)
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(input *autograd.Variable) *autograd.Variable {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Parameters returns the parameters of all modules, in module order.
func (s *Sequential) Parameters() []*autograd.Variable {
	var params []*autograd.Variable
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// NamedParameters returns the parameters of all modules prefixed with their
// index, e.g. "0.weight", "0.bias", "2.weight".
func (s *Sequential) NamedParameters() *ParamMap {
	params := orderedmap.New[string, *autograd.Variable]()
	for i, module := range s.modules {
		prefixed(params, NamedParameters(module), strconv.Itoa(i))
	}
	return params
}

// SetTraining propagates the training mode to mode-dependent children.
func (s *Sequential) SetTraining(training bool) {
	for _, module := range s.modules {
		if m, ok := module.(modeSetter); ok {
			m.SetTraining(training)
		}
	}
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Module(index int) Module {
	if index < 0 || index >= len(s.modules) {
		panic(fmt.Sprintf("Sequential.Module: index %d out of bounds [0, %d)", index, len(s.modules)))
	}
	return s.modules[index]
}
