package nn

import "github.com/drift-ml/drift/internal/autodiff"

// Sequential chains modules, feeding each output into the next.
type Sequential struct {
	modules []Module
}

// NewSequential creates a sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Forward runs the input through every module in order.
func (s *Sequential) Forward(x *autodiff.Variable) *autodiff.Variable {
	for _, m := range s.modules {
		x = m.Forward(x)
	}
	return x
}

// Parameters collects the parameters of all contained modules.
func (s *Sequential) Parameters() []*autodiff.Variable {
	var params []*autodiff.Variable
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}
