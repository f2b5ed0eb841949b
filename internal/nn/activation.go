package nn

import (
	"math"

	"github.com/drift-ml/drift/internal/autodiff"
)

// Activation applies a named element-wise function with an explicit
// derivative, as every activation in the engine must.
type Activation struct {
	name  string
	f     func(float64) float64
	deriv func(float64) float64
}

// NewActivation creates an activation module from a function/derivative pair.
func NewActivation(name string, f, deriv func(float64) float64) *Activation {
	return &Activation{name: name, f: f, deriv: deriv}
}

// ReLU returns max(0, x); derivative is the step function.
func ReLU() *Activation {
	return NewActivation("relu",
		func(x float64) float64 { return math.Max(0, x) },
		func(x float64) float64 {
			if x > 0 {
				return 1
			}
			return 0
		})
}

// Sigmoid returns σ(x) = 1 / (1 + exp(-x)); derivative σ(x)·(1-σ(x)).
func Sigmoid() *Activation {
	sigma := func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
	return NewActivation("sigmoid", sigma,
		func(x float64) float64 {
			s := sigma(x)
			return s * (1 - s)
		})
}

// Tanh returns tanh(x); derivative 1 - tanh²(x).
func Tanh() *Activation {
	return NewActivation("tanh", math.Tanh,
		func(x float64) float64 {
			t := math.Tanh(x)
			return 1 - t*t
		})
}

// Forward applies the activation element-wise.
func (a *Activation) Forward(x *autodiff.Variable) *autodiff.Variable {
	return x.Apply(a.name, a.f, a.deriv)
}

// Parameters returns nil; activations have no trainable state.
func (a *Activation) Parameters() []*autodiff.Variable {
	return nil
}
