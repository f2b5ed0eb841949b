package ops

import "github.com/drift-ml/drift/internal/tensor"

// ActivationOp is an element-wise activation: output = f(x).
//
// The derivative is supplied by the caller alongside f; nothing is
// differentiated automatically. Backward: grad ⊙ f′(x), with f′
// evaluated at the saved forward input.
type ActivationOp struct {
	name  string
	x     *tensor.Tensor // forward input, saved for the backward rule
	deriv func(float64) float64
}

// NewActivation creates an ActivationOp for a named function with an
// explicit derivative.
func NewActivation(name string, x *tensor.Tensor, deriv func(float64) float64) *ActivationOp {
	return &ActivationOp{name: name, x: x, deriv: deriv}
}

// Kind returns the activation's name.
func (op *ActivationOp) Kind() string {
	return op.name
}

// Backward returns grad ⊙ f′(x).
func (op *ActivationOp) Backward(grad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	slope, err := backend.Map(op.x, op.deriv)
	if err != nil {
		return nil, err
	}
	gradX, err := backend.Mul(grad, slope)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{gradX}, nil
}
