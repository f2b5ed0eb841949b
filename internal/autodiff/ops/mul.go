package ops

import "github.com/drift-ml/drift/internal/tensor"

// MulOp is element-wise multiplication: output = a ⊙ b.
//
// Backward: d(a⊙b)/da = b and d(a⊙b)/db = a, so each input's gradient
// is the upstream gradient times the other operand's forward value.
type MulOp struct {
	a, b *tensor.Tensor // forward operands, saved for the backward rule
}

// NewMul creates a MulOp saving both forward operands.
func NewMul(a, b *tensor.Tensor) *MulOp {
	return &MulOp{a: a, b: b}
}

// Kind returns "mul".
func (op *MulOp) Kind() string {
	return "mul"
}

// Backward returns (grad ⊙ b, grad ⊙ a).
func (op *MulOp) Backward(grad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	gradA, err := backend.Mul(grad, op.b)
	if err != nil {
		return nil, err
	}
	gradB, err := backend.Mul(grad, op.a)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{gradA, gradB}, nil
}
