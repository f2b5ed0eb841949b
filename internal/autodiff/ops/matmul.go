package ops

import "github.com/drift-ml/drift/internal/tensor"

// MatMulOp is matrix multiplication: output = a · b.
//
// Backward:
//   - d(A·B)/dA = grad · Bᵗ
//   - d(A·B)/dB = Aᵗ · grad
type MatMulOp struct {
	a, b *tensor.Tensor // forward operands, saved for the backward rule
}

// NewMatMul creates a MatMulOp saving both forward operands.
func NewMatMul(a, b *tensor.Tensor) *MatMulOp {
	return &MatMulOp{a: a, b: b}
}

// Kind returns "matmul".
func (op *MatMulOp) Kind() string {
	return "matmul"
}

// Backward returns (grad · bᵗ, aᵗ · grad).
func (op *MatMulOp) Backward(grad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	bT, err := backend.Transpose(op.b)
	if err != nil {
		return nil, err
	}
	gradA, err := backend.MatMul(grad, bT)
	if err != nil {
		return nil, err
	}

	aT, err := backend.Transpose(op.a)
	if err != nil {
		return nil, err
	}
	gradB, err := backend.MatMul(aT, grad)
	if err != nil {
		return nil, err
	}

	return []*tensor.Tensor{gradA, gradB}, nil
}
