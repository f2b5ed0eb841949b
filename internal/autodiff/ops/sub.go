package ops

import "github.com/drift-ml/drift/internal/tensor"

// SubOp is element-wise subtraction: output = a - b.
//
// Backward: d(a-b)/da = 1, d(a-b)/db = -1.
type SubOp struct{}

// NewSub creates a SubOp.
func NewSub() *SubOp {
	return &SubOp{}
}

// Kind returns "sub".
func (op *SubOp) Kind() string {
	return "sub"
}

// Backward passes the gradient to a and its negation to b.
func (op *SubOp) Backward(grad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	negGrad, err := backend.Scale(grad, -1)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{grad, negGrad}, nil
}
