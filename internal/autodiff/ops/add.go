package ops

import "github.com/drift-ml/drift/internal/tensor"

// AddOp is element-wise addition: output = a + b.
//
// Backward: d(a+b)/da = d(a+b)/db = 1, so the upstream gradient flows
// unchanged to both inputs.
type AddOp struct{}

// NewAdd creates an AddOp.
func NewAdd() *AddOp {
	return &AddOp{}
}

// Kind returns "add".
func (op *AddOp) Kind() string {
	return "add"
}

// Backward distributes the upstream gradient to both inputs.
func (op *AddOp) Backward(grad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	return []*tensor.Tensor{grad, grad}, nil
}
