package ops

import "github.com/drift-ml/drift/internal/tensor"

// ScaleOp multiplies every element by a constant: output = c · x.
//
// Backward: d(c·x)/dx = c.
type ScaleOp struct {
	factor float64
}

// NewScale creates a ScaleOp.
func NewScale(factor float64) *ScaleOp {
	return &ScaleOp{factor: factor}
}

// Kind returns "scale".
func (op *ScaleOp) Kind() string {
	return "scale"
}

// Backward returns c · grad.
func (op *ScaleOp) Backward(grad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	gradX, err := backend.Scale(grad, op.factor)
	if err != nil {
		return nil, err
	}
	return []*tensor.Tensor{gradX}, nil
}
