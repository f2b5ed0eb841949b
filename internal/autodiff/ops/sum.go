package ops

import "github.com/drift-ml/drift/internal/tensor"

// SumOp reduces a tensor to its total: output = Σ x, shape {1}.
//
// Backward: every element contributed with weight 1, so the scalar
// upstream gradient is spread uniformly over the input shape.
type SumOp struct {
	shape tensor.Shape
	dtype tensor.DataType
}

// NewSum creates a SumOp remembering the input geometry.
func NewSum(x *tensor.Tensor) *SumOp {
	return &SumOp{shape: x.Shape().Clone(), dtype: x.DType()}
}

// Kind returns "sum".
func (op *SumOp) Kind() string {
	return "sum"
}

// Backward fills the input shape with the scalar upstream gradient.
func (op *SumOp) Backward(grad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	g := grad.Item()
	var gradX *tensor.Tensor
	if op.dtype == tensor.Float64 {
		gradX = tensor.Full[float64](op.shape, g)
	} else {
		gradX = tensor.Full[float32](op.shape, float32(g))
	}
	return []*tensor.Tensor{gradX}, nil
}
