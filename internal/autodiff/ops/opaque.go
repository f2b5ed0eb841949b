package ops

import (
	"github.com/pkg/errors"

	"github.com/drift-ml/drift/internal/tensor"
)

// OpaqueOp tags a derived tensor produced by an operation with no
// backward rule. Construction succeeds; the failure surfaces the first
// time a backward pass reaches the node.
type OpaqueOp struct {
	kind string
}

// NewOpaque creates an operation tag without a backward rule.
func NewOpaque(kind string) *OpaqueOp {
	return &OpaqueOp{kind: kind}
}

// Kind returns the tag given at construction.
func (op *OpaqueOp) Kind() string {
	return op.kind
}

// Backward always fails with ErrUnsupported.
func (op *OpaqueOp) Backward(grad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error) {
	return nil, errors.Wrapf(ErrUnsupported, "%s", op.kind)
}
