// Package ops defines the differentiable operation kinds for reverse-mode
// automatic differentiation.
//
// Each operation pairs a forward kind with a backward rule: given the
// upstream gradient, it returns one gradient per input, in input order.
// Operations save whatever forward values their rule needs (MulOp keeps
// both operands, ActivationOp keeps its input and derivative).
//
// The built-in set is closed. There is no automatic differentiation of
// arbitrary user functions: activations must supply their derivative
// alongside the function, and an operation constructed without a
// backward rule (OpaqueOp) fails with ErrUnsupported the first time a
// backward pass reaches it.
package ops

import (
	"github.com/pkg/errors"

	"github.com/drift-ml/drift/internal/tensor"
)

// ErrUnsupported reports a backward pass reaching an operation kind
// with no registered backward rule.
var ErrUnsupported = errors.New("operation has no backward rule")

// Operation is a differentiable operation attached to a derived tensor.
type Operation interface {
	// Kind identifies the operation, e.g. "add" or "matmul".
	Kind() string

	// Backward maps the fully-accumulated upstream gradient to one
	// gradient contribution per input, in input order. It is invoked at
	// most once per node per backward pass.
	Backward(grad *tensor.Tensor, backend tensor.Backend) ([]*tensor.Tensor, error)
}
